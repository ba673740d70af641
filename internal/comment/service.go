// Package comment はコメント投稿・閲覧のドメインロジックを提供する。
package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/cinelist/internal/metrics"
	"github.com/hitoshi/cinelist/internal/model"
	"github.com/hitoshi/cinelist/internal/repository"
	"github.com/hitoshi/cinelist/internal/security"
)

// Service はコメントのサービス層。
// 投稿（サニタイズと投稿者名解決を含む）と公開一覧取得を提供する。
type Service struct {
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	sanitizer   security.CommentSanitizerService
	metrics     metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	sanitizer security.CommentSanitizerService,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		commentRepo: commentRepo,
		userRepo:    userRepo,
		sanitizer:   sanitizer,
		metrics:     collector,
	}
}

// AddComment は認証済みユーザーとして映画にコメントを投稿する。
// 本文と投稿者名はサニタイズされ、投稿者名は
// 明示指定 → username → name → "Anonymous" の順で解決される。
func (s *Service) AddComment(ctx context.Context, userID, movieID, text, authorName string) (*model.Comment, error) {
	if movieID == "" || text == "" {
		return nil, model.NewMissingFieldsError(map[string]string{
			"movieId": movieID,
			"text":    text,
		})
	}

	sanitizedText := s.sanitizer.Sanitize(text)
	if sanitizedText == "" {
		// タグ除去後に空になる本文（script断片のみ等）は投稿として成立しない
		return nil, model.NewInvalidRequestError("Comment text cannot be empty")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("投稿ユーザーの取得に失敗しました: %w", err)
	}

	var username, name string
	if user != nil {
		username = user.Username
		name = user.Name
	}
	resolved := model.ResolveAuthorName(s.sanitizer.Sanitize(authorName), username, name)

	comment := &model.Comment{
		ID:         uuid.New().String(),
		MovieID:    movieID,
		UserID:     userID,
		AuthorName: resolved,
		Text:       sanitizedText,
		CreatedAt:  time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("コメントの保存に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordCommentCreated()
	}
	slog.Info("comment added",
		slog.String("user_id", userID),
		slog.String("movie_id", movieID),
		slog.String("comment_id", comment.ID),
	)
	return comment, nil
}

// ListComments は指定映画のコメントを新しい順で返す。認証は不要。
// 保存済みの投稿者名が空の行に対しては、投稿ユーザーの現在の
// ハンドル情報からフォールバック解決を再適用する。
func (s *Service) ListComments(ctx context.Context, movieID string) ([]model.Comment, error) {
	if movieID == "" {
		return nil, model.NewInvalidRequestError("Movie ID is required")
	}

	rows, err := s.commentRepo.ListByMovieID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("コメント一覧の取得に失敗しました: %w", err)
	}

	comments := make([]model.Comment, len(rows))
	for i, row := range rows {
		c := row.Comment
		c.AuthorName = model.ResolveAuthorName(c.AuthorName, row.UserUsername, row.UserName)
		comments[i] = c
	}

	return comments, nil
}
