// Package movielist は映画リスト管理のドメインロジックを提供する。
package movielist

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/cinelist/internal/metrics"
	"github.com/hitoshi/cinelist/internal/model"
	"github.com/hitoshi/cinelist/internal/repository"
)

// Service は映画リスト管理のサービス層。
// リストへの追加・移動、削除、カテゴリ別一覧取得のビジネスロジックを提供する。
type Service struct {
	entryRepo repository.MovieEntryRepository
	metrics   metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(entryRepo repository.MovieEntryRepository, collector metrics.MetricsCollector) *Service {
	return &Service{
		entryRepo: entryRepo,
		metrics:   collector,
	}
}

// AddOrMoveEntry は映画をユーザーのリストに追加する。
// 同じ映画が既にリストに存在する場合は新しい行を作らず、
// 既存行のカテゴリだけを指定カテゴリへ付け替える（リスト間移動）。
// カテゴリは保存前に正規化され、テキストフィールドは最大長に切り詰められる。
func (s *Service) AddOrMoveEntry(ctx context.Context, userID string, input model.MovieEntryInput) (*model.MovieEntry, error) {
	if input.MovieID == "" || input.Title == "" || input.Category == "" {
		return nil, model.NewMissingFieldsError(map[string]string{
			"movieId":  input.MovieID,
			"title":    input.Title,
			"category": input.Category,
		})
	}

	category := model.NormalizeCategory(input.Category)

	existing, err := s.entryRepo.FindByUserAndMovie(ctx, userID, input.MovieID)
	if err != nil {
		return nil, fmt.Errorf("既存エントリの検索に失敗しました: %w", err)
	}

	if existing != nil {
		updated, err := s.entryRepo.UpdateCategory(ctx, existing.ID, category)
		if err != nil {
			return nil, fmt.Errorf("カテゴリの更新に失敗しました: %w", err)
		}
		if s.metrics != nil {
			s.metrics.RecordEntryMoved()
		}
		slog.Info("movie entry moved",
			slog.String("user_id", userID),
			slog.String("movie_id", input.MovieID),
			slog.String("from", existing.Category),
			slog.String("to", category),
		)
		return updated, nil
	}

	now := time.Now()
	entry := &model.MovieEntry{
		ID:          uuid.New().String(),
		UserID:      userID,
		MovieID:     input.MovieID,
		Title:       model.TruncateField(input.Title),
		Poster:      model.TruncateField(input.Poster),
		Category:    category,
		Overview:    model.TruncateField(input.Overview),
		ReleaseDate: model.TruncateField(input.ReleaseDate),
		Rating:      model.TruncateField(defaultString(input.Rating, "N/A")),
		Votes:       model.TruncateField(defaultString(input.Votes, "0")),
		GenreIDs:    model.TruncateField(defaultString(input.GenreIDs, "[]")),
		Description: model.TruncateField(input.Description),
		Source:      defaultString(input.Source, model.DefaultSource),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		// 同時追加のレースで一意制約に負けた場合
		if repository.IsUniqueViolation(err) {
			return nil, model.NewAlreadyInListError()
		}
		return nil, fmt.Errorf("エントリの作成に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordEntryAdded(category)
	}
	slog.Info("movie entry added",
		slog.String("user_id", userID),
		slog.String("movie_id", input.MovieID),
		slog.String("category", category),
	)
	return entry, nil
}

// RemoveEntry は指定カテゴリのリストから映画を削除し、削除した行数を返す。
// カテゴリは正規化してから照合し、一致する行が存在しない場合は
// NotFoundエラーを返す。別カテゴリにある同じ映画は削除されない。
func (s *Service) RemoveEntry(ctx context.Context, userID, movieID, category string) (int64, error) {
	if movieID == "" || category == "" {
		return 0, model.NewMissingFieldsError(map[string]string{
			"movieId":  movieID,
			"category": category,
		})
	}

	normalized := model.NormalizeCategory(category)

	deleted, err := s.entryRepo.DeleteByUserMovieCategory(ctx, userID, movieID, normalized)
	if err != nil {
		return 0, fmt.Errorf("エントリの削除に失敗しました: %w", err)
	}
	if deleted == 0 {
		return 0, model.NewMovieNotFoundError()
	}

	if s.metrics != nil {
		s.metrics.RecordEntryRemoved()
	}
	slog.Info("movie entry removed",
		slog.String("user_id", userID),
		slog.String("movie_id", movieID),
		slog.String("category", normalized),
	)
	return deleted, nil
}

// ListEntriesForUser はユーザーの全エントリを3つの正規カテゴリに
// 分類して返す。各カテゴリ内は追加が新しい順。
// どの正規カテゴリにも属さないエントリはレスポンスに含めない。
func (s *Service) ListEntriesForUser(ctx context.Context, userID string) (*model.CategorizedEntries, error) {
	entries, err := s.entryRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("エントリ一覧の取得に失敗しました: %w", err)
	}

	// 空カテゴリでもnilではなく空配列をJSONに出すため初期化する
	result := &model.CategorizedEntries{
		Watching:       []model.MovieEntry{},
		WillWatch:      []model.MovieEntry{},
		AlreadyWatched: []model.MovieEntry{},
	}

	for _, entry := range entries {
		switch {
		case model.MatchesCategory(entry.Category, model.CategoryWatching):
			result.Watching = append(result.Watching, entry)
		case model.MatchesCategory(entry.Category, model.CategoryWillWatch):
			result.WillWatch = append(result.WillWatch, entry)
		case model.MatchesCategory(entry.Category, model.CategoryAlreadyWatched):
			result.AlreadyWatched = append(result.AlreadyWatched, entry)
		}
	}

	return result, nil
}

// defaultString はvalueが空のときfallbackを返す。
func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
