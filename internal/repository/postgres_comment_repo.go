package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/cinelist/internal/model"
)

// PostgresCommentRepo はPostgreSQLを使用したコメントリポジトリ。
type PostgresCommentRepo struct {
	db *sql.DB
}

// NewPostgresCommentRepo はPostgresCommentRepoを生成する。
func NewPostgresCommentRepo(db *sql.DB) *PostgresCommentRepo {
	return &PostgresCommentRepo{db: db}
}

// Create はコメントを作成する。
func (r *PostgresCommentRepo) Create(ctx context.Context, c *model.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, movie_id, user_id, author_name, text, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.MovieID, c.UserID, c.AuthorName, c.Text, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("コメントの作成に失敗しました: %w", err)
	}
	return nil
}

// ListByMovieID は指定映画の全コメントを投稿ユーザーのハンドル情報付きで
// created_at降順（同時刻はid昇順）で返す。
// usersとJOINするのは表示用投稿者名のフォールバック再解決のため。
func (r *PostgresCommentRepo) ListByMovieID(ctx context.Context, movieID string) ([]model.CommentWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.movie_id, c.user_id, c.author_name, c.text, c.created_at,
		        COALESCE(u.username, ''), COALESCE(u.name, '')
		 FROM comments c
		 JOIN users u ON c.user_id = u.id
		 WHERE c.movie_id = $1
		 ORDER BY c.created_at DESC, c.id ASC`,
		movieID,
	)
	if err != nil {
		return nil, fmt.Errorf("コメント一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var comments []model.CommentWithAuthor
	for rows.Next() {
		var c model.CommentWithAuthor
		if err := rows.Scan(
			&c.ID, &c.MovieID, &c.UserID, &c.AuthorName, &c.Text, &c.CreatedAt,
			&c.UserUsername, &c.UserName,
		); err != nil {
			return nil, fmt.Errorf("コメント行の読み取りに失敗しました: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("コメント一覧の走査に失敗しました: %w", err)
	}
	return comments, nil
}

// compile-time interface check
var _ CommentRepository = (*PostgresCommentRepo)(nil)
