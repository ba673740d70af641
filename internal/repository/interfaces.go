// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/cinelist/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	// メールアドレスがログインの正規識別子。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	// メールアドレス重複の場合は一意制約違反エラーを返す
	// （IsUniqueViolationで判別可能）。
	Create(ctx context.Context, user *model.User) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
}

// MovieEntryRepository はユーザーの映画リストの永続化インターフェース。
// (user_id, movie_id) の一意制約はDB側で保証される。
type MovieEntryRepository interface {
	// FindByUserAndMovie はユーザーIDと映画IDでエントリを検索する。
	// 見つからない場合はnilを返す。カテゴリは条件に含めない。
	FindByUserAndMovie(ctx context.Context, userID, movieID string) (*model.MovieEntry, error)

	// Create は新規エントリを作成する。
	// 同一(user_id, movie_id)の行が既に存在する場合は一意制約違反エラーを返す
	// （IsUniqueViolationで判別可能）。
	Create(ctx context.Context, entry *model.MovieEntry) error

	// UpdateCategory は既存エントリのカテゴリのみを更新し、更新後の行を返す。
	UpdateCategory(ctx context.Context, id, category string) (*model.MovieEntry, error)

	// DeleteByUserMovieCategory は(user_id, movie_id, category)に一致する
	// 行を削除し、削除した行数を返す。0行一致は呼び出し側でNotFoundとして扱う。
	DeleteByUserMovieCategory(ctx context.Context, userID, movieID, category string) (int64, error)

	// ListByUserID はユーザーの全エントリをcreated_at降順（同時刻はid昇順）で返す。
	ListByUserID(ctx context.Context, userID string) ([]model.MovieEntry, error)
}

// CommentRepository はコメントデータの永続化インターフェース。
type CommentRepository interface {
	// Create はコメントを作成する。
	Create(ctx context.Context, comment *model.Comment) error

	// ListByMovieID は指定映画の全コメントを投稿ユーザーのハンドル情報付きで
	// created_at降順（同時刻はid昇順）で返す。
	ListByMovieID(ctx context.Context, movieID string) ([]model.CommentWithAuthor, error)
}
