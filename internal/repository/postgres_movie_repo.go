package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/cinelist/internal/model"
)

// movieEntryColumns はmovie_entriesのSELECT列リスト。Scanの順序と対応する。
const movieEntryColumns = `id, user_id, movie_id, title, poster, category, overview,
	release_date, rating, votes, genre_ids, description, source, created_at, updated_at`

// PostgresMovieEntryRepo はPostgreSQLを使用した映画リストリポジトリ。
type PostgresMovieEntryRepo struct {
	db *sql.DB
}

// NewPostgresMovieEntryRepo はPostgresMovieEntryRepoを生成する。
func NewPostgresMovieEntryRepo(db *sql.DB) *PostgresMovieEntryRepo {
	return &PostgresMovieEntryRepo{db: db}
}

// scanMovieEntry は1行をMovieEntryに読み取る。
func scanMovieEntry(row interface{ Scan(dest ...any) error }, e *model.MovieEntry) error {
	return row.Scan(
		&e.ID, &e.UserID, &e.MovieID, &e.Title, &e.Poster, &e.Category, &e.Overview,
		&e.ReleaseDate, &e.Rating, &e.Votes, &e.GenreIDs, &e.Description, &e.Source,
		&e.CreatedAt, &e.UpdatedAt,
	)
}

// FindByUserAndMovie はユーザーIDと映画IDでエントリを検索する。見つからない場合はnilを返す。
func (r *PostgresMovieEntryRepo) FindByUserAndMovie(ctx context.Context, userID, movieID string) (*model.MovieEntry, error) {
	entry := &model.MovieEntry{}
	err := scanMovieEntry(r.db.QueryRowContext(ctx,
		`SELECT `+movieEntryColumns+`
		 FROM movie_entries WHERE user_id = $1 AND movie_id = $2`,
		userID, movieID,
	), entry)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("リストエントリの検索に失敗しました: %w", err)
	}

	return entry, nil
}

// Create は新規エントリを作成する。
// 同一(user_id, movie_id)の一意制約違反はそのまま返す（呼び出し側で判別する）。
func (r *PostgresMovieEntryRepo) Create(ctx context.Context, e *model.MovieEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO movie_entries
		 (id, user_id, movie_id, title, poster, category, overview,
		  release_date, rating, votes, genre_ids, description, source, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		e.ID, e.UserID, e.MovieID, e.Title, e.Poster, e.Category, e.Overview,
		e.ReleaseDate, e.Rating, e.Votes, e.GenreIDs, e.Description, e.Source,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("リストエントリの作成に失敗しました: %w", err)
	}
	return nil
}

// UpdateCategory は既存エントリのカテゴリのみを更新し、更新後の行を返す。
func (r *PostgresMovieEntryRepo) UpdateCategory(ctx context.Context, id, category string) (*model.MovieEntry, error) {
	entry := &model.MovieEntry{}
	err := scanMovieEntry(r.db.QueryRowContext(ctx,
		`UPDATE movie_entries SET category = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+movieEntryColumns,
		id, category,
	), entry)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("更新対象のリストエントリが見つかりません: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("カテゴリの更新に失敗しました: %w", err)
	}

	return entry, nil
}

// DeleteByUserMovieCategory は(user_id, movie_id, category)に一致する行を削除し、
// 削除した行数を返す。カテゴリをスコープに含めるため、別カテゴリの同一映画には影響しない。
func (r *PostgresMovieEntryRepo) DeleteByUserMovieCategory(ctx context.Context, userID, movieID, category string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM movie_entries WHERE user_id = $1 AND movie_id = $2 AND category = $3`,
		userID, movieID, category,
	)
	if err != nil {
		return 0, fmt.Errorf("リストエントリの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	return rowsAffected, nil
}

// ListByUserID はユーザーの全エントリをcreated_at降順（同時刻はid昇順）で返す。
func (r *PostgresMovieEntryRepo) ListByUserID(ctx context.Context, userID string) ([]model.MovieEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+movieEntryColumns+`
		 FROM movie_entries WHERE user_id = $1
		 ORDER BY created_at DESC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("リストエントリ一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var entries []model.MovieEntry
	for rows.Next() {
		var e model.MovieEntry
		if err := scanMovieEntry(rows, &e); err != nil {
			return nil, fmt.Errorf("リストエントリ行の読み取りに失敗しました: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("リストエントリ一覧の走査に失敗しました: %w", err)
	}
	return entries, nil
}

// compile-time interface check
var _ MovieEntryRepository = (*PostgresMovieEntryRepo)(nil)
