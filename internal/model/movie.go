// Package model はドメインモデルを定義する。
package model

import (
	"strings"
	"time"
)

// カテゴリの正規値。保存時は必ずこの小文字ハイフン形式に正規化される。
const (
	// CategoryWatching は視聴中リストの正規カテゴリ値。
	CategoryWatching = "watching"
	// CategoryWillWatch は視聴予定リストの正規カテゴリ値。
	CategoryWillWatch = "will-watch"
	// CategoryAlreadyWatched は視聴済みリストの正規カテゴリ値。
	CategoryAlreadyWatched = "already-watched"
)

// MaxFieldLength は映画メタデータの各テキストフィールドの最大保存長。
// 歴史的なカラム幅制約（VARCHAR(191)）に合わせている。
const MaxFieldLength = 191

// DefaultSource はsource未指定時に使用するカタログソースタグ。
const DefaultSource = "tmdb"

// categoryMap はUI上のカテゴリラベルを正規値へマッピングするテーブル。
// 大文字小文字・スペース/ハイフンの揺れを吸収する。
var categoryMap = map[string]string{
	"watching":        CategoryWatching,
	"will watch":      CategoryWillWatch,
	"will-watch":      CategoryWillWatch,
	"already watched": CategoryAlreadyWatched,
	"already-watched": CategoryAlreadyWatched,
}

// NormalizeCategory はカテゴリラベルを正規形式に変換する。
// 既知のラベルは3つの正規値のいずれかに変換される。
// 未知のラベルは拒否せず、小文字化してそのまま通過させる。
// 過去に保存されたデータとの互換性のための意図的な寛容さ。
func NormalizeCategory(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	if normalized, ok := categoryMap[key]; ok {
		return normalized
	}
	return key
}

// MatchesCategory は保存済みカテゴリ値が正規カテゴリに属するかを判定する。
// 保存データには正規値と人間可読ラベル（スペース区切り）の両方の形式が
// 混在しうるため、両方に対して大文字小文字を無視して照合する。
func MatchesCategory(stored, canonical string) bool {
	s := strings.ToLower(stored)
	if s == canonical {
		return true
	}
	// "will-watch" に対する "will watch" のような歴史的表記を許容する
	return s == strings.ReplaceAll(canonical, "-", " ")
}

// TruncateField はテキストフィールドをMaxFieldLengthルーンに切り詰める。
func TruncateField(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxFieldLength {
		return s
	}
	return string(runes[:MaxFieldLength])
}

// MovieEntry はユーザーのリストに登録された1本の映画を表す。
// (UserID, MovieID) の組に対して最大1行しか存在しない。
type MovieEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	MovieID     string    `json:"movieId"`
	Title       string    `json:"title"`
	Poster      string    `json:"poster"`
	Category    string    `json:"category"`
	Overview    string    `json:"overview"`
	ReleaseDate string    `json:"releaseDate"`
	Rating      string    `json:"rating"`
	Votes       string    `json:"votes"`
	GenreIDs    string    `json:"genreIds"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MovieEntryInput はリストへの追加リクエストのデータを表す。
// 正規化・切り詰め前の呼び出し元供給値をそのまま保持する。
type MovieEntryInput struct {
	MovieID     string
	Title       string
	Poster      string
	Category    string
	Overview    string
	ReleaseDate string
	Rating      string
	Votes       string
	GenreIDs    string
	Description string
	Source      string
}

// CategorizedEntries はユーザーのリストを3つの正規カテゴリに分類した結果。
type CategorizedEntries struct {
	Watching       []MovieEntry `json:"watching"`
	WillWatch      []MovieEntry `json:"will-watch"`
	AlreadyWatched []MovieEntry `json:"already-watched"`
}
