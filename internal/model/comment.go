// Package model はドメインモデルを定義する。
package model

import "time"

// AnonymousAuthorName は投稿者名が一切解決できない場合のプレースホルダー。
const AnonymousAuthorName = "Anonymous"

// Comment は映画タイトルに対するコメントを表す。
// 作成後は変更も削除もされない。
type Comment struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"titleId"`
	UserID     string    `json:"userId"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CommentWithAuthor はコメントと投稿ユーザーのハンドル情報を結合したモデル。
// 一覧取得時にusersテーブルとJOINして取得され、表示用の
// 投稿者名フォールバックの再解決に使用される。
type CommentWithAuthor struct {
	Comment
	UserUsername string `json:"-"`
	UserName     string `json:"-"`
}

// ResolveAuthorName は投稿者表示名を固定の優先順位で解決する。
// 明示指定 → ユーザーのハンドル（username） → ユーザーの表示名 → "Anonymous"。
func ResolveAuthorName(explicit, username, name string) string {
	if explicit != "" {
		return explicit
	}
	if username != "" {
		return username
	}
	if name != "" {
		return name
	}
	return AnonymousAuthorName
}
