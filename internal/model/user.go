// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// ログインの正規識別子はEmail。Usernameは任意の表示用ハンドルで、
// コメントの投稿者名フォールバックに使用される。
// OAuth経由で自動作成されたユーザーはPasswordHashが空文字列になる。
type User struct {
	ID           string
	Email        string
	Username     string
	Name         string
	PasswordHash string
	Image        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword はパスワードログインが可能なユーザーかどうかを返す。
// OAuth自動作成ユーザーはパスワードハッシュを持たない。
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Session はユーザーのログインセッションを表す。
// IDは暗号的に安全なランダム値で、HTTP Only Cookieに格納される。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
