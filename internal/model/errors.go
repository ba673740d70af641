// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// Messageはそのままユーザーに表示される英語メッセージで、
// 内部詳細はログにのみ記録する。
type APIError struct {
	Code    string // エラーコード
	Message string // ユーザー向けメッセージ
	Details any    // フィールドレベルの補足情報（省略可）
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeMissingFields      = "MISSING_FIELDS"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeMovieNotFound      = "MOVIE_NOT_FOUND"
	ErrCodeAlreadyInList      = "ALREADY_IN_LIST"
	ErrCodeUserExists         = "USER_EXISTS"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: "Unauthorized",
	}
}

// NewMissingFieldsError は必須フィールド欠落エラーを生成する。
// detailsには欠落判定に使った受信値を入れ、レスポンスにそのまま含める。
func NewMissingFieldsError(details any) *APIError {
	return &APIError{
		Code:    ErrCodeMissingFields,
		Message: "Missing required fields",
		Details: details,
	}
}

// NewInvalidRequestError は不正リクエストエラーを生成する。
func NewInvalidRequestError(message string) *APIError {
	return &APIError{
		Code:    ErrCodeInvalidRequest,
		Message: message,
	}
}

// NewMovieNotFoundError はリスト内に削除対象の映画が存在しないエラーを生成する。
func NewMovieNotFoundError() *APIError {
	return &APIError{
		Code:    ErrCodeMovieNotFound,
		Message: "Movie not found in list",
	}
}

// NewAlreadyInListError は挿入競合による一意制約違反のエラーを生成する。
// 同時追加のレースで生のINSERTが一意制約に負けた場合にのみ使用する。
func NewAlreadyInListError() *APIError {
	return &APIError{
		Code:    ErrCodeAlreadyInList,
		Message: "Movie already in list",
	}
}

// NewUserExistsError はメールアドレス重複による登録失敗エラーを生成する。
func NewUserExistsError() *APIError {
	return &APIError{
		Code:    ErrCodeUserExists,
		Message: "User already exists",
	}
}

// NewInvalidCredentialsError は認証情報不一致エラーを生成する。
// メール未登録とパスワード不一致は区別せず同一メッセージを返す。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:    ErrCodeInvalidCredentials,
		Message: "Invalid email or password",
	}
}

// NewInternalError は内部エラーを生成する。
// 根本原因はDetailsではなくログにのみ記録すること。
func NewInternalError(message string) *APIError {
	return &APIError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}
