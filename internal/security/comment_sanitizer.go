// Package security はアプリケーションのセキュリティ機能を提供する。
//
// CommentSanitizerService はユーザー投稿コメントの本文と投稿者名を
// サニタイズし、XSS攻撃などのセキュリティリスクから閲覧者を保護する。
// コメントはプレーンテキストとして扱うため、bluemondayの
// StrictPolicy（全タグ除去）を使用する。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// CommentSanitizerService はコメントテキストのサニタイズ機能のインターフェースを定義する。
// コメント保存前に本文と投稿者名の両方に適用される。
type CommentSanitizerService interface {
	// Sanitize は入力テキストから全てのHTMLタグを除去して返す。
	// 前後の空白はトリムされる。空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// commentSanitizer はCommentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type commentSanitizer struct {
	policy *bluemonday.Policy
}

// NewCommentSanitizer はCommentSanitizerServiceの新しいインスタンスを生成する。
// コメントにHTMLは許可しないため、許可リストが空のStrictPolicyを使用する。
// scriptタグ、イベント属性、タグ断片は全て除去される。
func NewCommentSanitizer() *commentSanitizer {
	return &commentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力テキストから全てのHTMLタグを除去して返す。
func (s *commentSanitizer) Sanitize(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(raw))
}

// compile-time interface check
var _ CommentSanitizerService = (*commentSanitizer)(nil)
