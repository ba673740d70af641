package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/cinelist/internal/middleware"
	"github.com/hitoshi/cinelist/internal/model"
)

// CommentServiceInterface はコメントハンドラーが必要とするサービスインターフェース。
type CommentServiceInterface interface {
	// AddComment は映画にコメントを投稿する。
	AddComment(ctx context.Context, userID, movieID, text, authorName string) (*model.Comment, error)
	// ListComments は指定映画のコメントを新しい順で返す。
	ListComments(ctx context.Context, movieID string) ([]model.Comment, error)
}

// CommentHandler はコメントのHTTPハンドラー。
type CommentHandler struct {
	service CommentServiceInterface
}

// NewCommentHandler はCommentHandlerを生成する。
func NewCommentHandler(service CommentServiceInterface) *CommentHandler {
	return &CommentHandler{service: service}
}

// addCommentRequest はコメント投稿リクエストのボディ。
type addCommentRequest struct {
	TitleID    string `json:"titleId"`
	Text       string `json:"text"`
	AuthorName string `json:"authorName"`
}

// ListComments は指定映画のコメント一覧を返す。認証は不要。
// GET /comments?titleId=xxx
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	titleID := r.URL.Query().Get("titleId")
	if titleID == "" {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("Movie ID is required"))
		return
	}

	comments, err := h.service.ListComments(r.Context(), titleID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(comments)
}

// AddComment は認証済みユーザーとしてコメントを投稿する。
// POST /comments
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("Invalid request body"))
		return
	}

	comment, err := h.service.AddComment(r.Context(), userID, req.TitleID, req.Text, req.AuthorName)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(comment)
}
