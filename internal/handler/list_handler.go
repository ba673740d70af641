package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/cinelist/internal/middleware"
	"github.com/hitoshi/cinelist/internal/model"
)

// ListServiceInterface はリストハンドラーが必要とするサービスインターフェース。
type ListServiceInterface interface {
	// AddOrMoveEntry は映画を追加、または既存エントリを別カテゴリへ移動する。
	AddOrMoveEntry(ctx context.Context, userID string, input model.MovieEntryInput) (*model.MovieEntry, error)
	// RemoveEntry は指定カテゴリから映画を削除し、削除行数を返す。
	RemoveEntry(ctx context.Context, userID, movieID, category string) (int64, error)
	// ListEntriesForUser はユーザーの全エントリをカテゴリ別に返す。
	ListEntriesForUser(ctx context.Context, userID string) (*model.CategorizedEntries, error)
}

// ListHandler は映画リスト管理のHTTPハンドラー。
type ListHandler struct {
	service ListServiceInterface
}

// NewListHandler はListHandlerを生成する。
func NewListHandler(service ListServiceInterface) *ListHandler {
	return &ListHandler{service: service}
}

// addEntryRequest はリスト追加リクエストのボディ。
type addEntryRequest struct {
	MovieID     string `json:"movieId"`
	Title       string `json:"title"`
	Poster      string `json:"poster"`
	Category    string `json:"category"`
	Overview    string `json:"overview"`
	ReleaseDate string `json:"releaseDate"`
	Rating      string `json:"rating"`
	Votes       string `json:"votes"`
	GenreIDs    string `json:"genreIds"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// removeEntryRequest はリスト削除リクエストのボディ。
type removeEntryRequest struct {
	MovieID  string `json:"movieId"`
	Category string `json:"category"`
}

// ListEntries はユーザーのリストをカテゴリ別に返す。
// GET /lists
func (h *ListHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	entries, err := h.service.ListEntriesForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// AddEntry は映画をリストに追加する（既存エントリはカテゴリ移動）。
// POST /lists
func (h *ListHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("Invalid request body"))
		return
	}

	entry, err := h.service.AddOrMoveEntry(r.Context(), userID, model.MovieEntryInput{
		MovieID:     req.MovieID,
		Title:       req.Title,
		Poster:      req.Poster,
		Category:    req.Category,
		Overview:    req.Overview,
		ReleaseDate: req.ReleaseDate,
		Rating:      req.Rating,
		Votes:       req.Votes,
		GenreIDs:    req.GenreIDs,
		Description: req.Description,
		Source:      req.Source,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// RemoveEntry は指定カテゴリから映画を削除する。
// DELETE /lists
func (h *ListHandler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req removeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("Invalid request body"))
		return
	}

	deleted, err := h.service.RemoveEntry(r.Context(), userID, req.MovieID, req.Category)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"message": "Movie removed from list",
		"deleted": map[string]int64{"count": deleted},
	})
}
