package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/cinelist/internal/model"
)

// TestWriteErrorResponse_Format は統一エラーフォーマットで出力されることを検証する。
func TestWriteErrorResponse_Format(t *testing.T) {
	w := httptest.NewRecorder()

	WriteErrorResponse(w, http.StatusNotFound, model.NewMovieNotFoundError())

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "Movie not found in list" {
		t.Errorf("error = %v, want Movie not found in list", body["error"])
	}
	if _, ok := body["details"]; ok {
		t.Error("details should be omitted when empty")
	}
}

// TestWriteErrorResponse_IncludesDetails は補足情報がレスポンスに含まれることを検証する。
func TestWriteErrorResponse_IncludesDetails(t *testing.T) {
	w := httptest.NewRecorder()

	WriteErrorResponse(w, http.StatusBadRequest, model.NewMissingFieldsError(map[string]string{
		"movieId": "",
		"title":   "Fight Club",
	}))

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	details, ok := body["details"].(map[string]any)
	if !ok {
		t.Fatalf("expected details object, got %v", body["details"])
	}
	if details["title"] != "Fight Club" {
		t.Errorf("details.title = %v, want Fight Club", details["title"])
	}
}

// TestWriteInternalServerError は内部エラーの統一レスポンスを検証する。
func TestWriteInternalServerError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteInternalServerError(w)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

// TestStatusCodeFor はエラーコードとHTTPステータスの対応を検証する。
func TestStatusCodeFor(t *testing.T) {
	tests := []struct {
		apiErr *model.APIError
		want   int
	}{
		{model.NewUnauthorizedError(), http.StatusUnauthorized},
		{model.NewInvalidCredentialsError(), http.StatusUnauthorized},
		{model.NewMissingFieldsError(nil), http.StatusBadRequest},
		{model.NewInvalidRequestError("bad"), http.StatusBadRequest},
		{model.NewAlreadyInListError(), http.StatusBadRequest},
		{model.NewUserExistsError(), http.StatusBadRequest},
		{model.NewMovieNotFoundError(), http.StatusNotFound},
		{model.NewInternalError("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusCodeFor(tt.apiErr); got != tt.want {
			t.Errorf("StatusCodeFor(%s) = %d, want %d", tt.apiErr.Code, got, tt.want)
		}
	}
}
