package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/cinelist/internal/model"
)

// mockAuthService はAuthServiceInterfaceのモック。
type mockAuthService struct {
	registerFunc          func(ctx context.Context, name, email, password, confirmPassword string) (*model.User, error)
	loginWithPasswordFunc func(ctx context.Context, email, password string) (*model.Session, error)
	getLoginURLFunc       func(state string) string
	handleCallbackFunc    func(ctx context.Context, code string) (*model.Session, error)
	logoutFunc            func(ctx context.Context, sessionID string) error
	getCurrentUserFunc    func(ctx context.Context, sessionID string) (*model.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password, confirmPassword string) (*model.User, error) {
	return m.registerFunc(ctx, name, email, password, confirmPassword)
}

func (m *mockAuthService) LoginWithPassword(ctx context.Context, email, password string) (*model.Session, error) {
	return m.loginWithPasswordFunc(ctx, email, password)
}

func (m *mockAuthService) GetLoginURL(state string) string {
	return m.getLoginURLFunc(state)
}

func (m *mockAuthService) HandleCallback(ctx context.Context, code string) (*model.Session, error) {
	return m.handleCallbackFunc(ctx, code)
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	return m.logoutFunc(ctx, sessionID)
}

func (m *mockAuthService) GetCurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	return m.getCurrentUserFunc(ctx, sessionID)
}

func testAuthHandler(svc *mockAuthService) *AuthHandler {
	return NewAuthHandler(svc, AuthHandlerConfig{
		BaseURL:       "http://localhost:3000",
		SessionMaxAge: 3600,
	})
}

// TestAuthHandler_Register_Success は登録成功時に201とユーザー情報が返ることを検証する。
func TestAuthHandler_Register_Success(t *testing.T) {
	h := testAuthHandler(&mockAuthService{
		registerFunc: func(ctx context.Context, name, email, password, confirmPassword string) (*model.User, error) {
			return &model.User{ID: "user-1", Email: email, Name: name, PasswordHash: "secret-hash"}, nil
		},
	})

	body := `{"name":"Alice","email":"alice@example.com","password":"password123","confirmPassword":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	if strings.Contains(w.Body.String(), "secret-hash") {
		t.Error("password hash must never appear in a response")
	}

	var resp userResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Email != "alice@example.com" {
		t.Errorf("email = %q, want alice@example.com", resp.Email)
	}
}

// TestAuthHandler_Register_ValidationError は検証エラーが400と規定のメッセージになることを検証する。
func TestAuthHandler_Register_ValidationError(t *testing.T) {
	h := testAuthHandler(&mockAuthService{
		registerFunc: func(ctx context.Context, name, email, password, confirmPassword string) (*model.User, error) {
			return nil, model.NewInvalidRequestError("Passwords do not match")
		},
	})

	body := `{"name":"Alice","email":"alice@example.com","password":"password123","confirmPassword":"other"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp["error"] != "Passwords do not match" {
		t.Errorf("error = %v, want Passwords do not match", resp["error"])
	}
}

// TestAuthHandler_Login_SetsSessionCookie はログイン成功時にHTTP OnlyのセッションCookieが設定されることを検証する。
func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	h := testAuthHandler(&mockAuthService{
		loginWithPasswordFunc: func(ctx context.Context, email, password string) (*model.Session, error) {
			return &model.Session{ID: "session-abc", UserID: "user-1"}, nil
		},
	})

	body := `{"email":"alice@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			found = true
			if c.Value != "session-abc" {
				t.Errorf("cookie value = %q, want session-abc", c.Value)
			}
			if !c.HttpOnly {
				t.Error("session cookie must be HTTP only")
			}
		}
	}
	if !found {
		t.Error("expected session cookie to be set")
	}
}

// TestAuthHandler_Login_InvalidCredentials は認証失敗が401になることを検証する。
func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := testAuthHandler(&mockAuthService{
		loginWithPasswordFunc: func(ctx context.Context, email, password string) (*model.Session, error) {
			return nil, model.NewInvalidCredentialsError()
		},
	})

	body := `{"email":"alice@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp["error"] != "Invalid email or password" {
		t.Errorf("error = %v, want Invalid email or password", resp["error"])
	}
}

// TestAuthHandler_GoogleLogin_RedirectsWithState はOAuth開始時にstate付きでリダイレクトされることを検証する。
func TestAuthHandler_GoogleLogin_RedirectsWithState(t *testing.T) {
	var receivedState string
	h := testAuthHandler(&mockAuthService{
		getLoginURLFunc: func(state string) string {
			receivedState = state
			return "https://accounts.google.com/o/oauth2/auth?state=" + state
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/google/login", nil)
	w := httptest.NewRecorder()

	h.GoogleLogin(w, req)

	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTemporaryRedirect)
	}
	if receivedState == "" {
		t.Fatal("expected generated state")
	}

	// stateがCookieにも保存される
	var cookieState string
	for _, c := range w.Result().Cookies() {
		if c.Name == oauthStateCookie {
			cookieState = c.Value
		}
	}
	if cookieState != receivedState {
		t.Errorf("cookie state %q does not match redirect state %q", cookieState, receivedState)
	}
}

// TestAuthHandler_GoogleCallback_StateMismatch はstate不一致が400になることを検証する。
func TestAuthHandler_GoogleCallback_StateMismatch(t *testing.T) {
	h := testAuthHandler(&mockAuthService{
		handleCallbackFunc: func(ctx context.Context, code string) (*model.Session, error) {
			t.Fatal("callback should not proceed with mismatched state")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=abc&state=evil", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "expected"})
	w := httptest.NewRecorder()

	h.GoogleCallback(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// TestAuthHandler_GoogleCallback_Success はコールバック成功でセッションCookieとリダイレクトを検証する。
func TestAuthHandler_GoogleCallback_Success(t *testing.T) {
	h := testAuthHandler(&mockAuthService{
		handleCallbackFunc: func(ctx context.Context, code string) (*model.Session, error) {
			if code != "auth-code" {
				t.Errorf("expected code auth-code, got %q", code)
			}
			return &model.Session{ID: "session-abc", UserID: "user-1"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=auth-code&state=xyz", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "xyz"})
	w := httptest.NewRecorder()

	h.GoogleCallback(w, req)

	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTemporaryRedirect)
	}
	if loc := w.Header().Get("Location"); loc != "http://localhost:3000" {
		t.Errorf("redirect location = %q, want frontend base URL", loc)
	}

	var sessionSet bool
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName && c.Value == "session-abc" {
			sessionSet = true
		}
	}
	if !sessionSet {
		t.Error("expected session cookie to be set")
	}
}

// TestAuthHandler_Logout_ClearsCookie はログアウトでセッションCookieがクリアされることを検証する。
func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	var loggedOut string
	h := testAuthHandler(&mockAuthService{
		logoutFunc: func(ctx context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "session-abc"})
	w := httptest.NewRecorder()

	h.Logout(w, req)

	if loggedOut != "session-abc" {
		t.Errorf("expected logout of session-abc, got %q", loggedOut)
	}

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected session cookie to be cleared")
	}
}

// TestAuthHandler_Me_ReturnsUser は現在のユーザー情報取得を検証する。
func TestAuthHandler_Me_ReturnsUser(t *testing.T) {
	h := testAuthHandler(&mockAuthService{
		getCurrentUserFunc: func(ctx context.Context, sessionID string) (*model.User, error) {
			return &model.User{ID: "user-1", Email: "alice@example.com", Username: "alice", Name: "Alice"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "session-abc"})
	w := httptest.NewRecorder()

	h.Me(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp userResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.ID != "user-1" {
		t.Errorf("id = %q, want user-1", resp.ID)
	}
	if resp.Username != "alice" {
		t.Errorf("username = %q, want alice", resp.Username)
	}
}

// TestAuthHandler_Me_NoSession はセッションなしの/meが401になることを検証する。
func TestAuthHandler_Me_NoSession(t *testing.T) {
	h := testAuthHandler(&mockAuthService{
		getCurrentUserFunc: func(ctx context.Context, sessionID string) (*model.User, error) {
			t.Fatal("service should not be called without a session cookie")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()

	h.Me(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
