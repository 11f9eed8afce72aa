package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ponloe/postboard/internal/auth"
	"github.com/Ponloe/postboard/internal/database/dbtest"
	"github.com/Ponloe/postboard/internal/oauth"
	"github.com/Ponloe/postboard/internal/policy"
	"github.com/Ponloe/postboard/internal/posts"
	"github.com/Ponloe/postboard/internal/session"
	"github.com/Ponloe/postboard/internal/users"
)

type stubLoader struct{}

func (stubLoader) AuthCodeURL(provider, state string) (string, error) {
	return "https://idp.example/auth?state=" + url.QueryEscape(state), nil
}

func (stubLoader) LoadUser(context.Context, string, string) (*oauth.UserInfo, error) {
	return &oauth.UserInfo{
		Attributes:        map[string]any{"sub": "123", "name": "Bob", "email": "bob@x.com", "picture": "http://p"},
		UserNameAttribute: "sub",
	}, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t, &users.User{}, &posts.Post{})
	userStore := users.NewGormStore(db)
	authHandler := auth.NewHandler(
		auth.NewSessionManager(userStore, auth.NewAttributeMapper()),
		session.NewMemoryStore(time.Hour),
		auth.NewSigner("secret"),
		stubLoader{},
		auth.HandlerConfig{SessionTTL: time.Hour},
	)
	return NewRouter(gin.New(), Deps{
		Profile: "test",
		Auth:    authHandler,
		Posts:   posts.NewHandler(posts.NewService(posts.NewGormStore(db))),
		Users:   users.NewHandler(userStore),
		Policy:  policy.Default(),
	})
}

func serve(r http.Handler, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler) *http.Cookie {
	t.Helper()
	w := serve(r, httptest.NewRequest(http.MethodGet, "/oauth2/authorization/google", nil))
	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	var state *http.Cookie
	for _, c := range w.Result().Cookies() {
		state = c
	}
	w = serve(r, httptest.NewRequest(http.MethodGet, "/login/oauth2/code/google?code=c&state="+url.QueryEscape(loc.Query().Get("state")), nil), state)
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			return c
		}
	}
	t.Fatalf("no session cookie, status = %d body = %s", w.Code, w.Body)
	return nil
}

func TestPublicRoutes(t *testing.T) {
	r := newTestRouter(t)
	if w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil)); w.Code != http.StatusOK {
		t.Fatalf("/health status = %d", w.Code)
	}
	w := serve(r, httptest.NewRequest(http.MethodGet, "/profile", nil))
	if w.Code != http.StatusOK || w.Body.String() != "test" {
		t.Fatalf("/profile = %d %q", w.Code, w.Body)
	}
}

func TestAPIRequiresLogin(t *testing.T) {
	r := newTestRouter(t)
	if w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestLoggedInUserManagesPosts(t *testing.T) {
	r := newTestRouter(t)
	ck := login(t, r)

	body, _ := json.Marshal(posts.CreateRequest{Title: "Hello", Content: "World", Author: "alice"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if w := serve(r, req, ck); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body)
	}

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil), ck)
	var list struct{ Data []posts.PostListView }
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].Title != "Hello" {
		t.Fatalf("list = %+v", list.Data)
	}

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/users/1", nil), ck)
	var u users.UserResponse
	json.Unmarshal(w.Body.Bytes(), &u)
	if w.Code != http.StatusOK || u.Email != "bob@x.com" || u.Role != users.RoleUser {
		t.Fatalf("/users/1 = %d %+v", w.Code, u)
	}
}
