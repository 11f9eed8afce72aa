package policy

import (
	"net/http"
	"testing"
)

func TestDefaultPolicy(t *testing.T) {
	p := Default()
	user := []string{"ROLE_USER"}
	guest := []string{"ROLE_GUEST"}

	cases := []struct {
		path        string
		authorities []string
		want        int
	}{
		{"/", nil, http.StatusOK},
		{"/css/app.css", nil, http.StatusOK},
		{"/js/vendor/lib.js", nil, http.StatusOK},
		{"/health", nil, http.StatusOK},
		{"/profile", nil, http.StatusOK},
		{"/oauth2/authorization/google", nil, http.StatusOK},
		{"/login/oauth2/code/google", nil, http.StatusOK},
		{"/api/v1/posts", nil, http.StatusUnauthorized},
		{"/api/v1/posts/1", guest, http.StatusForbidden},
		{"/api/v1/posts/1", user, http.StatusOK},
		{"/api/v1/me", user, http.StatusOK},
		{"/somewhere", nil, http.StatusUnauthorized},
		{"/somewhere", guest, http.StatusOK},
	}
	for _, tc := range cases {
		if got := p.Decide(tc.path, tc.authorities); got != tc.want {
			t.Fatalf("Decide(%q, %v) = %d, want %d", tc.path, tc.authorities, got, tc.want)
		}
	}
}

func TestFirstMatchWins(t *testing.T) {
	p := New(
		PermitAll("/api/v1/public/**"),
		HasRole("USER", "/api/v1/**"),
	)
	if got := p.Decide("/api/v1/public/x", nil); got != http.StatusOK {
		t.Fatalf("Decide() = %d, want 200", got)
	}
	if got := p.Decide("/api/v1/private", nil); got != http.StatusUnauthorized {
		t.Fatalf("Decide() = %d, want 401", got)
	}
}

func TestAuthenticatedRule(t *testing.T) {
	p := New(Authenticated("/account/**"), PermitAll("/**"))
	if got := p.Decide("/account/settings", nil); got != http.StatusUnauthorized {
		t.Fatalf("Decide() = %d, want 401", got)
	}
	if got := p.Decide("/account/settings", []string{}); got != http.StatusOK {
		t.Fatalf("Decide() = %d, want 200", got)
	}
	if got := p.Decide("/other", nil); got != http.StatusOK {
		t.Fatalf("Decide() = %d, want 200", got)
	}
}
