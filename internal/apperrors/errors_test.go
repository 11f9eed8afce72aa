package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNotFoundMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("get post: %w", NotFound("post", uint(7)))
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected errors.Is(err, ErrNotFound)")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatal("expected NotFoundError")
	}
	if nf.Entity != "post" || nf.ID != uint(7) {
		t.Fatalf("NotFoundError = %+v, want post/7", nf)
	}
	if got, want := nf.Error(), "no such post: 7"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestPersistenceWraps(t *testing.T) {
	if Persistence("save", nil) != nil {
		t.Fatal("expected nil for nil error")
	}
	cause := errors.New("connection refused")
	err := Persistence("save user", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected PersistenceError to unwrap to cause")
	}
	again := Persistence("outer", err)
	if again != err {
		t.Fatal("expected existing PersistenceError to be returned unchanged")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", NotFound("post", 1), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("x: %w", NotFound("user", 2)), http.StatusNotFound},
		{"unsupported provider", &UnsupportedProviderError{Provider: "naver"}, http.StatusUnauthorized},
		{"invalid attributes", &InvalidAttributesError{Reason: "missing email"}, http.StatusUnauthorized},
		{"persistence", Persistence("save", errors.New("boom")), http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}
