package auth

import (
	"fmt"

	"github.com/Ponloe/postboard/internal/users"
)

// Session keys written by the login flow.
const (
	SessionKeyPrincipal      = "user"
	SessionKeyAuthentication = "authentication"
)

// SessionPrincipal is the flat projection of a user kept in the session.
type SessionPrincipal struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

func NewSessionPrincipal(u *users.User) SessionPrincipal {
	return SessionPrincipal{
		Name:    u.Name,
		Email:   u.Email,
		Picture: u.Picture,
	}
}

// Authentication is the outcome of a completed login: the granted
// authorities plus the provider attributes keyed by NameAttributeKey.
type Authentication struct {
	Authorities      []string       `json:"authorities"`
	Attributes       map[string]any `json:"attributes"`
	NameAttributeKey string         `json:"name_attribute_key"`
}

// Name is the provider's identifier for the user, e.g. google's "sub".
func (a *Authentication) Name() string {
	v, ok := a.Attributes[a.NameAttributeKey]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
