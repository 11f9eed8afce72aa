// Package policy maps request paths to the authority they require.
package policy

import (
	"net/http"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

type requirement int

const (
	permitAll requirement = iota
	authenticated
	hasRole
)

// Rule guards every path matching one of Patterns. Patterns use doublestar
// syntax, so "/api/v1/**" covers the whole subtree.
type Rule struct {
	Patterns []string
	req      requirement
	role     string
}

func PermitAll(patterns ...string) Rule {
	return Rule{Patterns: patterns, req: permitAll}
}

func Authenticated(patterns ...string) Rule {
	return Rule{Patterns: patterns, req: authenticated}
}

// HasRole requires the authority "ROLE_"+role.
func HasRole(role string, patterns ...string) Rule {
	return Rule{Patterns: patterns, req: hasRole, role: "ROLE_" + role}
}

func (r Rule) matches(path string) bool {
	for _, p := range r.Patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}

// Policy evaluates rules in order; the first matching rule decides. Paths no
// rule matches require an authenticated caller.
type Policy struct {
	rules []Rule
}

func New(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Default is the board's rule set: static assets and the login flow are
// public, the JSON API needs the USER role.
func Default() *Policy {
	return New(
		PermitAll("/", "/css/**", "/images/**", "/js/**", "/profile", "/health", "/oauth2/**", "/login/**", "/logout"),
		HasRole("USER", "/api/v1/**"),
	)
}

// Decide returns http.StatusOK when the caller may proceed, otherwise the
// status to reject with. authorities is nil for anonymous callers.
func (p *Policy) Decide(path string, authorities []string) int {
	for _, r := range p.rules {
		if !r.matches(path) {
			continue
		}
		switch r.req {
		case permitAll:
			return http.StatusOK
		case hasRole:
			if authorities == nil {
				return http.StatusUnauthorized
			}
			if !slices.Contains(authorities, r.role) {
				return http.StatusForbidden
			}
			return http.StatusOK
		default:
			return authenticatedStatus(authorities)
		}
	}
	return authenticatedStatus(authorities)
}

func authenticatedStatus(authorities []string) int {
	if authorities == nil {
		return http.StatusUnauthorized
	}
	return http.StatusOK
}
