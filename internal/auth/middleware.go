package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ponloe/postboard/internal/policy"
	"github.com/Ponloe/postboard/internal/session"
)

const (
	SessionCookie = "SESSION"
	stateCookie   = "OAUTH2_STATE"

	ctxSession        = "session"
	ctxAuthentication = "authentication"
)

// LoadSession attaches the session named by the session cookie, and the
// login's Authentication when there is one.
func (h *Handler) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(SessionCookie)
		if err != nil || tok == "" {
			c.Next()
			return
		}
		claims, err := h.signer.ParseToken(tok, audienceSession)
		if err != nil {
			c.Next()
			return
		}

		sess := h.sessions.Open(claims.Subject)
		c.Set(ctxSession, sess)

		var authn Authentication
		ok, err := sess.Get(c.Request.Context(), SessionKeyAuthentication, &authn)
		if err != nil {
			log.Printf("auth: read session %s: %v", sess.ID(), err)
		}
		if ok {
			if authn.Authorities == nil {
				authn.Authorities = []string{}
			}
			c.Set(ctxAuthentication, &authn)
		}
		c.Next()
	}
}

// Authorize rejects requests the access policy does not allow.
func Authorize(p *policy.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		var authorities []string
		if authn, ok := CurrentAuthentication(c); ok {
			authorities = authn.Authorities
		}
		if status := p.Decide(c.Request.URL.Path, authorities); status != http.StatusOK {
			c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
			return
		}
		c.Next()
	}
}

func CurrentSession(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(ctxSession)
	if !ok {
		return nil, false
	}
	sess, ok := v.(session.Session)
	return sess, ok
}

func CurrentAuthentication(c *gin.Context) (*Authentication, bool) {
	v, ok := c.Get(ctxAuthentication)
	if !ok {
		return nil, false
	}
	authn, ok := v.(*Authentication)
	return authn, ok
}
