package auth

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ponloe/postboard/internal/apperrors"
	"github.com/Ponloe/postboard/internal/oauth"
	"github.com/Ponloe/postboard/internal/session"
)

const stateTTL = 10 * time.Minute

// UserLoader is the external OAuth2 client.
type UserLoader interface {
	AuthCodeURL(provider, state string) (string, error)
	LoadUser(ctx context.Context, provider, code string) (*oauth.UserInfo, error)
}

type Handler struct {
	manager    *SessionManager
	sessions   session.Store
	signer     *Signer
	client     UserLoader
	sessionTTL time.Duration
	secure     bool
}

type HandlerConfig struct {
	SessionTTL   time.Duration
	SecureCookie bool
}

func NewHandler(manager *SessionManager, sessions session.Store, signer *Signer, client UserLoader, cfg HandlerConfig) *Handler {
	return &Handler{
		manager:    manager,
		sessions:   sessions,
		signer:     signer,
		client:     client,
		sessionTTL: cfg.SessionTTL,
		secure:     cfg.SecureCookie,
	}
}

// StartLoginHandler redirects the browser to the provider's consent page.
func (h *Handler) StartLoginHandler(c *gin.Context) {
	provider := c.Param("provider")
	state := uuid.NewString()

	authURL, err := h.client.AuthCodeURL(provider, state)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	tok, err := h.signer.GenerateToken(audienceState, state, provider, stateTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start login"})
		return
	}
	h.setCookie(c, stateCookie, tok, stateTTL)
	c.Redirect(http.StatusFound, authURL)
}

// CallbackHandler finishes the login on a fresh session.
func (h *Handler) CallbackHandler(c *gin.Context) {
	provider := c.Param("provider")
	if errParam := c.Query("error"); errParam != "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errParam})
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code or state"})
		return
	}
	if !h.validState(c, provider, state) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state"})
		return
	}
	h.clearCookie(c, stateCookie)

	ctx := c.Request.Context()
	info, err := h.client.LoadUser(ctx, provider, code)
	if err != nil {
		log.Printf("auth: load user from %s: %v", provider, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}

	sess := h.sessions.Open(uuid.NewString())
	authn, err := h.manager.CompleteLogin(ctx, sess, provider, info.UserNameAttribute, info.Attributes)
	if err != nil {
		log.Printf("auth: complete login via %s: %v", provider, err)
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": "authentication failed"})
		return
	}
	if err := sess.Set(ctx, SessionKeyAuthentication, authn); err != nil {
		log.Printf("auth: store authentication: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}

	tok, err := h.signer.GenerateToken(audienceSession, sess.ID(), "", h.sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue session"})
		return
	}
	h.setCookie(c, SessionCookie, tok, h.sessionTTL)

	// The previous session only goes once the new one is in place.
	if old, ok := CurrentSession(c); ok {
		if err := old.Destroy(ctx); err != nil {
			log.Printf("auth: destroy previous session: %v", err)
		}
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) validState(c *gin.Context, provider, state string) bool {
	tok, err := c.Cookie(stateCookie)
	if err != nil {
		return false
	}
	claims, err := h.signer.ParseToken(tok, audienceState)
	if err != nil {
		return false
	}
	return claims.Subject == state && claims.Provider == provider
}

func (h *Handler) LogoutHandler(c *gin.Context) {
	if sess, ok := CurrentSession(c); ok {
		if err := h.manager.Logout(c.Request.Context(), sess); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
			return
		}
	}
	h.clearCookie(c, SessionCookie)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) MeHandler(c *gin.Context) {
	sess, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	p, err := h.manager.Principal(c.Request.Context(), sess)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read session"})
		return
	}
	if p == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(ttl.Seconds()), "/", "", h.secure, true)
}

func (h *Handler) clearCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", h.secure, true)
}
