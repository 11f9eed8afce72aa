package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ponloe/postboard/internal/auth"
	"github.com/Ponloe/postboard/internal/policy"
	"github.com/Ponloe/postboard/internal/posts"
	"github.com/Ponloe/postboard/internal/users"
)

type Deps struct {
	Profile string
	Auth    *auth.Handler
	Posts   *posts.Handler
	Users   *users.Handler
	Policy  *policy.Policy
}

// NewRouter wires every route behind the session loader and access policy.
func NewRouter(r *gin.Engine, d Deps) *gin.Engine {
	r.Use(d.Auth.LoadSession(), auth.Authorize(d.Policy))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/profile", func(c *gin.Context) {
		c.String(http.StatusOK, d.Profile)
	})

	r.GET("/oauth2/authorization/:provider", d.Auth.StartLoginHandler)
	r.GET("/login/oauth2/code/:provider", d.Auth.CallbackHandler)
	r.POST("/logout", d.Auth.LogoutHandler)

	api := r.Group("/api/v1")
	api.GET("/me", d.Auth.MeHandler)
	api.GET("/users/:id", d.Users.GetUserHandler)
	d.Posts.Register(api)

	return r
}
