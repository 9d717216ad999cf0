package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gauthier-se/Checkpoint/internal/api"
	"github.com/gauthier-se/Checkpoint/internal/service"
	"github.com/gauthier-se/Checkpoint/pkg/response"
)

type AuthHandler struct {
	sessions service.SessionService
	log      zerolog.Logger
}

func NewAuthHandler(sessions service.SessionService, logger zerolog.Logger) *AuthHandler {
	l := logger.With().Str("module", "handler").Str("component", "auth").Logger()
	return &AuthHandler{sessions: sessions, log: l}
}

func (h *AuthHandler) Register(r *gin.Engine) {
	r.GET("/login", h.loginForm)
	r.POST("/login", h.login)
	r.POST("/logout", h.logout)
}

// safeRedirect keeps post-login navigation on this site. Anything that is
// not a local absolute path falls back to the catalog.
func safeRedirect(raw string) string {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return raw
	}
	return "/games?page=1"
}

func (h *AuthHandler) loginForm(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusSeeOther, safeRedirect(c.Query("redirect")))
		return
	}
	c.HTML(http.StatusOK, "login.tmpl", gin.H{
		"Redirect": c.Query("redirect"),
	})
}

func (h *AuthHandler) login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	redirect := c.PostForm("redirect")

	cookie, err := h.sessions.Login(c.Request.Context(), email, password)
	switch {
	case err == nil:
		// Forward the upstream session cookie to the browser under our host.
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     api.SessionCookie,
			Value:    cookie.Value,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		c.Redirect(http.StatusSeeOther, safeRedirect(redirect))
	case errors.Is(err, service.ErrInvalidInput):
		c.HTML(http.StatusBadRequest, "login.tmpl", gin.H{
			"Redirect":    redirect,
			"Email":       email,
			"FieldErrors": service.FieldErrors(err),
		})
	case errors.Is(err, api.ErrUnauthorized):
		c.HTML(http.StatusUnauthorized, "login.tmpl", gin.H{
			"Redirect": redirect,
			"Email":    email,
			"Message":  "Invalid email or password.",
		})
	default:
		response.RenderError(c, err)
	}
}

func (h *AuthHandler) logout(c *gin.Context) {
	cred := api.CredentialFromRequest(c.Request)
	// The local cache says "no user" before the redirect below runs, so the
	// guard on the next navigation cannot race a stale session.
	h.sessions.Logout(c.Request.Context(), cred)

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     api.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	c.Redirect(http.StatusSeeOther, "/games?page=1")
}
