package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/gauthier-se/Checkpoint/internal/api"
	"github.com/gauthier-se/Checkpoint/internal/model"
	"github.com/gauthier-se/Checkpoint/internal/service"
)

// Decision is the guard's verdict on entering a protected route. Exactly one
// of the three states holds: allowed with a user, redirected, or deferred
// because this pass had no credential transport.
type Decision struct {
	User       *model.User
	RedirectTo string
	Deferred   bool
}

// Allowed reports whether navigation may continue.
func (d Decision) Allowed() bool { return d.User != nil }

// Guard gates entry into protected views based on resolved session state.
// It evaluates a predicate over awaited state and returns a Decision; the
// routing layer interprets it. Navigation control never happens in here.
type Guard struct {
	sessions service.SessionService
}

func NewGuard(sessions service.SessionService) *Guard {
	return &Guard{sessions: sessions}
}

// Check resolves the session user (awaiting any in-flight check) and decides.
// A resolved nil user means explicitly unauthenticated: redirect to the login
// view carrying the originally intended path. An unknown state because the
// environment had no credential transport defers the decision to a later
// pass instead of issuing a false "not authenticated" redirect.
func (g *Guard) Check(ctx context.Context, cred api.Credential, path string) Decision {
	user, err := g.sessions.CurrentUser(ctx, cred)
	if errors.Is(err, service.ErrNoCredentials) {
		return Decision{Deferred: true}
	}
	if user == nil {
		return Decision{RedirectTo: "/login?redirect=" + url.QueryEscape(path)}
	}
	return Decision{User: user}
}

// Middleware applies the guard to a route group. Deferred decisions render
// the transient loading page, which retries the navigation once the browser
// performs a real credentialed request.
func (g *Guard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cred := api.CredentialFromRequest(c.Request)
		d := g.Check(c.Request.Context(), cred, c.Request.URL.Path)
		switch {
		case d.Deferred:
			c.HTML(http.StatusOK, "loading.tmpl", gin.H{"Path": c.Request.URL.String()})
			c.Abort()
		case d.RedirectTo != "":
			c.Redirect(http.StatusSeeOther, d.RedirectTo)
			c.Abort()
		default:
			c.Set(ctxUserKey, d.User)
			c.Next()
		}
	}
}

// SessionContext resolves the session user for any page so the shared header
// can show the signed-in state. Unknown or absent sessions simply leave no
// user in the context.
func SessionContext(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred := api.CredentialFromRequest(c.Request)
		if user, err := sessions.CurrentUser(c.Request.Context(), cred); err == nil && user != nil {
			c.Set(ctxUserKey, user)
		}
		c.Next()
	}
}
