// Package handler mounts the web frontend's routes: public catalog pages,
// the auth pages, the guarded personal pages, and operational endpoints.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gauthier-se/Checkpoint/internal/model"
	"github.com/gauthier-se/Checkpoint/internal/service"
)

// ctxUserKey is where middleware stores the resolved session user.
const ctxUserKey = "session.user"

// currentUser returns the resolved session user for this request, when any
// middleware resolved one.
func currentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}

// NewEngine builds a gin engine with the shared middleware and the HTML
// templates loaded. templatesGlob points at web/templates; staticDir may be
// empty when no assets are served (tests).
func NewEngine(logger zerolog.Logger, templatesGlob, staticDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.SetFuncMap(templateFuncs())
	r.LoadHTMLGlob(templatesGlob)
	if staticDir != "" {
		r.Static("/static", staticDir)
	}
	return r
}

// Register mounts all routes on the given engine. Dependencies are the
// service layer plus the upstream reachability probe.
func Register(r *gin.Engine, probe Pinger, sessions service.SessionService, catalog service.CatalogService, library service.LibraryService, logger zerolog.Logger) {
	m := NewMetrics()
	r.Use(m.Middleware())
	r.GET("/metrics", m.Handler())

	NewHealthHandler(probe, logger).Register(r)

	guard := NewGuard(sessions)

	// Every page resolves the session for the header; public pages render
	// fine without one.
	r.Use(SessionContext(sessions))

	NewCatalogHandler(catalog, logger).Register(r)
	NewAuthHandler(sessions, logger).Register(r)

	protected := r.Group("/", guard.Middleware())
	{
		NewProfileHandler(logger).Register(protected)
		NewLibraryHandler(library, logger).Register(protected)
	}
}
