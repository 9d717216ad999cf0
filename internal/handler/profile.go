package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ProfileHandler struct {
	log zerolog.Logger
}

func NewProfileHandler(logger zerolog.Logger) *ProfileHandler {
	l := logger.With().Str("module", "handler").Str("component", "profile").Logger()
	return &ProfileHandler{log: l}
}

func (h *ProfileHandler) Register(r *gin.RouterGroup) {
	r.GET("/profile", h.page)
}

func (h *ProfileHandler) page(c *gin.Context) {
	user := currentUser(c)
	c.HTML(http.StatusOK, "profile.tmpl", gin.H{
		"User": user,
	})
}
