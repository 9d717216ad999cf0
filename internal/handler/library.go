package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gauthier-se/Checkpoint/internal/api"
	"github.com/gauthier-se/Checkpoint/internal/model"
	"github.com/gauthier-se/Checkpoint/internal/service"
	"github.com/gauthier-se/Checkpoint/pkg/response"
)

// libraryFilters is the shelf strip rendered above the listing.
var libraryFilters = []model.GameStatus{
	model.StatusBacklog,
	model.StatusPlaying,
	model.StatusCompleted,
	model.StatusDropped,
}

type LibraryHandler struct {
	svc service.LibraryService
	log zerolog.Logger
}

func NewLibraryHandler(svc service.LibraryService, logger zerolog.Logger) *LibraryHandler {
	l := logger.With().Str("module", "handler").Str("component", "library").Logger()
	return &LibraryHandler{svc: svc, log: l}
}

func (h *LibraryHandler) Register(r *gin.RouterGroup) {
	r.GET("/:username/games", h.page)
	r.POST("/:username/games/:gameId/status", h.updateStatus)
	r.POST("/:username/games/:gameId/remove", h.remove)
}

// libraryPath rebuilds the listing URL for post-mutation redirects,
// preserving the active filter.
func libraryPath(username, filter string) string {
	path := "/" + url.PathEscape(username) + "/games"
	if filter != "" {
		path += "?status=" + url.QueryEscape(filter)
	}
	return path
}

func (h *LibraryHandler) page(c *gin.Context) {
	user := currentUser(c)
	cred := api.CredentialFromRequest(c.Request)

	listing, err := h.svc.Library(c.Request.Context(), cred)
	if err != nil {
		response.RenderError(c, err)
		return
	}

	filter := service.NormalizeStatus(c.Query("status"))
	games := service.FilterByStatus(listing.Content, filter)

	c.HTML(http.StatusOK, "library.tmpl", gin.H{
		"User":    user,
		"Games":   games,
		"Total":   len(listing.Content),
		"Filter":  filter,
		"Filters": libraryFilters,
	})
}

func (h *LibraryHandler) updateStatus(c *gin.Context) {
	cred := api.CredentialFromRequest(c.Request)
	gameID := c.Param("gameId")
	status := model.GameStatus(service.NormalizeStatus(c.PostForm("status")))

	if err := h.svc.UpdateStatus(c.Request.Context(), cred, gameID, status); err != nil {
		response.RenderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, libraryPath(c.Param("username"), c.PostForm("filter")))
}

func (h *LibraryHandler) remove(c *gin.Context) {
	cred := api.CredentialFromRequest(c.Request)
	gameID := c.Param("gameId")

	if err := h.svc.Remove(c.Request.Context(), cred, gameID); err != nil {
		response.RenderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, libraryPath(c.Param("username"), c.PostForm("filter")))
}
