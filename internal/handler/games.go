package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gauthier-se/Checkpoint/internal/pagination"
	"github.com/gauthier-se/Checkpoint/internal/service"
	"github.com/gauthier-se/Checkpoint/pkg/response"
)

// popularCount is how many games the "popular this week" strip shows.
const popularCount = 7

type CatalogHandler struct {
	svc service.CatalogService
	log zerolog.Logger
}

func NewCatalogHandler(svc service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	l := logger.With().Str("module", "handler").Str("component", "catalog").Logger()
	return &CatalogHandler{svc: svc, log: l}
}

func (h *CatalogHandler) Register(r *gin.Engine) {
	r.GET("/", h.home)
	r.GET("/games", h.list)
	r.GET("/games/:id", h.detail)
}

func (h *CatalogHandler) home(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/games?page=1")
}

// parsePage reads the 1-based page from the URL, clamped to >= 1 so the
// window function and the 0-based API page both get sane input.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// pageLink is one pagination control slot prepared for the template.
type pageLink struct {
	Number   int
	Ellipsis bool
	Current  bool
}

func pageLinks(current, total int) []pageLink {
	window := pagination.Window(current, total)
	links := make([]pageLink, len(window))
	for i, entry := range window {
		if entry.IsEllipsis() {
			links[i] = pageLink{Ellipsis: true}
			continue
		}
		links[i] = pageLink{Number: int(entry), Current: int(entry) == current}
	}
	return links
}

func (h *CatalogHandler) list(c *gin.Context) {
	page := parsePage(c.Query("page"))
	// API pages are 0-based, URL pages 1-based.
	res, err := h.svc.Games(c.Request.Context(), page-1)
	if err != nil {
		response.RenderError(c, err)
		return
	}

	popular := res.Content
	if len(popular) > popularCount {
		popular = popular[:popularCount]
	}

	c.HTML(http.StatusOK, "games.tmpl", gin.H{
		"User":    currentUser(c),
		"Games":   res.Content,
		"Popular": popular,
		"Meta":    res.Metadata,
		"Page":    page,
		"Pages":   pageLinks(page, res.Metadata.TotalPages),
	})
}

func (h *CatalogHandler) detail(c *gin.Context) {
	game, err := h.svc.Game(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RenderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "game_detail.tmpl", gin.H{
		"User": currentUser(c),
		"Game": game,
	})
}
