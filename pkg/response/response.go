// Package response centralizes error-to-page mapping so handlers stay thin
// and pages stay uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gauthier-se/Checkpoint/internal/api"
	"github.com/gauthier-se/Checkpoint/internal/service"
)

// ErrorPage is the data rendered by the shared error template.
type ErrorPage struct {
	Status      int
	Title       string
	Message     string
	FieldErrors []service.FieldError
}

// MapError converts a domain or upstream error into an HTTP status and error
// page data. Extend here as new error categories emerge.
func MapError(err error) (int, ErrorPage) {
	switch {
	case err == nil:
		return http.StatusOK, ErrorPage{Status: http.StatusOK, Title: "OK"}
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, ErrorPage{
			Status:      http.StatusBadRequest,
			Title:       "Invalid request",
			Message:     "One or more fields are invalid.",
			FieldErrors: service.FieldErrors(err),
		}
	case errors.Is(err, api.ErrNotFound):
		return http.StatusNotFound, ErrorPage{
			Status:  http.StatusNotFound,
			Title:   "Not found",
			Message: "The page you are looking for does not exist.",
		}
	case errors.Is(err, api.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorPage{
			Status:  http.StatusUnauthorized,
			Title:   "Not signed in",
			Message: "You need to sign in to see this page.",
		}
	case errors.Is(err, api.ErrUnavailable):
		return http.StatusBadGateway, ErrorPage{
			Status:  http.StatusBadGateway,
			Title:   "Service unavailable",
			Message: "Checkpoint could not reach its data source. Try again shortly.",
		}
	default:
		return http.StatusInternalServerError, ErrorPage{
			Status:  http.StatusInternalServerError,
			Title:   "Something went wrong",
			Message: "An unexpected error occurred.",
		}
	}
}

// RenderError writes the shared error page and aborts the request. This is
// the route-level error boundary: loader and mutation failures land here,
// coarse-grained and per-page.
func RenderError(c *gin.Context, err error) {
	status, page := MapError(err)
	c.HTML(status, "error.tmpl", gin.H{"Error": page})
	c.Abort()
}
