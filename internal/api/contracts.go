package api

import (
	"context"
	"net/http"

	"github.com/gauthier-se/Checkpoint/internal/model"
)

// AuthAPI declares the session endpoints the frontend consumes. Services
// depend on these interfaces so tests can substitute fakes without a live
// upstream.
type AuthAPI interface {
	CurrentUser(ctx context.Context, cred Credential) (*model.User, error)
	Login(ctx context.Context, email, password string) (*http.Cookie, error)
	Logout(ctx context.Context, cred Credential) error
}

// CatalogAPI declares the public game catalog endpoints.
type CatalogAPI interface {
	Games(ctx context.Context, page, size int) (model.PagedResponse[model.Game], error)
	Game(ctx context.Context, id string) (model.GameDetail, error)
}

// LibraryAPI declares the credentialed personal library endpoints.
type LibraryAPI interface {
	Library(ctx context.Context, cred Credential) (model.PagedResponse[model.UserGame], error)
	UpdateLibraryEntry(ctx context.Context, cred Credential, gameID string, status model.GameStatus) error
	RemoveLibraryEntry(ctx context.Context, cred Credential, gameID string) error
}

var (
	_ AuthAPI    = (*Client)(nil)
	_ CatalogAPI = (*Client)(nil)
	_ LibraryAPI = (*Client)(nil)
)
