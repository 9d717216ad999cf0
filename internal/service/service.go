// Package service holds use-case orchestration between the remote API client,
// the query cache and the handlers. Kept intentionally lean: coordination,
// validation and domain error shaping only.
package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/gauthier-se/Checkpoint/internal/api"
	"github.com/gauthier-se/Checkpoint/internal/model"
)

// ErrInvalidInput is the marker error for aggregated validation failures.
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrNoCredentials reports that the current environment has no credential
// transport: session state is unknown, which is not the same as logged out.
var ErrNoCredentials = errors.New("credential transport unavailable")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to
// ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors
// are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// SessionService is the single source of truth for "who is the current
// user", backed by the shared query cache with a five-minute freshness
// window and one fetch per session key.
type SessionService interface {
	// CurrentUser resolves the session user for cred. A resolved nil means
	// "checked, not logged in". ErrNoCredentials means the environment could
	// not check at all and the caller must not redirect on it.
	CurrentUser(ctx context.Context, cred api.Credential) (*model.User, error)
	// Login validates credentials and exchanges them for a session cookie.
	Login(ctx context.Context, email, password string) (*http.Cookie, error)
	// Logout terminates the remote session. Whatever the remote outcome, the
	// local cache holds "no user" by the time Logout returns; remote failure
	// is not surfaced.
	Logout(ctx context.Context, cred api.Credential)
	// Invalidate marks the cached session stale, forcing the next
	// CurrentUser to refetch without flickering the value away.
	Invalidate(cred api.Credential)
}

// CatalogService defines the public game catalog use cases.
type CatalogService interface {
	// Games returns one catalog page; page is the API's 0-based index.
	Games(ctx context.Context, page int) (model.PagedResponse[model.Game], error)
	// Game returns a single game's detail; a missing id is api.ErrNotFound.
	Game(ctx context.Context, id string) (model.GameDetail, error)
}

// LibraryService defines the personal game library use cases.
type LibraryService interface {
	Library(ctx context.Context, cred api.Credential) (model.PagedResponse[model.UserGame], error)
	UpdateStatus(ctx context.Context, cred api.Credential, gameID string, status model.GameStatus) error
	Remove(ctx context.Context, cred api.Credential, gameID string) error
}
