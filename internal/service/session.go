package service

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gauthier-se/Checkpoint/internal/api"
	"github.com/gauthier-se/Checkpoint/internal/model"
	"github.com/gauthier-se/Checkpoint/internal/query"
)

// sessionTTL is the freshness window for a resolved session user.
const sessionTTL = 5 * time.Minute

// sessionService implements SessionService over the auth endpoints and the
// shared query cache.
type sessionService struct {
	auth     api.AuthAPI
	cache    *query.Cache
	validate *validator.Validate
	log      zerolog.Logger
}

func NewSessionService(auth api.AuthAPI, cache *query.Cache, logger zerolog.Logger) SessionService {
	l := logger.With().Str("module", "service").Str("component", "session").Logger()
	return &sessionService{auth: auth, cache: cache, validate: validator.New(), log: l}
}

// sessionKey scopes the cached session to one browser session. Every
// freshness, dedup and forced-logout contract holds per key; an unkeyed
// entry would leak identity across sessions.
func sessionKey(cred api.Credential) query.Key {
	return query.NewKey("auth", "me", cred.Token())
}

func (s *sessionService) CurrentUser(ctx context.Context, cred api.Credential) (*model.User, error) {
	if !cred.Available() {
		// No credential transport in this pass: leave the entry untouched so
		// the state stays unknown rather than resolving to "logged out".
		return nil, ErrNoCredentials
	}
	return query.Resolve(ctx, s.cache, sessionKey(cred), sessionTTL, func(ctx context.Context) (*model.User, error) {
		u, err := s.auth.CurrentUser(ctx, cred)
		if err != nil {
			// Any failed session check resolves to "no user". This conflates
			// transport failures with "not logged in" and is kept as-is.
			s.log.Debug().Err(err).Msg("session check resolved to no user")
			return nil, nil
		}
		return u, nil
	})
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (s *sessionService) Login(ctx context.Context, email, password string) (*http.Cookie, error) {
	in := loginInput{Email: email, Password: password}
	if err := s.validate.Struct(in); err != nil {
		return nil, newInvalidInput(loginFieldErrors(err))
	}

	cookie, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.log.Debug().Err(err).Msg("login rejected")
		return nil, err
	}
	// The fresh session has no cached entry yet; the next CurrentUser call
	// fetches it with the new cookie attached.
	s.log.Info().Msg("login succeeded")
	return cookie, nil
}

func (s *sessionService) Logout(ctx context.Context, cred api.Credential) {
	if cred.Available() {
		if err := s.auth.Logout(ctx, cred); err != nil {
			// Swallowed: the contract is "always end up logged out locally".
			s.log.Debug().Err(err).Msg("remote logout failed, forcing local state")
		}
	}
	// Synchronous write before any caller continuation: by the time
	// navigation triggered by logout runs, the cache already says "no user".
	s.cache.Set(sessionKey(cred), (*model.User)(nil), sessionTTL)
}

func (s *sessionService) Invalidate(cred api.Credential) {
	s.cache.Invalidate(sessionKey(cred))
}
