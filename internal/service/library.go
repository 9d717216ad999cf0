package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gauthier-se/Checkpoint/internal/api"
	"github.com/gauthier-se/Checkpoint/internal/model"
	"github.com/gauthier-se/Checkpoint/internal/query"
)

const libraryTTL = 5 * time.Minute

type libraryService struct {
	library api.LibraryAPI
	cache   *query.Cache
	log     zerolog.Logger
}

func NewLibraryService(library api.LibraryAPI, cache *query.Cache, logger zerolog.Logger) LibraryService {
	l := logger.With().Str("module", "service").Str("component", "library").Logger()
	return &libraryService{library: library, cache: cache, log: l}
}

func libraryKey(cred api.Credential) query.Key {
	return query.NewKey("library", "me", cred.Token())
}

func (s *libraryService) Library(ctx context.Context, cred api.Credential) (model.PagedResponse[model.UserGame], error) {
	if !cred.Available() {
		return model.PagedResponse[model.UserGame]{}, ErrNoCredentials
	}
	res, err := query.Resolve(ctx, s.cache, libraryKey(cred), libraryTTL, func(ctx context.Context) (model.PagedResponse[model.UserGame], error) {
		return s.library.Library(ctx, cred)
	})
	if err != nil {
		s.log.Error().Err(err).Msg("load library failed")
		return model.PagedResponse[model.UserGame]{}, err
	}
	return res, nil
}

// UpdateStatus moves one library entry to a new shelf, then invalidates the
// cached listing: the whole library is refetched rather than patched in
// place, trading a round trip for read-your-writes consistency.
func (s *libraryService) UpdateStatus(ctx context.Context, cred api.Credential, gameID string, status model.GameStatus) error {
	var ferrs []FieldError
	if gameID == "" {
		ferrs = append(ferrs, FieldError{Field: "gameId", Message: "must not be empty"})
	}
	if !status.Valid() {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "must be one of BACKLOG|PLAYING|COMPLETED|DROPPED"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return err
	}

	if err := s.library.UpdateLibraryEntry(ctx, cred, gameID, status); err != nil {
		s.log.Error().Err(err).Str("game_id", gameID).Str("status", string(status)).Msg("update library entry failed")
		return err
	}
	s.cache.Invalidate(libraryKey(cred))
	return nil
}

func (s *libraryService) Remove(ctx context.Context, cred api.Credential, gameID string) error {
	if gameID == "" {
		return newInvalidInput([]FieldError{{Field: "gameId", Message: "must not be empty"}})
	}
	if err := s.library.RemoveLibraryEntry(ctx, cred, gameID); err != nil {
		s.log.Error().Err(err).Str("game_id", gameID).Msg("remove library entry failed")
		return err
	}
	s.cache.Invalidate(libraryKey(cred))
	return nil
}

// FilterByStatus narrows a library listing to one shelf. An unrecognized or
// empty filter returns the listing unchanged ("ALL").
func FilterByStatus(games []model.UserGame, filter string) []model.UserGame {
	status := model.GameStatus(filter)
	if !status.Valid() {
		return games
	}
	out := make([]model.UserGame, 0, len(games))
	for _, g := range games {
		if g.Status == status {
			out = append(out, g)
		}
	}
	return out
}
