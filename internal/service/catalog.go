package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/gauthier-se/Checkpoint/internal/api"
	"github.com/gauthier-se/Checkpoint/internal/model"
	"github.com/gauthier-se/Checkpoint/internal/query"
)

// CatalogPageSize is how many games one catalog page shows.
const CatalogPageSize = 32

// catalogTTL keeps catalog pages briefly deduplicated across tabs without
// hiding upstream updates for long.
const catalogTTL = 30 * time.Second

type catalogService struct {
	catalog api.CatalogAPI
	cache   *query.Cache
	log     zerolog.Logger
}

func NewCatalogService(catalog api.CatalogAPI, cache *query.Cache, logger zerolog.Logger) CatalogService {
	l := logger.With().Str("module", "service").Str("component", "catalog").Logger()
	return &catalogService{catalog: catalog, cache: cache, log: l}
}

func (s *catalogService) Games(ctx context.Context, page int) (model.PagedResponse[model.Game], error) {
	if page < 0 {
		page = 0
	}
	key := query.NewKey("games", "page", strconv.Itoa(page))
	res, err := query.Resolve(ctx, s.cache, key, catalogTTL, func(ctx context.Context) (model.PagedResponse[model.Game], error) {
		return s.catalog.Games(ctx, page, CatalogPageSize)
	})
	if err != nil {
		s.log.Error().Err(err).Int("page", page).Msg("list games failed")
		return model.PagedResponse[model.Game]{}, err
	}
	return res, nil
}

func (s *catalogService) Game(ctx context.Context, id string) (model.GameDetail, error) {
	if id == "" {
		return model.GameDetail{}, newInvalidInput([]FieldError{{Field: "id", Message: "must not be empty"}})
	}
	detail, err := s.catalog.Game(ctx, id)
	if err != nil {
		if !api.IsNotFound(err) {
			s.log.Error().Err(err).Str("game_id", id).Msg("get game failed")
		}
		return model.GameDetail{}, err
	}
	return detail, nil
}
