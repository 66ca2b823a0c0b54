package service

import (
	"context"
	"fmt"
	"time"

	"mediareview-backend/internal/domains/catalog/model"
	"mediareview-backend/internal/domains/catalog/repository"
	"mediareview-backend/pkg/cache"
	"mediareview-backend/pkg/logger"
)

// Reference data changes rarely, so a long TTL is fine.
const referenceCacheTTL = time.Hour

type ServiceInterface interface {
	ListGenres(ctx context.Context) ([]*model.Genre, error)
	ListMedia(ctx context.Context) ([]*model.Media, error)
	ListPlatforms(ctx context.Context) ([]*model.Platform, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
	cache       cache.Cache
}

func NewCatalogService(catalogRepo repository.CatalogRepository, cache cache.Cache) ServiceInterface {
	return &catalogService{
		catalogRepo: catalogRepo,
		cache:       cache,
	}
}

func (s *catalogService) ListGenres(ctx context.Context) ([]*model.Genre, error) {
	var genres []*model.Genre
	err := s.cached(ctx, "catalog:genres", &genres, func() (interface{}, error) {
		items, err := s.catalogRepo.ListGenres(ctx)
		genres = items
		return items, err
	})
	return genres, err
}

func (s *catalogService) ListMedia(ctx context.Context) ([]*model.Media, error) {
	var media []*model.Media
	err := s.cached(ctx, "catalog:media", &media, func() (interface{}, error) {
		items, err := s.catalogRepo.ListMedia(ctx)
		media = items
		return items, err
	})
	return media, err
}

func (s *catalogService) ListPlatforms(ctx context.Context) ([]*model.Platform, error) {
	var platforms []*model.Platform
	err := s.cached(ctx, "catalog:platforms", &platforms, func() (interface{}, error) {
		items, err := s.catalogRepo.ListPlatforms(ctx)
		platforms = items
		return items, err
	})
	return platforms, err
}

// cached reads dest from the cache, falling back to load on a miss and
// writing the result back. Cache errors degrade to a database read.
func (s *catalogService) cached(ctx context.Context, key string, dest interface{}, load func() (interface{}, error)) error {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logger.Error("catalog cache read failed", err)
	}
	if found {
		return nil
	}

	items, err := load()
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}

	if err := s.cache.Set(ctx, key, items, referenceCacheTTL); err != nil {
		logger.Error("catalog cache write failed", err)
	}

	return nil
}
