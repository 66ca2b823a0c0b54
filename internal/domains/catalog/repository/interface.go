package repository

import (
	"context"

	"mediareview-backend/internal/domains/catalog/model"
)

// CatalogRepository reads the seeded reference tables.
type CatalogRepository interface {
	ListGenres(ctx context.Context) ([]*model.Genre, error)
	ListMedia(ctx context.Context) ([]*model.Media, error)
	ListPlatforms(ctx context.Context) ([]*model.Platform, error)
}
