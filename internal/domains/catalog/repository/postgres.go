package repository

import (
	"context"
	"fmt"

	"mediareview-backend/internal/domains/catalog/model"
	"mediareview-backend/pkg/database"
)

type postgresCatalogRepository struct {
	pool database.Pool
}

func NewPostgresCatalogRepository(pool database.Pool) CatalogRepository {
	return &postgresCatalogRepository{pool: pool}
}

func (r *postgresCatalogRepository) ListGenres(ctx context.Context) ([]*model.Genre, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM genre ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	var genres []*model.Genre
	for rows.Next() {
		genre := &model.Genre{}
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, genre)
	}

	return genres, rows.Err()
}

func (r *postgresCatalogRepository) ListMedia(ctx context.Context) ([]*model.Media, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM media ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	defer rows.Close()

	var media []*model.Media
	for rows.Next() {
		m := &model.Media{}
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan media: %w", err)
		}
		media = append(media, m)
	}

	return media, rows.Err()
}

func (r *postgresCatalogRepository) ListPlatforms(ctx context.Context) ([]*model.Platform, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, link FROM platform ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list platforms: %w", err)
	}
	defer rows.Close()

	var platforms []*model.Platform
	for rows.Next() {
		p := &model.Platform{}
		if err := rows.Scan(&p.ID, &p.Link); err != nil {
			return nil, fmt.Errorf("failed to scan platform: %w", err)
		}
		platforms = append(platforms, p)
	}

	return platforms, rows.Err()
}
