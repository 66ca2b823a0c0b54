package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"mediareview-backend/internal/domains/review/model"
	"mediareview-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresReviewRepository struct {
	pool database.Pool
}

func NewPostgresReviewRepository(pool database.Pool) ReviewRepository {
	return &postgresReviewRepository{pool: pool}
}

// =====================================================
// WRITE (transactional)
// =====================================================

func (r *postgresReviewRepository) CreateWithGenres(
	ctx context.Context,
	review *model.Review,
	genreIDs []int64,
) (int64, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		query := `
			INSERT INTO review (media_fk, title, description, platform_fk, user_fk)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`

		var id int64
		err := tx.QueryRow(ctx, query,
			review.MediaID,
			review.Title,
			review.Description,
			review.PlatformID,
			review.UserID,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to create review: %w", err)
		}

		if err := insertGenres(ctx, tx, id, genreIDs); err != nil {
			return 0, err
		}

		return id, nil
	})
}

func (r *postgresReviewRepository) UpdateWithGenres(
	ctx context.Context,
	id int64,
	title, description string,
	genreIDs []int64,
) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE review
			SET title = $2, description = $3, updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`

		result, err := tx.Exec(ctx, query, id, title, description)
		if err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}

		if result.RowsAffected() == 0 {
			return model.ErrReviewNotFound
		}

		// Replace the full genre set.
		if _, err := tx.Exec(ctx, `DELETE FROM review_genres WHERE review_fk = $1`, id); err != nil {
			return fmt.Errorf("failed to clear genres: %w", err)
		}

		return insertGenres(ctx, tx, id, genreIDs)
	})
}

// insertGenres batches the junction rows for one review.
func insertGenres(ctx context.Context, tx pgx.Tx, reviewID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, genreID := range genreIDs {
		batch.Queue(
			`INSERT INTO review_genres (review_fk, genre_fk) VALUES ($1, $2)`,
			reviewID, genreID,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range genreIDs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert genre link: %w", err)
		}
	}

	return nil
}

// =====================================================
// READ
// =====================================================

const detailColumns = `
	r.id, r.title, r.description, r.media_fk, r.platform_fk, r.user_fk,
	u.name, m.name,
	COALESCE(ARRAY_AGG(g.name) FILTER (WHERE g.name IS NOT NULL), '{}'),
	r.is_blocked, r.created_at, r.updated_at
`

const detailJoins = `
	FROM review r
	JOIN users u ON u.id = r.user_fk
	JOIN media m ON m.id = r.media_fk
	LEFT JOIN review_genres rg ON rg.review_fk = r.id
	LEFT JOIN genre g ON g.id = rg.genre_fk
`

const detailGroupBy = `
	GROUP BY r.id, u.name, m.name
`

func scanDetail(row pgx.Row) (*model.ReviewDetail, error) {
	detail := &model.ReviewDetail{}
	err := row.Scan(
		&detail.ID,
		&detail.Title,
		&detail.Description,
		&detail.MediaID,
		&detail.PlatformID,
		&detail.UserID,
		&detail.AuthorName,
		&detail.MediaName,
		&detail.GenreNames,
		&detail.IsBlocked,
		&detail.CreatedAt,
		&detail.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (r *postgresReviewRepository) GetDetailByID(ctx context.Context, id int64) (*model.ReviewDetail, error) {
	query := `SELECT` + detailColumns + detailJoins + `
		WHERE r.id = $1 AND r.deleted_at IS NULL
	` + detailGroupBy

	detail, err := scanDetail(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return detail, nil
}

func (r *postgresReviewRepository) ListActive(ctx context.Context, limit int) ([]*model.ReviewDetail, error) {
	query := `SELECT` + detailColumns + detailJoins + `
		WHERE r.is_blocked = false AND r.deleted_at IS NULL
	` + detailGroupBy + `
		ORDER BY r.id
		LIMIT $1
	`

	return r.listDetails(ctx, query, limit)
}

func (r *postgresReviewRepository) ListBlocked(ctx context.Context) ([]*model.ReviewDetail, error) {
	query := `SELECT` + detailColumns + detailJoins + `
		WHERE r.is_blocked = true AND r.deleted_at IS NULL
	` + detailGroupBy + `
		ORDER BY r.updated_at DESC
	`

	return r.listDetails(ctx, query)
}

func (r *postgresReviewRepository) listDetails(
	ctx context.Context,
	query string,
	args ...interface{},
) ([]*model.ReviewDetail, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var details []*model.ReviewDetail
	for rows.Next() {
		detail, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return details, nil
}

// =====================================================
// SEARCH
// =====================================================

func (r *postgresReviewRepository) SearchByTitle(ctx context.Context, fragment string) ([]*model.SearchRow, error) {
	// Raw aggregate search: one row per review, genres folded into a single
	// comma-joined string.
	query := `
		SELECT
			r.id, r.title, r.description,
			u.name AS user_name,
			m.name AS media_name,
			COALESCE(STRING_AGG(g.name, ','), '') AS genre_names
		FROM review r
		JOIN users u ON u.id = r.user_fk
		JOIN media m ON m.id = r.media_fk
		LEFT JOIN review_genres rg ON rg.review_fk = r.id
		LEFT JOIN genre g ON g.id = rg.genre_fk
		WHERE r.title ILIKE $1
			AND r.deleted_at IS NULL
		GROUP BY r.id, u.name, m.name
		ORDER BY r.id
	`

	rows, err := r.pool.Query(ctx, query, "%"+fragment+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search reviews: %w", err)
	}
	defer rows.Close()

	var results []*model.SearchRow
	for rows.Next() {
		row := &model.SearchRow{}
		err := rows.Scan(
			&row.ID,
			&row.Title,
			&row.Description,
			&row.UserName,
			&row.MediaName,
			&row.GenreNames,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to search reviews: %w", err)
	}

	return results, nil
}

// =====================================================
// MODERATION
// =====================================================

func (r *postgresReviewRepository) GetBlockState(ctx context.Context, id int64) (bool, error) {
	query := `SELECT is_blocked FROM review WHERE id = $1 AND deleted_at IS NULL`

	var blocked bool
	err := r.pool.QueryRow(ctx, query, id).Scan(&blocked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, model.ErrReviewNotFound
		}
		return false, fmt.Errorf("failed to get block state: %w", err)
	}

	return blocked, nil
}

func (r *postgresReviewRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	query := `
		UPDATE review
		SET is_blocked = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, id, blocked)
	if err != nil {
		return fmt.Errorf("failed to set block state: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

// =====================================================
// GESTURES & AUDIT
// =====================================================

func (r *postgresReviewRepository) UpsertGesture(ctx context.Context, action *model.ReviewAction) error {
	query := `
		INSERT INTO review_actions (user_fk, review_fk, review_gesture)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_fk, review_fk)
		DO UPDATE SET review_gesture = EXCLUDED.review_gesture, updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query, action.UserID, action.ReviewID, action.Gesture)
	if err != nil {
		return fmt.Errorf("failed to upsert gesture: %w", err)
	}

	return nil
}

func (r *postgresReviewRepository) LogModerationEvent(ctx context.Context, reviewID int64, isBlocked bool) error {
	query := `
		INSERT INTO review_moderation_events (review_fk, is_blocked)
		VALUES ($1, $2)
	`

	_, err := r.pool.Exec(ctx, query, reviewID, isBlocked)
	if err != nil {
		return fmt.Errorf("failed to log moderation event: %w", err)
	}

	return nil
}
