package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediareview-backend/internal/domains/review/model"
	"mediareview-backend/internal/domains/review/repository"
)

var detailColumns = []string{
	"id", "title", "description", "media_fk", "platform_fk", "user_fk",
	"user_name", "media_name", "genre_names", "is_blocked", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, repository.ReviewRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, repository.NewPostgresReviewRepository(mock)
}

// =====================================================
// TRANSACTIONAL WRITES
// =====================================================

func TestCreateWithGenresCommitsRowAndLinks(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO review`).
		WithArgs(int64(1), "Dune", "Sci-fi epic", int64(2), int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	batch := mock.ExpectBatch()
	batch.ExpectExec(`INSERT INTO review_genres`).
		WithArgs(int64(7), int64(3)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	batch.ExpectExec(`INSERT INTO review_genres`).
		WithArgs(int64(7), int64(5)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	id, err := repo.CreateWithGenres(context.Background(), &model.Review{
		MediaID:     1,
		Title:       "Dune",
		Description: "Sci-fi epic",
		PlatformID:  2,
		UserID:      3,
	}, []int64{3, 5})

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithGenresRollsBackWhenGenreInsertFails(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO review`).
		WithArgs(int64(1), "Dune", "Sci-fi epic", int64(2), int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	batch := mock.ExpectBatch()
	batch.ExpectExec(`INSERT INTO review_genres`).
		WithArgs(int64(7), int64(3)).
		WillReturnError(errors.New("violates foreign key constraint"))
	mock.ExpectRollback()

	id, err := repo.CreateWithGenres(context.Background(), &model.Review{
		MediaID:     1,
		Title:       "Dune",
		Description: "Sci-fi epic",
		PlatformID:  2,
		UserID:      3,
	}, []int64{3})

	// The whole transaction rolls back: no review row survives a failed
	// genre insert.
	require.Error(t, err)
	assert.Zero(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func expectUpdateWithGenres(mock pgxmock.PgxPoolIface, id int64, genreIDs []int64) {
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE review`).
		WithArgs(id, "Dune", "Revised take").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`DELETE FROM review_genres`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", int64(len(genreIDs))))
	batch := mock.ExpectBatch()
	for _, genreID := range genreIDs {
		batch.ExpectExec(`INSERT INTO review_genres`).
			WithArgs(id, genreID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()
}

func TestUpdateWithGenresReplacesFullSet(t *testing.T) {
	mock, repo := newMockRepo(t)

	expectUpdateWithGenres(mock, 7, []int64{3, 5})

	err := repo.UpdateWithGenres(context.Background(), 7, "Dune", "Revised take", []int64{3, 5})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithGenresRepeatedLeavesSameSet(t *testing.T) {
	mock, repo := newMockRepo(t)

	// Each call clears the existing junction rows before reinserting, so a
	// repeated update with the same genre list leaves an identical set with
	// no duplicates.
	expectUpdateWithGenres(mock, 7, []int64{3, 5})
	expectUpdateWithGenres(mock, 7, []int64{3, 5})

	for i := 0; i < 2; i++ {
		err := repo.UpdateWithGenres(context.Background(), 7, "Dune", "Revised take", []int64{3, 5})
		require.NoError(t, err)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithGenresMissingReviewRollsBack(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE review`).
		WithArgs(int64(9999), "Dune", "Revised take").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := repo.UpdateWithGenres(context.Background(), 9999, "Dune", "Revised take", []int64{3})

	assert.ErrorIs(t, err, model.ErrReviewNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// =====================================================
// QUERIES
// =====================================================

func TestListActiveReturnsRowsInInsertionOrder(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`ORDER BY r\.id\s+LIMIT \$1`).
		WithArgs(20).
		WillReturnRows(pgxmock.NewRows(detailColumns).
			AddRow(int64(1), "Dune", "Epic", int64(1), int64(1), int64(1),
				"alice", "Dune", []string{"Sci-Fi"}, false, now, now).
			AddRow(int64(2), "Solaris", "Slow burn", int64(2), int64(1), int64(2),
				"bob", "Solaris", []string{"Sci-Fi", "Drama"}, false, now, now))

	details, err := repo.ListActive(context.Background(), 20)

	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, int64(1), details[0].ID)
	assert.Equal(t, int64(2), details[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchByTitleDoesNotFilterBlocked(t *testing.T) {
	mock, repo := newMockRepo(t)

	// The title search returns blocked reviews too; only soft-deleted rows
	// are excluded.
	mock.ExpectQuery(`WHERE r\.title ILIKE \$1\s+AND r\.deleted_at IS NULL`).
		WithArgs("%dun%").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "title", "description", "user_name", "media_name", "genre_names",
		}).AddRow(int64(1), "Dune", "Epic", "alice", "Dune", "Sci-Fi,Drama"))

	results, err := repo.SearchByTitle(context.Background(), "dun")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Sci-Fi,Drama", results[0].GenreNames)
	assert.NoError(t, mock.ExpectationsWereMet())
}
