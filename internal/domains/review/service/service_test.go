package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediareview-backend/internal/domains/review/model"
	"mediareview-backend/internal/domains/review/service"
)

// =====================================================
// FAKES
// =====================================================

type fakeReviewRepo struct {
	nextID       int64
	createErr    error
	createdRows  []*model.Review
	createdGenre [][]int64

	updateCalls int
	updateErr   error

	detail    *model.ReviewDetail
	detailErr error
	getCalls  int

	active     []*model.ReviewDetail
	activeErr  error
	listCalls  int
	blockedErr error
	blocked    []*model.ReviewDetail

	searchRows []*model.SearchRow
	searchErr  error

	blockState    bool
	blockStateErr error

	setBlockedCalls []bool
	setBlockedErr   error

	gestures   []*model.ReviewAction
	gestureErr error
}

func (f *fakeReviewRepo) CreateWithGenres(ctx context.Context, review *model.Review, genreIDs []int64) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	f.createdRows = append(f.createdRows, review)
	f.createdGenre = append(f.createdGenre, genreIDs)
	return f.nextID, nil
}

func (f *fakeReviewRepo) UpdateWithGenres(ctx context.Context, id int64, title, description string, genreIDs []int64) error {
	f.updateCalls++
	return f.updateErr
}

func (f *fakeReviewRepo) GetDetailByID(ctx context.Context, id int64) (*model.ReviewDetail, error) {
	f.getCalls++
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

func (f *fakeReviewRepo) ListActive(ctx context.Context, limit int) ([]*model.ReviewDetail, error) {
	f.listCalls++
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	return f.active, nil
}

func (f *fakeReviewRepo) ListBlocked(ctx context.Context) ([]*model.ReviewDetail, error) {
	if f.blockedErr != nil {
		return nil, f.blockedErr
	}
	return f.blocked, nil
}

func (f *fakeReviewRepo) SearchByTitle(ctx context.Context, fragment string) ([]*model.SearchRow, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchRows, nil
}

func (f *fakeReviewRepo) GetBlockState(ctx context.Context, id int64) (bool, error) {
	if f.blockStateErr != nil {
		return false, f.blockStateErr
	}
	return f.blockState, nil
}

func (f *fakeReviewRepo) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	if f.setBlockedErr != nil {
		return f.setBlockedErr
	}
	f.setBlockedCalls = append(f.setBlockedCalls, blocked)
	return nil
}

func (f *fakeReviewRepo) UpsertGesture(ctx context.Context, action *model.ReviewAction) error {
	if f.gestureErr != nil {
		return f.gestureErr
	}
	f.gestures = append(f.gestures, action)
	return nil
}

func (f *fakeReviewRepo) LogModerationEvent(ctx context.Context, reviewID int64, isBlocked bool) error {
	return nil
}

type publishedTask struct {
	queue    string
	taskType string
	payload  interface{}
}

type fakePublisher struct {
	published []publishedTask
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, queue, taskType string, payload interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, publishedTask{queue: queue, taskType: taskType, payload: payload})
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeCache struct {
	entries map[string]interface{}
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]interface{}{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	cached, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	if detail, ok := cached.(*model.ReviewDetail); ok {
		if out, ok := dest.(*model.ReviewDetail); ok {
			*out = *detail
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.entries, key)
		f.deleted = append(f.deleted, key)
	}
	return nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func newService(repo *fakeReviewRepo, pub *fakePublisher) service.ServiceInterface {
	return service.NewReviewService(repo, pub, newFakeCache(), "undelete-review-service")
}

func validCreateRequest() model.CreateReviewRequest {
	return model.CreateReviewRequest{
		MediaID:     1,
		Title:       "Blade Runner",
		Description: "Rainy dystopia, unmatched atmosphere.",
		PlatformID:  2,
		UserID:      7,
		GenreIDs:    []int64{3, 5},
	}
}

// =====================================================
// CREATE
// =====================================================

func TestCreateReviewReturnsNewID(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := newService(repo, &fakePublisher{})

	resp, err := svc.CreateReview(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ReviewID)
	require.Len(t, repo.createdGenre, 1)
	assert.Equal(t, []int64{3, 5}, repo.createdGenre[0])
}

func TestCreateReviewRejectsInvalidBeforeStorage(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := newService(repo, &fakePublisher{})

	req := validCreateRequest()
	req.Title = ""

	_, err := svc.CreateReview(context.Background(), req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidationFailed))
	assert.Empty(t, repo.createdRows, "invalid request must never reach storage")
}

func TestCreateReviewRejectsOverlongTitle(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := newService(repo, &fakePublisher{})

	req := validCreateRequest()
	for len(req.Title) <= model.MaxTitleLength {
		req.Title += "x"
	}

	_, err := svc.CreateReview(context.Background(), req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidationFailed))
}

func TestCreateReviewStorageFailure(t *testing.T) {
	repo := &fakeReviewRepo{createErr: errors.New("connection reset")}
	svc := newService(repo, &fakePublisher{})

	_, err := svc.CreateReview(context.Background(), validCreateRequest())

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrWriteFailed))
}

// =====================================================
// UPDATE
// =====================================================

func TestUpdateReviewValidationLeavesStoreUntouched(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := newService(repo, &fakePublisher{})

	err := svc.UpdateReview(context.Background(), 1, model.UpdateReviewRequest{
		Title:       "",
		Description: "still fine",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidationFailed))
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateReviewNotFound(t *testing.T) {
	repo := &fakeReviewRepo{updateErr: model.ErrReviewNotFound}
	svc := newService(repo, &fakePublisher{})

	err := svc.UpdateReview(context.Background(), 42, model.UpdateReviewRequest{
		Title:       "New title",
		Description: "New description",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrReviewNotFound))
}

// =====================================================
// READ
// =====================================================

func TestGetReviewAbsentIsNotAnError(t *testing.T) {
	repo := &fakeReviewRepo{detailErr: model.ErrReviewNotFound}
	svc := newService(repo, &fakePublisher{})

	detail, err := svc.GetReview(context.Background(), 99)

	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestGetReviewServesSecondReadFromCache(t *testing.T) {
	repo := &fakeReviewRepo{detail: &model.ReviewDetail{ID: 3, Title: "Dune"}}
	svc := newService(repo, &fakePublisher{})

	first, err := svc.GetReview(context.Background(), 3)
	require.NoError(t, err)
	second, err := svc.GetReview(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, 1, repo.getCalls)
}

func TestListReviewsZeroLimitSkipsStorage(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := newService(repo, &fakePublisher{})

	details, err := svc.ListReviews(context.Background(), 0)

	require.NoError(t, err)
	assert.Empty(t, details)
	assert.Zero(t, repo.listCalls)
}

func TestListReviewsNegativeLimitRejected(t *testing.T) {
	svc := newService(&fakeReviewRepo{}, &fakePublisher{})

	_, err := svc.ListReviews(context.Background(), -1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidationFailed))
}

func TestSearchReviewsEmptyFragmentRejected(t *testing.T) {
	svc := newService(&fakeReviewRepo{}, &fakePublisher{})

	_, err := svc.SearchReviewsByTitle(context.Background(), "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidationFailed))
}

func TestSearchReviewsNoMatchesReturnsEmptySlice(t *testing.T) {
	svc := newService(&fakeReviewRepo{}, &fakePublisher{})

	rows, err := svc.SearchReviewsByTitle(context.Background(), "zzz")

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

// =====================================================
// MODERATION
// =====================================================

func TestBlockReviewMessage(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := newService(repo, &fakePublisher{})

	resp, err := svc.BlockReview(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, "Review deleted successfully", resp.Message)
	assert.Equal(t, []bool{true}, repo.setBlockedCalls)
}

func TestBlockReviewNeverPublishes(t *testing.T) {
	pub := &fakePublisher{}
	svc := newService(&fakeReviewRepo{}, pub)

	_, err := svc.BlockReview(context.Background(), 5)

	require.NoError(t, err)
	assert.Empty(t, pub.published)
}

func TestBlockReviewMissing(t *testing.T) {
	repo := &fakeReviewRepo{setBlockedErr: model.ErrReviewNotFound}
	svc := newService(repo, &fakePublisher{})

	_, err := svc.BlockReview(context.Background(), 404)

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrReviewNotFound))
}

func TestUnblockMissingReview(t *testing.T) {
	repo := &fakeReviewRepo{blockStateErr: model.ErrReviewNotFound}
	pub := &fakePublisher{}
	svc := newService(repo, pub)

	result, err := svc.UnblockReview(context.Background(), 404)

	require.NoError(t, err)
	assert.Equal(t, model.UnblockOutcomeMissing, result.Outcome)
	assert.Equal(t, "Review does not exist", result.Message)
	assert.Empty(t, pub.published)
}

func TestUnblockNotBlockedIsNoOp(t *testing.T) {
	repo := &fakeReviewRepo{blockState: false}
	pub := &fakePublisher{}
	svc := newService(repo, pub)

	result, err := svc.UnblockReview(context.Background(), 8)

	require.NoError(t, err)
	assert.Equal(t, model.UnblockOutcomeNotBlocked, result.Outcome)
	assert.Equal(t, "Review is not blocked", result.Message)
	assert.Empty(t, repo.setBlockedCalls, "no-op must not touch the row")
	assert.Empty(t, pub.published, "no transition, no event")
}

func TestUnblockPublishesExactlyOneEvent(t *testing.T) {
	repo := &fakeReviewRepo{blockState: true}
	pub := &fakePublisher{}
	svc := newService(repo, pub)

	result, err := svc.UnblockReview(context.Background(), 8)

	require.NoError(t, err)
	assert.Equal(t, model.UnblockOutcomeUnblocked, result.Outcome)
	assert.Equal(t, "Review undeleted successfully", result.Message)
	assert.Equal(t, int64(8), result.ReviewID)

	assert.Equal(t, []bool{false}, repo.setBlockedCalls)
	require.Len(t, pub.published, 1)
	assert.Equal(t, "undelete-review-service", pub.published[0].queue)
	assert.Equal(t, "review:moderation_event", pub.published[0].taskType)

	payload, ok := pub.published[0].payload.(model.ModerationEventPayload)
	require.True(t, ok)
	assert.Equal(t, int64(8), payload.ReviewID)
	assert.False(t, payload.IsBlocked)
}

func TestUnblockPublishFailureKeepsCommittedState(t *testing.T) {
	repo := &fakeReviewRepo{blockState: true}
	pub := &fakePublisher{err: errors.New("redis unreachable")}
	svc := newService(repo, pub)

	_, err := svc.UnblockReview(context.Background(), 8)

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotifyFailed))
	// The unblock itself already happened and must not be rolled back.
	assert.Equal(t, []bool{false}, repo.setBlockedCalls)
}

// =====================================================
// GESTURES
// =====================================================

func TestRateReviewUpserts(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := newService(repo, &fakePublisher{})

	err := svc.RateReview(context.Background(), 3, 7, true)

	require.NoError(t, err)
	require.Len(t, repo.gestures, 1)
	assert.Equal(t, int64(7), repo.gestures[0].UserID)
	assert.Equal(t, int64(3), repo.gestures[0].ReviewID)
	assert.True(t, repo.gestures[0].Gesture)
}

func TestRateReviewMissingReview(t *testing.T) {
	repo := &fakeReviewRepo{blockStateErr: model.ErrReviewNotFound}
	svc := newService(repo, &fakePublisher{})

	err := svc.RateReview(context.Background(), 404, 7, false)

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrReviewNotFound))
}
