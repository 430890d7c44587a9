package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"storefront/search/internal/client"
	"storefront/search/internal/domain"
	"storefront/search/internal/domain/task"
	"storefront/search/internal/queue"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	products []domain.Product
	err      error
	calls    int
}

func (f *fakeCatalog) GetProducts(ctx context.Context, filter client.ProductFilter) ([]domain.Product, error) {
	f.calls++
	return f.products, f.err
}

type fakeQueue struct {
	added  []task.Task
	acked  []string
	addErr error

	getErr   error
	getCalls atomic.Int64
}

func (f *fakeQueue) AddTask(ctx context.Context, t task.Task) (string, error) {
	if f.addErr != nil {
		return "", f.addErr
	}
	f.added = append(f.added, t)
	return "1-0", nil
}

func (f *fakeQueue) GetTask(ctx context.Context, group, consumer, stream string) (*redis.XMessage, error) {
	f.getCalls.Add(1)
	return nil, f.getErr
}

func (f *fakeQueue) AckTask(ctx context.Context, stream, group, msgID string) error {
	f.acked = append(f.acked, msgID)
	return nil
}

func (f *fakeQueue) AutoClaim(ctx context.Context, group, consumer, stream string, minIdleTime time.Duration) ([]redis.XMessage, error) {
	return nil, nil
}

type fakeRepository struct {
	saved   []domain.SearchEvent
	saveErr error
	stats   []domain.QueryStat
}

func (f *fakeRepository) SaveSearchEvent(ctx context.Context, event *domain.SearchEvent) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, *event)
	return nil
}

func (f *fakeRepository) TopQueries(ctx context.Context, limit int) ([]domain.QueryStat, error) {
	return f.stats, nil
}

func newTestService(catalog *fakeCatalog, q *fakeQueue, repo *fakeRepository) *Service {
	s := NewService(catalog, q, repo, "group", 60)
	s.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func publishedEvent(t *testing.T, q *fakeQueue) domain.SearchEvent {
	t.Helper()
	require.Len(t, q.added, 1)
	ev, ok := q.added[0].(*task.SearchEventTask)
	require.True(t, ok)
	return ev.Event
}

func TestSearch_ObviousQuerySkipsCatalog(t *testing.T) {
	catalog := &fakeCatalog{}
	q := &fakeQueue{}
	s := newTestService(catalog, q, &fakeRepository{})

	res, err := s.Search(context.Background(), "Dry Food")
	require.NoError(t, err)

	assert.Equal(t, 0, catalog.calls)
	assert.Equal(t, domain.KindSubcategory, res.Suggestion.Kind)
	assert.Equal(t, "/shop-for-dogs/dogfood/dry-food", res.URL)
	assert.False(t, res.Degraded)

	ev := publishedEvent(t, q)
	assert.Equal(t, "Dry Food", ev.Query)
	assert.Equal(t, "dry food", ev.NormalizedQuery)
	assert.Equal(t, domain.KindSubcategory, ev.Kind)
	assert.Equal(t, res.URL, ev.URL)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), ev.CreatedAt)
}

func TestSearch_ProductMatch(t *testing.T) {
	catalog := &fakeCatalog{products: []domain.Product{
		{ID: 12, Name: "Wild Salmon Bites", Type: "Cat"},
	}}
	q := &fakeQueue{}
	s := newTestService(catalog, q, &fakeRepository{})

	res, err := s.Search(context.Background(), "salmon bites")
	require.NoError(t, err)

	assert.Equal(t, 1, catalog.calls)
	assert.Equal(t, domain.KindProduct, res.Suggestion.Kind)
	assert.Equal(t, "/product-details/12?search=salmon+bites", res.URL)
	assert.Equal(t, "/shop-for-cats", res.Suggestion.FallbackRoute)
	assert.Equal(t, 1, publishedEvent(t, q).ProductCount)
}

func TestSearch_CatalogFailureDegrades(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("connection refused")}
	q := &fakeQueue{}
	s := newTestService(catalog, q, &fakeRepository{})

	res, err := s.Search(context.Background(), "salmon bites")
	require.NoError(t, err)

	assert.True(t, res.Degraded)
	assert.Equal(t, domain.KindGeneral, res.Suggestion.Kind)
	assert.Equal(t, "/shop-for-dogs?search=salmon+bites", res.URL)
	assert.True(t, publishedEvent(t, q).Degraded)
}

func TestSearch_PublishFailureIsIgnored(t *testing.T) {
	s := newTestService(&fakeCatalog{}, &fakeQueue{addErr: errors.New("redis down")}, &fakeRepository{})

	res, err := s.Search(context.Background(), "royal canin")
	require.NoError(t, err)
	assert.Equal(t, "/brand/royal-canin", res.URL)
}

func TestSuggest(t *testing.T) {
	t.Run("short query skips catalog", func(t *testing.T) {
		catalog := &fakeCatalog{}
		s := newTestService(catalog, &fakeQueue{}, &fakeRepository{})

		got, err := s.Suggest(context.Background(), "d")
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, 0, catalog.calls)
	})

	t.Run("catalog failure still suggests from rules", func(t *testing.T) {
		s := newTestService(&fakeCatalog{err: errors.New("timeout")}, &fakeQueue{}, &fakeRepository{})

		got, err := s.Suggest(context.Background(), "dental")
		require.NoError(t, err)
		require.NotEmpty(t, got)
		assert.Equal(t, "Dental Chew", got[0].Text)
	})

	t.Run("includes products", func(t *testing.T) {
		catalog := &fakeCatalog{products: []domain.Product{{ID: 4, Name: "Salmon Oil"}}}
		s := newTestService(catalog, &fakeQueue{}, &fakeRepository{})

		got, err := s.Suggest(context.Background(), "salmon")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, domain.KindProduct, got[0].Kind)
	})
}

func TestProcessMessage(t *testing.T) {
	stream := queue.StreamName(task.SearchEventTaskType)

	valid := func(t *testing.T) *redis.XMessage {
		data, err := (&task.SearchEventTask{Event: domain.SearchEvent{Query: "leash", Kind: domain.KindSubcategory}}).TaskValue()
		require.NoError(t, err)
		return &redis.XMessage{ID: "1-1", Values: map[string]interface{}{
			"task_type": task.SearchEventTaskType,
			"task_data": string(data),
		}}
	}

	t.Run("saves and acks", func(t *testing.T) {
		q, repo := &fakeQueue{}, &fakeRepository{}
		s := newTestService(&fakeCatalog{}, q, repo)

		require.NoError(t, s.processMessage(context.Background(), stream, valid(t)))
		require.Len(t, repo.saved, 1)
		assert.Equal(t, "leash", repo.saved[0].Query)
		assert.Equal(t, []string{"1-1"}, q.acked)
	})

	t.Run("malformed is acked without saving", func(t *testing.T) {
		q, repo := &fakeQueue{}, &fakeRepository{}
		s := newTestService(&fakeCatalog{}, q, repo)

		msg := &redis.XMessage{ID: "2-1", Values: map[string]interface{}{"task_type": "Other"}}
		require.NoError(t, s.processMessage(context.Background(), stream, msg))
		assert.Empty(t, repo.saved)
		assert.Equal(t, []string{"2-1"}, q.acked)
	})

	t.Run("save failure leaves message pending", func(t *testing.T) {
		q, repo := &fakeQueue{}, &fakeRepository{saveErr: errors.New("db down")}
		s := newTestService(&fakeCatalog{}, q, repo)

		assert.Error(t, s.processMessage(context.Background(), stream, valid(t)))
		assert.Empty(t, q.acked)
	})
}

func TestTopQueries(t *testing.T) {
	repo := &fakeRepository{stats: []domain.QueryStat{{NormalizedQuery: "dry food", Count: 3}}}
	s := newTestService(&fakeCatalog{}, &fakeQueue{}, repo)

	stats, err := s.TopQueries(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, repo.stats, stats)
}

func TestRunWorkers_WaitsAfterReadErrors(t *testing.T) {
	q := &fakeQueue{getErr: errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")}
	s := newTestService(&fakeCatalog{}, q, &fakeRepository{})
	s.retryDelay = 50 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.RunWorkers(ctx, 2) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop after context cancellation")
	}

	// Two workers polling every 50ms for 120ms: three reads each at most.
	calls := q.getCalls.Load()
	assert.GreaterOrEqual(t, calls, int64(2))
	assert.LessOrEqual(t, calls, int64(8))
}
