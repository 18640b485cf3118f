package seed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transaction_dashboard/internal/db"
	"transaction_dashboard/internal/domain"
	"transaction_dashboard/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataset = `[
  {"id":1,"title":"Fjallraven Backpack","price":329.85,"description":"Your perfect pack","category":"men's clothing","image":"https://fakestoreapi.com/img/1.jpg","sold":false,"dateOfSale":"2021-11-27T20:29:54+05:30"},
  {"id":2,"title":"Mens Casual T-Shirt","price":44.6,"description":"Slim-fitting style","category":"men's clothing","image":"https://fakestoreapi.com/img/2.jpg","sold":false,"dateOfSale":"2021-10-27T20:29:54+05:30"},
  {"id":3,"title":"Mens Cotton Jacket","price":615.89,"description":"Great outerwear","category":"men's clothing","image":"https://fakestoreapi.com/img/3.jpg","sold":true,"dateOfSale":"2022-07-27T20:29:54+05:30"}
]`

func datasetServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func existing() *db.MemoryStore {
	return db.NewMemoryStore(
		domain.Transaction{ID: 100, Title: "Old", Category: "old", DateOfSale: time.Now()},
		domain.Transaction{ID: 101, Title: "Older", Category: "old", DateOfSale: time.Now()},
	)
}

func count(t *testing.T, store db.Store) int64 {
	t.Helper()
	n, err := store.Count(context.Background(), query.Filter{})
	require.NoError(t, err)
	return n
}

func TestRunReplacesCollection(t *testing.T) {
	srv := datasetServer(t, http.StatusOK, dataset)
	store := existing()

	n, err := NewSeeder(NewHTTPSource(srv.URL, time.Second), store, nil).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, int64(3), count(t, store))

	first, err := store.Find(context.Background(), query.Filter{Search: "329.85"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "Fjallraven Backpack", first[0].Title)
	assert.Equal(t, 11, query.MonthOf(first[0].DateOfSale))
}

func TestRunKeepsCollectionOnFetchFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"not found", http.StatusNotFound, ``},
		{"malformed json", http.StatusOK, `[{"id":1,`},
		{"empty dataset", http.StatusOK, `[]`},
		{"missing date", http.StatusOK, `[{"id":1,"title":"x","category":"y"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := datasetServer(t, tt.status, tt.body)
			store := existing()
			before := count(t, store)

			_, err := NewSeeder(NewHTTPSource(srv.URL, time.Second), store, nil).Run(context.Background())

			require.ErrorIs(t, err, ErrFetch)
			assert.Equal(t, before, count(t, store))
		})
	}
}

func TestRunKeepsCollectionWhenUnreachable(t *testing.T) {
	srv := datasetServer(t, http.StatusOK, dataset)
	url := srv.URL
	srv.Close()
	store := existing()

	_, err := NewSeeder(NewHTTPSource(url, time.Second), store, nil).Run(context.Background())

	require.ErrorIs(t, err, ErrFetch)
	assert.Equal(t, int64(2), count(t, store))
}

type replaceFailingStore struct {
	*db.MemoryStore
}

func (s replaceFailingStore) ReplaceAll(context.Context, []domain.Transaction) error {
	return errors.New("disk full")
}

func TestRunReportsWriteFailure(t *testing.T) {
	srv := datasetServer(t, http.StatusOK, dataset)

	_, err := NewSeeder(NewHTTPSource(srv.URL, time.Second), replaceFailingStore{existing()}, nil).Run(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFetch)
	assert.Contains(t, err.Error(), "disk full")
}

type blockingSource struct {
	started chan struct{}
	release chan struct{}
}

func (s *blockingSource) Fetch(ctx context.Context) ([]domain.Transaction, error) {
	close(s.started)
	<-s.release
	return []domain.Transaction{{ID: 1, Title: "t", Category: "c", DateOfSale: time.Now()}}, nil
}

func TestRunRejectsConcurrentSeed(t *testing.T) {
	source := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	seeder := NewSeeder(source, db.NewMemoryStore(), &LocalLocker{})

	done := make(chan error, 1)
	go func() {
		_, err := seeder.Run(context.Background())
		done <- err
	}()
	<-source.started

	_, err := seeder.Run(context.Background())
	assert.ErrorIs(t, err, ErrSeedInProgress)

	close(source.release)
	require.NoError(t, <-done)

	// The lock is free again once the first run finished
	source2 := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	close(source2.release)
	_, err = NewSeeder(source2, db.NewMemoryStore(), seeder.locker).Run(context.Background())
	assert.NoError(t, err)
}

// hangupSource cancels the caller's context as soon as the dataset is fetched
type hangupSource struct {
	cancel context.CancelFunc
}

func (s hangupSource) Fetch(context.Context) ([]domain.Transaction, error) {
	s.cancel()
	return []domain.Transaction{{ID: 1, Title: "t", Category: "c", DateOfSale: time.Now()}}, nil
}

// ctxRecordingStore keeps the context error observed by ReplaceAll
type ctxRecordingStore struct {
	*db.MemoryStore
	replaceErr error
}

func (s *ctxRecordingStore) ReplaceAll(ctx context.Context, txs []domain.Transaction) error {
	s.replaceErr = ctx.Err()
	if s.replaceErr != nil {
		return s.replaceErr
	}
	return s.MemoryStore.ReplaceAll(ctx, txs)
}

func TestRunFinishesReplaceAfterCallerCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := &ctxRecordingStore{MemoryStore: existing()}

	n, err := NewSeeder(hangupSource{cancel: cancel}, store, nil).Run(ctx)

	require.NoError(t, err)
	assert.NoError(t, store.replaceErr)
	assert.Equal(t, 1, n)
	assert.Equal(t, int64(1), count(t, store))
}
