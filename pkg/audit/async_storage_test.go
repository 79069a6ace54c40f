package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/audit"
)

func event(id string) audit.Event {
	return audit.Event{ID: id, Action: "a", Result: audit.ResultSuccess}
}

func TestAsyncStorageFlushesOnClose(t *testing.T) {
	t.Parallel()

	next := &memoryStorage{}
	storage := audit.NewAsyncStorage(next, audit.AsyncOptions{BatchSize: 100, BatchTimeout: time.Hour})

	for i := range 10 {
		require.NoError(t, storage.Store(context.Background(), event(string(rune('a'+i)))))
	}
	require.NoError(t, storage.Close(context.Background()))

	events, calls := next.snapshot()
	assert.Len(t, events, 10)
	assert.Equal(t, 1, calls)

	assert.ErrorIs(t, storage.Store(context.Background(), event("late")), audit.ErrStorageNotAvailable)
	assert.NoError(t, storage.Close(context.Background()))
}

func TestAsyncStorageBatchSize(t *testing.T) {
	t.Parallel()

	next := &memoryStorage{}
	storage := audit.NewAsyncStorage(next, audit.AsyncOptions{BatchSize: 2, BatchTimeout: time.Hour})

	require.NoError(t, storage.Store(context.Background(), event("1"), event("2")))
	assert.Eventually(t, func() bool {
		events, _ := next.snapshot()
		return len(events) == 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, storage.Close(context.Background()))
}

func TestAsyncStorageTimerFlush(t *testing.T) {
	t.Parallel()

	next := &memoryStorage{}
	storage := audit.NewAsyncStorage(next, audit.AsyncOptions{BatchSize: 100, BatchTimeout: 10 * time.Millisecond})
	defer storage.Close(context.Background())

	require.NoError(t, storage.Store(context.Background(), event("1")))
	assert.Eventually(t, func() bool {
		events, _ := next.snapshot()
		return len(events) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestAsyncStorageWait(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	storage := audit.NewAsyncStorage(&memoryStorage{err: boom}, audit.AsyncOptions{
		BatchTimeout: 5 * time.Millisecond,
		Wait:         true,
	})
	defer storage.Close(context.Background())

	assert.ErrorIs(t, storage.Store(context.Background(), event("1")), boom)
}

func TestAsyncStorageOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var mu sync.Mutex
	var failed []audit.Event

	storage := audit.NewAsyncStorage(&memoryStorage{err: boom}, audit.AsyncOptions{
		BatchTimeout: 5 * time.Millisecond,
		OnError: func(err error, events []audit.Event) {
			mu.Lock()
			defer mu.Unlock()
			assert.ErrorIs(t, err, boom)
			failed = append(failed, events...)
		},
	})

	require.NoError(t, storage.Store(context.Background(), event("1")))
	require.NoError(t, storage.Close(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, failed, 1)
	assert.Equal(t, "1", failed[0].ID)
}

func TestAsyncStorageConcurrent(t *testing.T) {
	t.Parallel()

	next := &memoryStorage{}
	storage := audit.NewAsyncStorage(next, audit.AsyncOptions{BufferSize: 4, BatchSize: 8})

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, storage.Store(context.Background(), event(string(rune('A'+i)))))
		}(i)
	}
	wg.Wait()
	require.NoError(t, storage.Close(context.Background()))

	events, _ := next.snapshot()
	assert.Len(t, events, 50)
}

func TestAsyncStorageNil(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, audit.ErrNilStorage, func() { audit.NewAsyncStorage(nil, audit.AsyncOptions{}) })
}
