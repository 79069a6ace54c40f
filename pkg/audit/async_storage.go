package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/inputguard/pkg/logger"
)

// AsyncOptions configures batching in front of a slow storage.
type AsyncOptions struct {
	BufferSize     int           // Max queued writes before Store falls back to a synchronous write
	BatchSize      int           // Events per flush
	BatchTimeout   time.Duration // Max time a partial batch waits
	StorageTimeout time.Duration // Per-flush timeout, independent of request contexts
	// Wait makes Store block until its batch is flushed and return the
	// flush error. Without it Store returns once the events are queued and
	// flush errors go to OnError.
	Wait    bool
	OnError func(err error, events []Event)
}

type queuedEvents struct {
	events []Event
	result chan error
}

// AsyncStorage batches events for another Storage on a background goroutine.
// Close flushes what is queued.
type AsyncStorage struct {
	next    Storage
	queue   chan queuedEvents
	options AsyncOptions

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewAsyncStorage starts the batching worker. It panics with ErrNilStorage
// when next is nil.
func NewAsyncStorage(next Storage, opts AsyncOptions) *AsyncStorage {
	if next == nil {
		panic(ErrNilStorage)
	}

	if opts.BufferSize <= 0 {
		opts.BufferSize = 1000
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	if opts.BatchTimeout <= 0 {
		opts.BatchTimeout = 100 * time.Millisecond
	}
	if opts.StorageTimeout <= 0 {
		opts.StorageTimeout = 5 * time.Second
	}
	if opts.OnError == nil {
		opts.OnError = func(err error, events []Event) {
			slog.Default().Error("audit flush failed",
				logger.Component("audit"),
				logger.Error(err),
				slog.Int("events", len(events)),
			)
		}
	}

	s := &AsyncStorage{
		next:    next,
		queue:   make(chan queuedEvents, opts.BufferSize),
		options: opts,
	}

	s.wg.Add(1)
	go s.worker()

	return s
}

// Store queues events. When the buffer is full it writes synchronously so
// no event is dropped.
func (s *AsyncStorage) Store(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}

	var result chan error
	if s.options.Wait {
		result = make(chan error, 1)
	}

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrStorageNotAvailable
	}
	select {
	case s.queue <- queuedEvents{events: events, result: result}:
		s.mu.RUnlock()
	default:
		s.mu.RUnlock()
		return s.next.Store(ctx, events...)
	}

	if result == nil {
		return nil
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *AsyncStorage) worker() {
	defer s.wg.Done()

	batch := make([]Event, 0, s.options.BatchSize)
	waiters := make([]chan error, 0, s.options.BatchSize)
	ticker := time.NewTicker(s.options.BatchTimeout)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		// Request contexts may already be done; flushes get their own deadline.
		ctx, cancel := context.WithTimeout(context.Background(), s.options.StorageTimeout)
		err := s.next.Store(ctx, batch...)
		cancel()

		if err != nil && !s.options.Wait {
			s.options.OnError(err, append([]Event(nil), batch...))
		}
		for _, w := range waiters {
			if w != nil {
				w <- err
			}
		}

		clear(batch)
		batch = batch[:0]
		waiters = waiters[:0]
	}

	for {
		select {
		case q, ok := <-s.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, q.events...)
			waiters = append(waiters, q.result)
			if len(batch) >= s.options.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// Close stops accepting events and waits for queued ones to be flushed or
// for ctx to end. It is safe to call more than once.
func (s *AsyncStorage) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
