// Package memory implements the in-memory queue vendor. Deliveries ride
// a buffered channel; a nacked delivery is redelivered after a backoff
// until its retry budget runs out, after which it is parked for
// inspection.
package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/funcly/internal/idgen"
	"github.com/viant/funcly/service/messaging"
)

var errSettled = errors.New("delivery already settled")

// Config tunes the in-memory queue vendor
type Config struct {
	// MaxRetries caps redeliveries before a delivery is parked
	MaxRetries int
	// RetryDelay is the backoff before a nacked delivery returns
	RetryDelay time.Duration
	// Capacity sizes the delivery channel
	Capacity int
	// DropFailed discards exhausted deliveries instead of parking them
	DropFailed bool
}

// DefaultConfig returns the standard in-memory queue tuning
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		RetryDelay: 100 * time.Millisecond,
		Capacity:   128,
	}
}

// delivery is a single in-flight message; each redelivery is a fresh
// delivery carrying the same id and payload with a bumped attempt count
type delivery[T any] struct {
	id      string
	payload T
	attempt int
	lastErr error
	queue   *Queue[T]
	settled atomic.Bool
}

// T returns the delivery payload
func (d *delivery[T]) T() *T {
	return &d.payload
}

// Ack settles the delivery as processed
func (d *delivery[T]) Ack() error {
	if !d.settled.CompareAndSwap(false, true) {
		return errSettled
	}
	return nil
}

// Nack settles the delivery as failed. Under the retry budget the
// payload is redelivered after the configured backoff, otherwise the
// delivery is parked.
func (d *delivery[T]) Nack(cause error) error {
	if !d.settled.CompareAndSwap(false, true) {
		return errSettled
	}
	d.lastErr = cause
	if d.attempt >= d.queue.config.MaxRetries {
		d.queue.park(d)
		return nil
	}
	redelivery := &delivery[T]{
		id:      d.id,
		payload: d.payload,
		attempt: d.attempt + 1,
		queue:   d.queue,
	}
	time.AfterFunc(d.queue.config.RetryDelay, func() {
		d.queue.deliveries <- redelivery
	})
	return nil
}

// Queue is the in-memory messaging.Queue
type Queue[T any] struct {
	deliveries chan *delivery[T]
	config     Config
	mu         sync.Mutex
	parked     []*delivery[T]
}

// NewQueue creates an in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.Capacity <= 0 {
		config.Capacity = DefaultConfig().Capacity
	}
	return &Queue[T]{
		deliveries: make(chan *delivery[T], config.Capacity),
		config:     config,
	}
}

// Publish enqueues the payload
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	item := &delivery[T]{id: idgen.New(), payload: *t, queue: q}
	select {
	case q.deliveries <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume blocks until a delivery is available or the context ends
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case item := <-q.deliveries:
		return item, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Size returns the number of deliveries waiting in the queue
func (q *Queue[T]) Size() int {
	return len(q.deliveries)
}

// Parked returns the number of deliveries that exhausted their retries
func (q *Queue[T]) Parked() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.parked)
}

func (q *Queue[T]) park(d *delivery[T]) {
	if q.config.DropFailed {
		return
	}
	q.mu.Lock()
	q.parked = append(q.parked, d)
	q.mu.Unlock()
}

var _ messaging.Queue[any] = (*Queue[any])(nil)
