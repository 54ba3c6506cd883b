package event

import (
	"context"
	"errors"
	"log"
	"time"
)

// Listener pumps events from a publisher into a handler on a background
// goroutine until stopped.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewListener creates a listener delivering events to handler
func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Stop terminates the delivery goroutine
func (l *Listener[T]) Stop() {
	l.cancel()
}

// Start begins delivering events in the background
func (l *Listener[T]) Start() {
	go func() {
		for {
			event, err := l.publisher.Consume(l.ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				log.Printf("failed to consume event: %v", err)
				continue
			}
			if event == nil {
				// fs-backed queues report empty polls rather than blocking
				select {
				case <-l.ctx.Done():
					return
				case <-time.After(20 * time.Millisecond):
				}
				continue
			}
			l.handler(event)
		}
	}()
}
