// Package fs implements a filesystem-backed queue vendor on top of afs.
// A delivery's state is its location: waiting files live under queued/,
// claimed files under inflight/ and exhausted or corrupt ones under
// dead/. Acked deliveries are deleted unless an archive location is
// configured. File names start with the zero-padded publish time, so a
// plain listing of queued/ yields oldest-first order and the queue
// survives restarts.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"

	"github.com/viant/funcly/internal/clock"
	"github.com/viant/funcly/internal/idgen"
	"github.com/viant/funcly/service/messaging"
)

var errSettled = errors.New("delivery already settled")

// Config tunes the filesystem queue vendor
type Config struct {
	// BaseURL roots the queue directories; any afs scheme works
	BaseURL string
	// MaxAttempts caps deliveries per message before it is declared dead
	MaxAttempts int
	// ArchiveURL, when set, receives acked deliveries instead of deleting them
	ArchiveURL string
}

// envelope is the persisted form of a queued message
type envelope[T any] struct {
	ID          string    `json:"id"`
	Payload     T         `json:"payload"`
	Attempt     int       `json:"attempt"`
	PublishedAt time.Time `json:"publishedAt"`
	LastError   string    `json:"lastError,omitempty"`
}

// delivery is a claimed message living under inflight/ until settled
type delivery[T any] struct {
	envelope[T]
	name    string
	queue   *Queue[T]
	mu      sync.Mutex
	settled bool
}

// T returns the delivery payload
func (d *delivery[T]) T() *T {
	return &d.Payload
}

// Ack settles the delivery: the inflight file is archived when an
// archive location is configured, deleted otherwise
func (d *delivery[T]) Ack() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.settled {
		return errSettled
	}
	d.settled = true
	return d.queue.complete(context.Background(), d)
}

// Nack settles the delivery as failed: under the attempt budget the file
// returns to queued/ keeping its original position, otherwise it moves
// to dead/
func (d *delivery[T]) Nack(cause error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.settled {
		return errSettled
	}
	d.settled = true
	if cause != nil {
		d.LastError = cause.Error()
	}
	return d.queue.retry(context.Background(), d)
}

// Queue is the filesystem messaging.Queue
type Queue[T any] struct {
	fs          afs.Service
	config      Config
	queuedURL   string
	inflightURL string
	deadURL     string
	mu          sync.Mutex
}

// NewQueue creates a filesystem queue rooted at config.BaseURL
func NewQueue[T any](fileService afs.Service, config Config) (*Queue[T], error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("queue base URL is required")
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	q := &Queue[T]{
		fs:          fileService,
		config:      config,
		queuedURL:   url.Join(config.BaseURL, "queued"),
		inflightURL: url.Join(config.BaseURL, "inflight"),
		deadURL:     url.Join(config.BaseURL, "dead"),
	}
	ctx := context.Background()
	locations := []string{q.queuedURL, q.inflightURL, q.deadURL}
	if config.ArchiveURL != "" {
		locations = append(locations, config.ArchiveURL)
	}
	for _, location := range locations {
		if exists, _ := fileService.Exists(ctx, location); exists {
			continue
		}
		if err := fileService.Create(ctx, location, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create queue location %s: %w", location, err)
		}
	}
	return q, nil
}

// Publish persists the payload under queued/
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	env := envelope[T]{
		ID:          idgen.New(),
		Payload:     *t,
		Attempt:     1,
		PublishedAt: clock.Now(),
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery %s: %w", env.ID, err)
	}
	return q.upload(ctx, url.Join(q.queuedURL, deliveryName(env.PublishedAt, env.ID)), data)
}

// Consume claims the oldest queued delivery. A nil message with a nil
// error means the queue is currently empty.
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	oldest, err := q.oldest(ctx)
	if err != nil || oldest == nil {
		return nil, err
	}
	data, err := q.fs.DownloadWithURL(ctx, oldest.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to read delivery %s: %w", oldest.URL(), err)
	}
	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		// quarantine corrupt payloads so they stop blocking the queue
		_ = q.fs.Move(ctx, oldest.URL(), url.Join(q.deadURL, "corrupt-"+oldest.Name()))
		return nil, fmt.Errorf("failed to decode delivery %s: %w", oldest.URL(), err)
	}

	// claim by copying into inflight/ before removing the source, so a
	// crash in between duplicates rather than loses the delivery
	if err := q.upload(ctx, url.Join(q.inflightURL, oldest.Name()), data); err != nil {
		return nil, fmt.Errorf("failed to claim delivery %s: %w", oldest.Name(), err)
	}
	if err := q.fs.Delete(ctx, oldest.URL()); err != nil {
		return nil, fmt.Errorf("failed to remove claimed delivery %s: %w", oldest.URL(), err)
	}
	return &delivery[T]{envelope: env, name: oldest.Name(), queue: q}, nil
}

// oldest returns the lexicographically smallest delivery file under
// queued/; names embed the publish time, so smallest means oldest
func (q *Queue[T]) oldest(ctx context.Context) (storage.Object, error) {
	objects, err := q.fs.List(ctx, q.queuedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list queued deliveries: %w", err)
	}
	var oldest storage.Object
	for _, candidate := range objects {
		if candidate.IsDir() || !strings.HasSuffix(candidate.Name(), ".json") {
			continue
		}
		if oldest == nil || candidate.Name() < oldest.Name() {
			oldest = candidate
		}
	}
	return oldest, nil
}

func (q *Queue[T]) complete(ctx context.Context, d *delivery[T]) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	inflight := url.Join(q.inflightURL, d.name)
	if q.config.ArchiveURL != "" {
		if err := q.fs.Move(ctx, inflight, url.Join(q.config.ArchiveURL, d.name)); err != nil {
			return fmt.Errorf("failed to archive delivery %s: %w", d.name, err)
		}
		return nil
	}
	if err := q.fs.Delete(ctx, inflight); err != nil {
		return fmt.Errorf("failed to remove delivery %s: %w", d.name, err)
	}
	return nil
}

func (q *Queue[T]) retry(ctx context.Context, d *delivery[T]) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	target := url.Join(q.deadURL, d.name)
	if d.Attempt < q.config.MaxAttempts {
		d.Attempt++
		// the original name keeps the retried delivery at the queue head
		target = url.Join(q.queuedURL, d.name)
	}
	data, err := json.Marshal(d.envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery %s: %w", d.ID, err)
	}
	if err := q.upload(ctx, target, data); err != nil {
		return fmt.Errorf("failed to requeue delivery %s: %w", d.name, err)
	}
	if err := q.fs.Delete(ctx, url.Join(q.inflightURL, d.name)); err != nil {
		return fmt.Errorf("failed to remove delivery %s from inflight: %w", d.name, err)
	}
	return nil
}

func (q *Queue[T]) upload(ctx context.Context, location string, data []byte) error {
	return q.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data))
}

// deliveryName builds a file name that sorts by publish time
func deliveryName(publishedAt time.Time, id string) string {
	return fmt.Sprintf("%020d-%s.json", publishedAt.UnixNano(), id)
}

var _ messaging.Queue[any] = (*Queue[any])(nil)
