package fs

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

type notification struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func TestQueue_ordering(t *testing.T) {
	fileService := afs.New()
	ctx := context.Background()
	queue, err := NewQueue[notification](fileService, Config{BaseURL: t.TempDir()})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		payload := notification{ID: fmt.Sprintf("%d", i), Message: fmt.Sprintf("message %d", i)}
		require.NoError(t, queue.Publish(ctx, &payload))
	}

	// deliveries come back oldest first and acking removes them
	for i := 1; i <= 3; i++ {
		message, err := queue.Consume(ctx)
		require.NoError(t, err)
		require.NotNil(t, message)
		assert.EqualValues(t, fmt.Sprintf("%d", i), message.T().ID)
		require.NoError(t, message.Ack())
	}

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Nil(t, message, "queue should be drained")
}

func TestQueue_retriesExhaustedMoveToDead(t *testing.T) {
	fileService := afs.New()
	ctx := context.Background()
	config := Config{BaseURL: t.TempDir(), MaxAttempts: 3}
	queue, err := NewQueue[notification](fileService, config)
	require.NoError(t, err)

	payload := notification{ID: "doomed"}
	require.NoError(t, queue.Publish(ctx, &payload))

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		message, err := queue.Consume(ctx)
		require.NoError(t, err)
		require.NotNil(t, message)
		require.NoError(t, message.Nack(fmt.Errorf("attempt %d", attempt)))
	}

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Nil(t, message, "dead deliveries must not be served")

	dead, err := fileService.List(ctx, queue.deadURL)
	require.NoError(t, err)
	var files int
	for _, object := range dead {
		if !object.IsDir() {
			files++
		}
	}
	assert.EqualValues(t, 1, files)
}

func TestQueue_doubleSettleFails(t *testing.T) {
	fileService := afs.New()
	ctx := context.Background()
	queue, err := NewQueue[notification](fileService, Config{BaseURL: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, queue.Publish(ctx, &notification{ID: "once"}))
	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	require.NoError(t, message.Ack())
	assert.Error(t, message.Ack())
	assert.Error(t, message.Nack(fmt.Errorf("late")))
}

func TestQueue_archive(t *testing.T) {
	fileService := afs.New()
	ctx := context.Background()
	archiveURL := t.TempDir()
	queue, err := NewQueue[notification](fileService, Config{BaseURL: t.TempDir(), ArchiveURL: archiveURL})
	require.NoError(t, err)

	require.NoError(t, queue.Publish(ctx, &notification{ID: "kept"}))
	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	require.NoError(t, message.Ack())

	archived, err := fileService.List(ctx, archiveURL)
	require.NoError(t, err)
	var files int
	for _, object := range archived {
		if !object.IsDir() {
			files++
		}
	}
	assert.EqualValues(t, 1, files)
}

func TestQueue_requiresBaseURL(t *testing.T) {
	_, err := NewQueue[notification](afs.New(), Config{})
	assert.Error(t, err)
}
