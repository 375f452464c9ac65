package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onegreenvn/content-multiplier-backend/internal/database/dbtest"
	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
)

type recordingPublisher struct {
	mu       sync.Mutex
	queues   []string
	messages []interface{}
	err      error
}

func (p *recordingPublisher) PublishMessage(ctx context.Context, queueName string, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queues = append(p.queues, queueName)
	p.messages = append(p.messages, message)
	return p.err
}

func TestGenerationLogServiceRecord(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGenerationLogRepository(dbtest.Open(t))
	hub := NewSSEHub()
	publisher := &recordingPublisher{}
	svc := NewGenerationLogService(repo, hub, publisher)

	stream := hub.RegisterClient("u1")
	other := hub.RegisterClient("u2")
	defer hub.UnregisterClient("u1", stream)
	defer hub.UnregisterClient("u2", other)

	svc.Record(ctx, &models.GenerationLog{
		UserID:     "u1",
		Capability: models.CapabilityIdeas,
		Provider:   "gemini",
		Stage:      models.StageCompleted,
		Status:     models.LogSuccess,
		Message:    "Generated ideas with gemini",
	})

	select {
	case msg := <-stream:
		assert.True(t, strings.HasPrefix(string(msg), "event: log\ndata: "))
		assert.Contains(t, string(msg), `"message":"Generated ideas with gemini"`)
	case <-time.After(time.Second):
		t.Fatal("expected an SSE message")
	}
	assert.Len(t, other, 0)

	assert.Equal(t, []string{GenerationEventsQueue}, publisher.queues)

	logs, page, err := svc.GetLogsByUserID(ctx, "u1", 1, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.NotEmpty(t, logs[0].ID)
	assert.Equal(t, int64(1), page.Total)
}

func TestGenerationLogServicePublisherFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGenerationLogRepository(dbtest.Open(t))
	svc := NewGenerationLogService(repo, nil, &recordingPublisher{err: errors.New("broker down")})

	svc.Record(ctx, &models.GenerationLog{UserID: "u1", Capability: models.CapabilityBrief, Stage: models.StageFailed, Status: models.LogError, Message: "boom"})

	logs, _, err := svc.GetLogsByUserID(ctx, "u1", 1, 10)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestGenerationLogServiceCleanup(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGenerationLogRepository(dbtest.Open(t))
	svc := NewGenerationLogService(repo, nil, nil)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	svc.Record(ctx, &models.GenerationLog{UserID: "u1", Capability: "ideas", Stage: "started", Status: "info", Message: "old", CreatedAt: now.Add(-10 * 24 * time.Hour)})
	svc.Record(ctx, &models.GenerationLog{UserID: "u1", Capability: "ideas", Stage: "started", Status: "info", Message: "fresh"})

	svc.CleanupOldLogs(ctx, 7*24*time.Hour)

	logs, _, err := svc.GetLogsByUserID(ctx, "u1", 1, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "fresh", logs[0].Message)
}

func TestSSEHubUnregister(t *testing.T) {
	hub := NewSSEHub()
	ch := hub.RegisterClient("u1")
	assert.Equal(t, 1, hub.GetClientCount("u1"))

	hub.UnregisterClient("u1", ch)
	assert.Equal(t, 0, hub.GetClientCount("u1"))
	_, open := <-ch
	assert.False(t, open)

	// second unregister is a no-op
	hub.UnregisterClient("u1", ch)
}

func TestSSEHubDropsWhenFull(t *testing.T) {
	hub := NewSSEHub()
	ch := hub.RegisterClient("u1")
	defer hub.UnregisterClient("u1", ch)

	for i := 0; i < cap(ch)+5; i++ {
		hub.BroadcastLog(&models.GenerationLog{UserID: "u1", Message: "x"})
	}
	assert.Len(t, ch, cap(ch))
}
