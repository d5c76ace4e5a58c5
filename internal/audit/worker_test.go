package audit

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct{ calls int }

func (f *failingSink) Append(context.Context, Event) error {
	f.calls++
	return errors.New("sink unavailable")
}

func TestWorkerFanOut(t *testing.T) {
	inbox := make(chan Event, 8)
	store := NewInMemoryStore()
	failing := &failingSink{}
	worker := NewWorker(inbox, slog.New(slog.DiscardHandler), failing, store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- Event{Action: ActionCertificationIssued, CertificationID: "abc"}
	inbox <- Event{Action: ActionCertificationRevoked, CertificationID: "abc", Reason: "fraud"}

	require.Eventually(t, func() bool {
		events, err := store.ListByCertification(context.Background(), "abc")
		return err == nil && len(events) == 2
	}, time.Second, 5*time.Millisecond)

	// The failing sink did not stop delivery to the store.
	assert.Equal(t, 2, failing.calls)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestPublisherDropsWhenFull(t *testing.T) {
	inbox := make(chan Event, 1)
	pub := NewPublisher(inbox, slog.New(slog.DiscardHandler))

	ctx := context.Background()
	pub.Emit(ctx, Event{Action: ActionPaused})
	pub.Emit(ctx, Event{Action: ActionUnpaused}) // buffer full, dropped

	assert.Len(t, inbox, 1)
	got := <-inbox
	assert.Equal(t, ActionPaused, got.Action)
	assert.False(t, got.Timestamp.IsZero(), "publisher stamps missing timestamps")
}
