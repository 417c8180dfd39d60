package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/model"
)

func TestAddPrependsMostRecentFirst(t *testing.T) {
	bus := NewBus(nil, nil)

	e1 := bus.Add(model.NotificationInfo, "first", "message one")
	e2 := bus.Add(model.NotificationWarning, "second", "message two")

	entries := bus.Notifications()
	require.Len(t, entries, 2)
	assert.Equal(t, e2.ID, entries[0].ID)
	assert.Equal(t, e1.ID, entries[1].ID)
	assert.Equal(t, "first", entries[1].Title)
	assert.Equal(t, "message one", entries[1].Message)
	assert.Equal(t, model.NotificationInfo, entries[1].Type)
	assert.False(t, entries[0].Read)
	assert.False(t, entries[1].Read)
	assert.Greater(t, e2.ID, e1.ID, "IDs must be monotonically increasing")
}

func TestUnreadCountIsAlwaysDerived(t *testing.T) {
	bus := NewBus(nil, nil)

	ids := make([]int64, 0, 5)
	for i := 0; i < 5; i++ {
		ids = append(ids, bus.Add(model.NotificationInfo, "t", "m").ID)
	}
	assert.Equal(t, 5, bus.UnreadCount())

	bus.MarkAsRead(ids[2])
	assert.Equal(t, 4, bus.UnreadCount())

	// Idempotent, and unknown IDs are a no-op.
	bus.MarkAsRead(ids[2])
	bus.MarkAsRead(99999)
	assert.Equal(t, 4, bus.UnreadCount())

	bus.MarkAllAsRead()
	assert.Equal(t, 0, bus.UnreadCount())
	for _, n := range bus.Notifications() {
		assert.True(t, n.Read)
	}
}

func TestClearAllEmptiesTheLog(t *testing.T) {
	bus := NewBus(nil, nil)
	bus.Add(model.NotificationDanger, "t", "m")
	bus.Add(model.NotificationSuccess, "t", "m")

	bus.ClearAll()
	assert.Empty(t, bus.Notifications())
	assert.Equal(t, 0, bus.UnreadCount())

	// The bus keeps working after a clear, with IDs still unique.
	n := bus.Add(model.NotificationInfo, "t", "m")
	assert.Greater(t, n.ID, int64(2))
}

func TestSeedInstallsStartupEntries(t *testing.T) {
	bus := NewBus(nil, nil)
	bus.Seed([]model.Notification{
		{Type: model.NotificationInfo, Title: "seeded", Message: "hello"},
		{Type: model.NotificationDanger, Title: "older", Message: "alert", Read: true},
	})

	entries := bus.Notifications()
	require.Len(t, entries, 2)
	assert.Equal(t, "seeded", entries[0].Title)
	assert.False(t, entries[0].CreatedAt.IsZero())
	assert.Equal(t, 1, bus.UnreadCount())

	added := bus.Add(model.NotificationSuccess, "new", "entry")
	assert.Greater(t, added.ID, entries[0].ID)
	assert.Greater(t, added.ID, entries[1].ID)
}

func TestSeedCopiesCallerSlice(t *testing.T) {
	bus := NewBus(nil, nil)
	seed := []model.Notification{
		{Type: model.NotificationInfo, Title: "seeded", Message: "hello"},
	}
	bus.Seed(seed)

	// The caller's slice must neither observe the bus's ID assignment nor
	// reach the bus's entries through later mutation.
	assert.Equal(t, int64(0), seed[0].ID)
	seed[0].Title = "mutated"
	seed[0].Read = true

	entries := bus.Notifications()
	require.Len(t, entries, 1)
	assert.Equal(t, "seeded", entries[0].Title)
	assert.Equal(t, 1, bus.UnreadCount())
}

type captureSink struct {
	ch chan model.Notification
}

func (s *captureSink) Publish(ctx context.Context, n model.Notification) error {
	s.ch <- n
	return nil
}

func TestAddForwardsToSink(t *testing.T) {
	sink := &captureSink{ch: make(chan model.Notification, 1)}
	bus := NewBus(sink, nil)

	added := bus.Add(model.NotificationWarning, "Maintenance", "Kia K5 sent for maintenance")

	select {
	case got := <-sink.ch:
		assert.Equal(t, added.ID, got.ID)
		assert.Equal(t, model.NotificationWarning, got.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not forwarded to the sink")
	}
}
