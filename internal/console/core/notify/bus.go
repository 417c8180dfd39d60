package notify

import (
	"context"
	"sync"
	"time"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/model"
	"github.com/AktanAlmazovich/Fleet-manager/internal/pkg/metrics"
	"github.com/AktanAlmazovich/Fleet-manager/pkg/log"
)

// sinkTimeout bounds the fan-out of a single notification to the sink.
const sinkTimeout = 5 * time.Second

// Bus is the in-memory, ordered, append-only log of domain-event
// notifications. It exclusively owns the entries: no other component mutates
// them directly. Entries are held most recent first; the unread count is
// always derived from the entries, never stored.
type Bus struct {
	mu      sync.RWMutex
	entries []model.Notification
	nextID  int64

	sink   core.EventSink
	logger log.Logger
}

// NewBus creates an empty bus. sink may be nil.
func NewBus(sink core.EventSink, logger log.Logger) *Bus {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Bus{
		nextID: 1,
		sink:   sink,
		logger: logger.WithName("notify"),
	}
}

// Add records a new unread notification and prepends it to the log,
// preserving the relative order of all existing entries. The recorded entry
// is returned. A copy is forwarded to the sink, best effort.
func (b *Bus) Add(typ model.NotificationType, title, message string) model.Notification {
	b.mu.Lock()
	n := model.Notification{
		ID:        b.nextID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	b.nextID++
	b.entries = append([]model.Notification{n}, b.entries...)
	b.mu.Unlock()

	metrics.NotificationsTotal.WithLabelValues(string(typ)).Inc()
	b.forward(n)
	return n
}

// Seed installs startup entries, most recent first, without touching the
// sink. The entries are copied, so the caller's slice never aliases the log.
// IDs are reassigned to keep them unique and monotonic.
func (b *Bus) Seed(entries []model.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	seeded := make([]model.Notification, len(entries))
	copy(seeded, entries)
	for i := range seeded {
		seeded[i].ID = b.nextID
		b.nextID++
		if seeded[i].CreatedAt.IsZero() {
			seeded[i].CreatedAt = time.Now()
		}
	}
	b.entries = append(seeded, b.entries...)
}

// MarkAsRead marks one entry read. Idempotent; unknown IDs are a no-op.
func (b *Bus) MarkAsRead(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.entries {
		if b.entries[i].ID == id {
			b.entries[i].Read = true
			return
		}
	}
}

// MarkAllAsRead marks every entry read.
func (b *Bus) MarkAllAsRead() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.entries {
		b.entries[i].Read = true
	}
}

// ClearAll empties the log. It does not affect any other component.
func (b *Bus) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
}

// Notifications returns a copy of the log, most recent first.
func (b *Bus) Notifications() []model.Notification {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]model.Notification, len(b.entries))
	copy(out, b.entries)
	return out
}

// UnreadCount counts the entries with the read flag unset.
func (b *Bus) UnreadCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for i := range b.entries {
		if !b.entries[i].Read {
			count++
		}
	}
	return count
}

func (b *Bus) forward(n model.Notification) {
	if b.sink == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		defer cancel()
		if err := b.sink.Publish(ctx, n); err != nil {
			b.logger.Warn("failed to publish notification to sink", "id", n.ID, "error", err)
		}
	}()
}
