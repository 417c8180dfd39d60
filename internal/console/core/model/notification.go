package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// NotificationType classifies a notification for operator display.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationDanger  NotificationType = "danger"
)

// ParseNotificationType validates a raw notification type string.
func ParseNotificationType(s string) (NotificationType, error) {
	switch NotificationType(s) {
	case NotificationInfo, NotificationSuccess, NotificationWarning, NotificationDanger:
		return NotificationType(s), nil
	}
	return "", fmt.Errorf("unknown notification type %q", s)
}

// Notification is one entry in the append-only domain-event log. Entries are
// created by the notification bus, mutated only by marking read, and removed
// only by a bulk clear.
type Notification struct {
	// ID is unique and monotonically increasing within a bus.
	ID int64 `json:"id"`

	Type    NotificationType `json:"type"`
	Title   string           `json:"title"`
	Message string           `json:"message"`

	// CreatedAt is when the entry was recorded. The human-readable relative
	// label is derived from it at serialization time, never stored.
	CreatedAt time.Time `json:"-"`

	Read bool `json:"read"`
}

// MarshalJSON adds the derived relative-time label under "time".
func (n Notification) MarshalJSON() ([]byte, error) {
	type alias Notification
	return json.Marshal(struct {
		alias
		Time string `json:"time"`
	}{
		alias: alias(n),
		Time:  humanize.Time(n.CreatedAt),
	})
}
