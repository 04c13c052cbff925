package metrics

import (
	"context"
	"fmt"
	"time"
)

// TopicURLAccessed is the stream successful redirects publish to.
const TopicURLAccessed = "url.accessed"

// AccessEvent is emitted for every successful redirect. The publish is
// best-effort: a failed publish is logged by the caller and never blocks or
// fails the redirect itself.
type AccessEvent struct {
	ShortID    string    `json:"shortId"`
	AccessedAt time.Time `json:"accessedAt"`
	UserAgent  string    `json:"userAgent,omitempty"`
	IPAddress  string    `json:"ipAddress,omitempty"`
	Referer    string    `json:"referer,omitempty"`
}

// Metric converts the event to its stored form.
func (e AccessEvent) Metric() *AccessMetric {
	return &AccessMetric{
		ShortID:    e.ShortID,
		AccessedAt: e.AccessedAt,
		UserAgent:  e.UserAgent,
		IPAddress:  e.IPAddress,
		Referer:    e.Referer,
	}
}

// SaveAccessEvent returns a consumer handler that persists access events.
func SaveAccessEvent(store Store) func(ctx context.Context, event AccessEvent) error {
	return func(ctx context.Context, event AccessEvent) error {
		if err := store.Insert(ctx, event.Metric()); err != nil {
			return fmt.Errorf("save access metric: %w", err)
		}

		return nil
	}
}
