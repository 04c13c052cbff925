package metrics

import (
	"context"
	"time"
)

// AccessMetric is one recorded access of a short URL. Metrics reference
// records by short ID value only; they may outlive the record they point at.
type AccessMetric struct {
	ShortID    string
	AccessedAt time.Time
	UserAgent  string
	IPAddress  string
	Referer    string
}

// Store persists access metrics and answers windowed counts. Metrics are
// insert-only; retention is out of scope.
type Store interface {
	Insert(ctx context.Context, metric *AccessMetric) error

	// CountSince counts metrics for shortID with AccessedAt >= since.
	CountSince(ctx context.Context, shortID string, since time.Time) (int64, error)
}
