package metrics

import (
	"context"
	"time"

	"github.com/lfsantos/shortener/internal/shortener"
	"golang.org/x/sync/errgroup"
)

const (
	windowHour  = time.Hour
	windowDay   = 24 * time.Hour
	windowMonth = 30 * 24 * time.Hour
)

// Summary holds rolling access counts for one short ID. The windows overlap:
// an access in the last hour is counted in all three.
type Summary struct {
	ShortID   string
	LastHour  int64
	LastDay   int64
	LastMonth int64
}

// Aggregator computes rolling count windows from stored metrics.
type Aggregator struct {
	urls    shortener.Repository
	metrics Store
}

// NewAggregator creates a new metrics aggregator.
func NewAggregator(urls shortener.Repository, metrics Store) *Aggregator {
	return &Aggregator{
		urls:    urls,
		metrics: metrics,
	}
}

// Aggregate returns summaries for shortID, or for every known record (most
// recently created first) when shortID is empty. The reference time is
// captured once so all counts in one response are consistent with each other.
func (a *Aggregator) Aggregate(ctx context.Context, shortID string) ([]Summary, error) {
	now := time.Now().UTC()

	var ids []string

	if shortID != "" {
		ids = []string{shortID}
	} else {
		records, err := a.urls.List(ctx, shortener.ListParams{})
		if err != nil {
			return nil, err
		}

		ids = make([]string, len(records))
		for i, record := range records {
			ids[i] = record.ShortID
		}
	}

	summaries := make([]Summary, len(ids))

	for i, id := range ids {
		summary, err := a.summarize(ctx, id, now)
		if err != nil {
			return nil, err
		}

		summaries[i] = summary
	}

	return summaries, nil
}

// summarize counts the three windows for one ID concurrently. Each goroutine
// writes a distinct field, so no locking is needed.
func (a *Aggregator) summarize(ctx context.Context, shortID string, now time.Time) (Summary, error) {
	summary := Summary{ShortID: shortID}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := a.metrics.CountSince(ctx, shortID, now.Add(-windowHour))
		summary.LastHour = n

		return err
	})

	g.Go(func() error {
		n, err := a.metrics.CountSince(ctx, shortID, now.Add(-windowDay))
		summary.LastDay = n

		return err
	})

	g.Go(func() error {
		n, err := a.metrics.CountSince(ctx, shortID, now.Add(-windowMonth))
		summary.LastMonth = n

		return err
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	return summary, nil
}
