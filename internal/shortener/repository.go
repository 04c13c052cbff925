package shortener

import "context"

// ListParams controls pagination and filtering of record listings.
type ListParams struct {
	Skip       int
	Limit      int // <= 0 means no limit
	ActiveOnly bool
}

// Repository is the persistence surface for short URL records.
type Repository interface {
	// Insert persists a new record. It returns ErrDuplicateShortID when the
	// short ID is already taken, relying on the store's uniqueness constraint
	// as the backstop for concurrent creations.
	Insert(ctx context.Context, record *ShortURLRecord) error

	// FindByShortID returns ErrNotFound when no record matches.
	FindByShortID(ctx context.Context, shortID string) (*ShortURLRecord, error)

	// List returns records ordered by creation time, most recent first.
	List(ctx context.Context, params ListParams) ([]*ShortURLRecord, error)
}
