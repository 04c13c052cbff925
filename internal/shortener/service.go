package shortener

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// GenerateFunc produces a random short ID of the requested length.
type GenerateFunc func(length int) (string, error)

// Service implements the URL record operations: creation with unique short ID
// resolution, lookups and listings.
type Service struct {
	repo        Repository
	generate    GenerateFunc
	baseURL     string
	idLength    int
	maxAttempts int
}

// NewService creates a new record service. baseURL is used once per record to
// derive its short URL; it is never re-applied to existing records.
func NewService(repo Repository, generate GenerateFunc, baseURL string, idLength, maxAttempts int) *Service {
	if idLength <= 0 {
		idLength = DefaultIDLength
	}

	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Service{
		repo:        repo,
		generate:    generate,
		baseURL:     strings.TrimRight(baseURL, "/"),
		idLength:    idLength,
		maxAttempts: maxAttempts,
	}
}

// ValidateURL reports whether rawURL is an absolute http or https URL with a
// non-empty host. Surrounding whitespace is ignored.
func ValidateURL(rawURL string) bool {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return false
	}

	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return false
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Host != ""
}

// NormalizeURL trims surrounding whitespace. Nothing else: no case folding,
// no trailing-slash removal, no query canonicalization.
func NormalizeURL(rawURL string) string {
	return strings.TrimSpace(rawURL)
}

// GenerateUniqueShortID searches for a short ID with no existing record,
// trying at most maxAttempts candidates. The first free candidate wins.
func (s *Service) GenerateUniqueShortID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		candidate, err := s.generate(s.idLength)
		if err != nil {
			return "", err
		}

		_, err = s.repo.FindByShortID(ctx, candidate)
		if errors.Is(err, ErrNotFound) {
			return candidate, nil
		}

		if err != nil {
			return "", fmt.Errorf("check short id availability: %w", err)
		}
	}

	return "", ErrExhaustedRetries
}

// Create normalizes and validates originalURL, resolves a unique short ID and
// persists the new record. A duplicate-key failure on insert means a
// concurrent creation won the same candidate; it consumes an attempt and the
// ID is regenerated rather than surfacing the conflict.
func (s *Service) Create(ctx context.Context, originalURL string) (*ShortURLRecord, error) {
	normalized := NormalizeURL(originalURL)
	if !ValidateURL(normalized) {
		return nil, ErrInvalidURL
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		shortID, err := s.GenerateUniqueShortID(ctx)
		if err != nil {
			return nil, err
		}

		record := &ShortURLRecord{
			ShortID:     shortID,
			OriginalURL: normalized,
			ShortURL:    s.baseURL + "/" + shortID,
			CreatedAt:   time.Now().UTC(),
			IsActive:    true,
		}

		err = s.repo.Insert(ctx, record)
		if errors.Is(err, ErrDuplicateShortID) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("insert record: %w", err)
		}

		return record, nil
	}

	return nil, ErrExhaustedRetries
}

// FindByShortID looks up a record by exact short ID match.
func (s *Service) FindByShortID(ctx context.Context, shortID string) (*ShortURLRecord, error) {
	return s.repo.FindByShortID(ctx, shortID)
}

// ResolveActive looks up a record and additionally requires it to be active.
// Returns ErrNotFound for unknown IDs and ErrInactive for deactivated ones.
func (s *Service) ResolveActive(ctx context.Context, shortID string) (*ShortURLRecord, error) {
	record, err := s.repo.FindByShortID(ctx, shortID)
	if err != nil {
		return nil, err
	}

	if !record.IsActive {
		return nil, ErrInactive
	}

	return record, nil
}

// List returns records sorted by creation time descending.
func (s *Service) List(ctx context.Context, params ListParams) ([]*ShortURLRecord, error) {
	if params.Skip < 0 {
		params.Skip = 0
	}

	return s.repo.List(ctx, params)
}
