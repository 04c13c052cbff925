package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lfsantos/shortener/internal/metrics"
	"github.com/lfsantos/shortener/internal/shortener"
)

// Postgres error code for unique constraint violations.
const uniqueViolationCode = "23505"

// PostgresURLStore is a PostgreSQL implementation of shortener.Repository.
// The primary key on short_id is the backstop that turns concurrent
// creations of the same candidate into ErrDuplicateShortID.
type PostgresURLStore struct {
	pool *pgxpool.Pool
}

// NewPostgresURLStore creates a new PostgreSQL-backed URL repository.
func NewPostgresURLStore(pool *pgxpool.Pool) *PostgresURLStore {
	return &PostgresURLStore{pool: pool}
}

// EnsureSchema creates the short_urls table and its indexes if missing.
func (p *PostgresURLStore) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS short_urls (
			short_id      TEXT PRIMARY KEY,
			original_url  TEXT        NOT NULL,
			short_url     TEXT        NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL,
			is_active     BOOLEAN     NOT NULL DEFAULT TRUE,
			failed_checks INTEGER     NOT NULL DEFAULT 0,
			last_check    TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS short_urls_created_at_idx ON short_urls (created_at DESC);
	`

	_, err := p.pool.Exec(ctx, schema)

	return err
}

func (p *PostgresURLStore) Insert(ctx context.Context, record *shortener.ShortURLRecord) error {
	query := `
		INSERT INTO short_urls (short_id, original_url, short_url, created_at, is_active, failed_checks, last_check)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := p.pool.Exec(ctx, query,
		record.ShortID,
		record.OriginalURL,
		record.ShortURL,
		record.CreatedAt,
		record.IsActive,
		record.FailedChecks,
		record.LastCheck,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return shortener.ErrDuplicateShortID
		}

		return err
	}

	return nil
}

func (p *PostgresURLStore) FindByShortID(ctx context.Context, shortID string) (*shortener.ShortURLRecord, error) {
	query := `
		SELECT short_id, original_url, short_url, created_at, is_active, failed_checks, last_check
		FROM short_urls
		WHERE short_id = $1
	`

	var record shortener.ShortURLRecord

	err := p.pool.QueryRow(ctx, query, shortID).Scan(
		&record.ShortID,
		&record.OriginalURL,
		&record.ShortURL,
		&record.CreatedAt,
		&record.IsActive,
		&record.FailedChecks,
		&record.LastCheck,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &record, nil
}

func (p *PostgresURLStore) List(ctx context.Context, params shortener.ListParams) ([]*shortener.ShortURLRecord, error) {
	query := `
		SELECT short_id, original_url, short_url, created_at, is_active, failed_checks, last_check
		FROM short_urls
	`

	if params.ActiveOnly {
		query += " WHERE is_active"
	}

	query += " ORDER BY created_at DESC"

	var args []any

	if params.Limit > 0 {
		args = append(args, params.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	if params.Skip > 0 {
		args = append(args, params.Skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*shortener.ShortURLRecord

	for rows.Next() {
		var record shortener.ShortURLRecord

		err = rows.Scan(
			&record.ShortID,
			&record.OriginalURL,
			&record.ShortURL,
			&record.CreatedAt,
			&record.IsActive,
			&record.FailedChecks,
			&record.LastCheck,
		)
		if err != nil {
			return nil, err
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}

// PostgresMetricStore is a PostgreSQL implementation of metrics.Store.
type PostgresMetricStore struct {
	pool *pgxpool.Pool
}

// NewPostgresMetricStore creates a new PostgreSQL-backed metric store.
func NewPostgresMetricStore(pool *pgxpool.Pool) *PostgresMetricStore {
	return &PostgresMetricStore{pool: pool}
}

// EnsureSchema creates the url_metrics table and its indexes if missing.
func (p *PostgresMetricStore) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS url_metrics (
			id          BIGSERIAL PRIMARY KEY,
			short_id    TEXT        NOT NULL,
			accessed_at TIMESTAMPTZ NOT NULL,
			user_agent  TEXT,
			ip_address  TEXT,
			referer     TEXT
		);
		CREATE INDEX IF NOT EXISTS url_metrics_short_id_accessed_at_idx ON url_metrics (short_id, accessed_at DESC);
	`

	_, err := p.pool.Exec(ctx, schema)

	return err
}

func (p *PostgresMetricStore) Insert(ctx context.Context, metric *metrics.AccessMetric) error {
	query := `
		INSERT INTO url_metrics (short_id, accessed_at, user_agent, ip_address, referer)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.pool.Exec(ctx, query,
		metric.ShortID,
		metric.AccessedAt,
		nullableString(metric.UserAgent),
		nullableString(metric.IPAddress),
		nullableString(metric.Referer),
	)

	return err
}

func (p *PostgresMetricStore) CountSince(ctx context.Context, shortID string, since time.Time) (int64, error) {
	query := `
		SELECT count(*)
		FROM url_metrics
		WHERE short_id = $1 AND accessed_at >= $2
	`

	var count int64

	if err := p.pool.QueryRow(ctx, query, shortID, since).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// Compile-time checks.
var (
	_ shortener.Repository = (*PostgresURLStore)(nil)
	_ metrics.Store        = (*PostgresMetricStore)(nil)
)
