package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// Dependency is a named backend whose reachability the endpoint reports.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

// Postgres builds a dependency check over the connection pool.
func Postgres(pool *pgxpool.Pool) Dependency {
	return Dependency{Name: "postgres", Ping: pool.Ping}
}

// Redis builds a dependency check over the stream client.
func Redis(client *redis.Client) Dependency {
	return Dependency{
		Name: "redis",
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}

// Handler reports overall service health from its dependency checks.
type Handler struct {
	deps []Dependency
}

// NewHandler creates a handler over the given dependencies.
func NewHandler(deps ...Dependency) *Handler {
	return &Handler{deps: deps}
}

// Response is the health endpoint body. Status is "ok" only when every
// dependency answered its ping.
type Response struct {
	Body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
}

// Check pings all dependencies concurrently. An unreachable dependency
// degrades the status but never errors the endpoint itself.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	results := make([]string, len(h.deps))

	var g errgroup.Group

	for i, dep := range h.deps {
		g.Go(func() error {
			if err := dep.Ping(ctx); err != nil {
				results[i] = "unhealthy"
			} else {
				results[i] = "healthy"
			}

			return nil
		})
	}

	_ = g.Wait()

	resp := &Response{}
	resp.Body.Status = "ok"
	resp.Body.Dependencies = make(map[string]string, len(h.deps))

	for i, dep := range h.deps {
		resp.Body.Dependencies[dep.Name] = results[i]

		if results[i] != "healthy" {
			resp.Body.Status = "degraded"
		}
	}

	return resp, nil
}

// RegisterRoutes registers the health endpoint.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
