package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lfsantos/shortener/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dep(name string, err error) health.Dependency {
	return health.Dependency{
		Name: name,
		Ping: func(_ context.Context) error { return err },
	}
}

func TestCheck(t *testing.T) {
	t.Run("reports ok when all dependencies answer", func(t *testing.T) {
		handler := health.NewHandler(dep("postgres", nil), dep("redis", nil))

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Equal(t, "healthy", resp.Body.Dependencies["postgres"])
		assert.Equal(t, "healthy", resp.Body.Dependencies["redis"])
	})

	t.Run("one unreachable dependency degrades the status", func(t *testing.T) {
		handler := health.NewHandler(
			dep("postgres", errors.New("connection refused")),
			dep("redis", nil),
		)

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "unhealthy", resp.Body.Dependencies["postgres"])
		assert.Equal(t, "healthy", resp.Body.Dependencies["redis"])
	})

	t.Run("no dependencies is trivially ok", func(t *testing.T) {
		handler := health.NewHandler()

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Empty(t, resp.Body.Dependencies)
	})
}
