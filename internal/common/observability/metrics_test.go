// internal/common/observability/metrics_test.go
package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_RecordAndShutdown(t *testing.T) {
	obs, err := New("pathway-workers-test")
	require.NoError(t, err)

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "recommend-pathways", "completed")
	obs.RecordJobDuration(ctx, "recommend-pathways", 25*time.Millisecond)
	obs.RecordCatalogSize(ctx, "postgres", 42)

	assert.NoError(t, obs.Shutdown(ctx))
}

func TestObservability_NilSafe(t *testing.T) {
	var obs *Observability
	ctx := context.Background()

	assert.NotPanics(t, func() {
		obs.RecordJobProcessed(ctx, "x", "completed")
		obs.RecordJobDuration(ctx, "x", time.Second)
		obs.RecordCatalogSize(ctx, "x", 1)
	})
	assert.NoError(t, obs.Shutdown(ctx))
}
