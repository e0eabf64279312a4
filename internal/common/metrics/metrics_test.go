// internal/common/metrics/metrics_test.go
package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPathwaysScoredByTier(t *testing.T) {
	before := testutil.ToFloat64(PathwaysScored.WithLabelValues("fully_qualified"))

	PathwaysScored.WithLabelValues("fully_qualified").Add(3)

	assert.Equal(t, before+3, testutil.ToFloat64(PathwaysScored.WithLabelValues("fully_qualified")))
}

func TestWorkerJobsFailedLabels(t *testing.T) {
	WorkerJobsFailed.WithLabelValues("recommend-pathways", "USER_NOT_FOUND").Inc()

	assert.GreaterOrEqual(t, testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("recommend-pathways", "USER_NOT_FOUND")), 1.0)
}
