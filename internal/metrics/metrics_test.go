package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveImport_CountsByResult(t *testing.T) {
	before := testutil.ToFloat64(ImportsTotal.WithLabelValues("kml", ResultSuccess))

	ObserveImport("kml", ResultSuccess, 0.01)
	ObserveImport("kml", "NoGeometryFound", 0.01)

	assert.Equal(t, before+1, testutil.ToFloat64(ImportsTotal.WithLabelValues("kml", ResultSuccess)))
	assert.GreaterOrEqual(t, testutil.ToFloat64(ImportsTotal.WithLabelValues("kml", "NoGeometryFound")), 1.0)
}
