package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordGeneration(t *testing.T) {
	before := testutil.ToFloat64(GenerationsTotal.WithLabelValues("test", "fallback"))
	RecordGeneration("test", "fallback")
	assert.Equal(t, before+1, testutil.ToFloat64(GenerationsTotal.WithLabelValues("test", "fallback")))
}

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/health", "200"))
	RecordRequest("GET", "/health", "200", 0.01)
	assert.Equal(t, before+1, testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/health", "200")))
}

func TestRecordResolutionAndUpstream(t *testing.T) {
	RecordResolution("url")
	RecordUpstreamError("youtube")
	assert.GreaterOrEqual(t, testutil.ToFloat64(ResolutionsTotal.WithLabelValues("url")), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(UpstreamErrorsTotal.WithLabelValues("youtube")), 1.0)
}
