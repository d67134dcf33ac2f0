package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestTechnicalCounters(t *testing.T) {
	path := "/pairings/{run_id}"
	method := http.MethodGet

	before := testutil.ToFloat64(RestRequestsTotal.WithLabelValues(path))
	IncRestRequestsTotal(path)
	require.Equal(t, before+1, testutil.ToFloat64(RestRequestsTotal.WithLabelValues(path)))

	beforeStatus := testutil.ToFloat64(RestEndpointsResponsesTotal.WithLabelValues(path, http.StatusText(http.StatusOK)))
	IncRestResponsesStatusesTotal(path, http.StatusOK)
	require.Equal(t, beforeStatus+1, testutil.ToFloat64(RestEndpointsResponsesTotal.WithLabelValues(path, http.StatusText(http.StatusOK))))

	IncRestResponsesDuration(path, method, 25*time.Millisecond)
	require.GreaterOrEqual(t, testutil.CollectAndCount(RestResponseDuration), 1)
}

func TestObserveGeneration(t *testing.T) {
	ObserveGeneration(3 * time.Millisecond)
	require.Equal(t, 1, testutil.CollectAndCount(GenerationDuration))
}
