package telemetry_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/telemetry"
)

func TestMetricsRegisterWithoutCollision(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := telemetry.New(reg)
	require.NotNil(t, m)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Empty(t, families, "no samples recorded yet, but registration must not fail")
}

func TestIndexingCompletedEventsIncrements(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := telemetry.New(reg)

	m.IndexingCompletedEvents.WithLabelValues("137", "Pool:Swap").Inc()
	m.IndexingCompletedEvents.WithLabelValues("137", "Pool:Swap").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	var found *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "indexing_completed_events" {
			found = f
		}
	}
	require.NotNil(t, found)
	require.Len(t, found.Metric, 1)
	require.Equal(t, float64(2), found.Metric[0].GetCounter().GetValue())
}
