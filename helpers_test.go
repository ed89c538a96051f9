package ninject

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/muir/ninject/store"
)

type harness struct {
	*Injector
	logs   *observer.ObservedLogs
	reader *sdkmetric.ManualReader
}

func newHarness(t *testing.T, config string, opts ...Option) harness {
	s, err := store.ParseINI([]byte(config))
	require.NoError(t, err, "parse config")
	core, logs := observer.New(zapcore.DebugLevel)
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	in, err := New(s, append([]Option{
		WithLogger(zap.New(core)),
		WithMeterProvider(mp),
	}, opts...)...)
	require.NoError(t, err, "new injector")
	return harness{
		Injector: in,
		logs:     logs,
		reader:   reader,
	}
}

// count sums the data points of a counter that carry all of attrs.
func (h harness) count(t *testing.T, name string, attrs ...attribute.KeyValue) int64 {
	var rm metricdata.ResourceMetrics
	require.NoError(t, h.reader.Collect(context.Background(), &rm), "collect")
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.Truef(t, ok, "%s is a sum", name)
			for _, dp := range sum.DataPoints {
				if hasAttributes(dp.Attributes, attrs) {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func hasAttributes(set attribute.Set, attrs []attribute.KeyValue) bool {
	for _, kv := range attrs {
		v, ok := set.Value(kv.Key)
		if !ok || v.Emit() != kv.Value.Emit() {
			return false
		}
	}
	return true
}
