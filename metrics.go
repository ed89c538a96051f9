package ninject

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/muir/ninject"

type metrics struct {
	injected     metric.Int64Counter
	missing      metric.Int64Counter
	classLookups metric.Int64Counter
}

func newMetrics(mp metric.MeterProvider) (*metrics, error) {
	meter := mp.Meter(meterName)

	injected, err := meter.Int64Counter("ninject.injected",
		metric.WithDescription("Options injected into function calls and structs"),
	)
	if err != nil {
		return nil, err
	}

	missing, err := meter.Int64Counter("ninject.missing_section",
		metric.WithDescription("Injections skipped because the section does not exist"),
	)
	if err != nil {
		return nil, err
	}

	classLookups, err := meter.Int64Counter("ninject.class_lookups",
		metric.WithDescription("Class attribute lookups through injected classes"),
	)
	if err != nil {
		return nil, err
	}

	return &metrics{
		injected:     injected,
		missing:      missing,
		classLookups: classLookups,
	}, nil
}

func (m *metrics) injection(section string) {
	m.injected.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("section", section)))
}

func (m *metrics) missingSection(section string) {
	m.missing.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("section", section)))
}

// classLookup counts resolved class attributes by where the value came
// from: "native" or "config".
func (m *metrics) classLookup(section, source string) {
	m.classLookups.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String("section", section),
			attribute.String("source", source)))
}
