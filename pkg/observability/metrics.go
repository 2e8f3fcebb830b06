package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricChecksTotal   = "autograde.checks.total"
	metricCheckDuration = "autograde.check.duration.seconds"
	metricFailuresTotal = "autograde.check.failures.total"
	metricCasesTotal    = "autograde.cases.total"

	attrCheck  = "check"
	attrStatus = "status"
	attrKind   = "kind"
)

// Check outcome statuses.
const (
	StatusPass  = "pass"
	StatusFail  = "fail"
	StatusError = "error"
)

// durationBucketBoundaries covers 10µs to 5s: checks are in-memory scans,
// and only sum-stat checks over large frames reach the upper buckets.
var durationBucketBoundaries = []float64{0.00001, 0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5}

// GradeMetrics holds the OTel instruments recorded while grading.
type GradeMetrics struct {
	checksTotal   metric.Int64Counter
	checkDuration metric.Float64Histogram
	failuresTotal metric.Int64Counter
	casesTotal    metric.Int64Counter
}

// NewGradeMetrics creates grading metric instruments from the given meter.
func NewGradeMetrics(mt metric.Meter) (*GradeMetrics, error) {
	b := newMetricBuilder(mt)

	gm := &GradeMetrics{
		checksTotal:   b.counter(metricChecksTotal, "Total checks evaluated", "{check}"),
		checkDuration: b.histogram(metricCheckDuration, "Check duration in seconds", "s", durationBucketBoundaries...),
		failuresTotal: b.counter(metricFailuresTotal, "Failed checks by failure kind", "{check}"),
		casesTotal:    b.counter(metricCasesTotal, "Grading cases run", "{case}"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return gm, nil
}

// RecordCheck records one evaluated check. kind is the failure kind and may
// be empty.
func (gm *GradeMetrics) RecordCheck(ctx context.Context, check, status, kind string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrCheck, check),
		attribute.String(attrStatus, status),
	)

	gm.checksTotal.Add(ctx, 1, attrs)
	gm.checkDuration.Record(ctx, duration.Seconds(), attrs)

	if status != StatusPass {
		gm.failuresTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrCheck, check),
			attribute.String(attrKind, kind),
		))
	}
}

// RecordCase counts a finished grading case.
func (gm *GradeMetrics) RecordCase(ctx context.Context, passed bool) {
	status := StatusPass
	if !passed {
		status = StatusFail
	}

	gm.casesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrStatus, status)))
}

// metricBuilder accumulates OTel instrument creation errors,
// enabling batch construction with a single error check.
type metricBuilder struct {
	meter metric.Meter
	err   error
}

func newMetricBuilder(mt metric.Meter) *metricBuilder {
	return &metricBuilder{meter: mt}
}

func (b *metricBuilder) counter(name, desc, unit string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	b.setErr(name, err)

	return c
}

func (b *metricBuilder) histogram(name, desc, unit string, bounds ...float64) metric.Float64Histogram {
	opts := []metric.Float64HistogramOption{
		metric.WithDescription(desc),
		metric.WithUnit(unit),
	}

	if len(bounds) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(bounds...))
	}

	h, err := b.meter.Float64Histogram(name, opts...)
	b.setErr(name, err)

	return h
}

// setErr records the first instrument creation error.
func (b *metricBuilder) setErr(name string, err error) {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("create %s: %w", name, err)
	}
}
