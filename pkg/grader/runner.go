package grader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/autograde/pkg/check"
	"github.com/Sumatoshi-tech/autograde/pkg/frame"
	"github.com/Sumatoshi-tech/autograde/pkg/observability"
	"github.com/Sumatoshi-tech/autograde/pkg/plot"
)

// Result is the outcome of one check.
type Result struct {
	Name     string        `json:"name"`
	Check    string        `json:"check"`
	Status   string        `json:"status"`
	Kind     string        `json:"kind,omitempty"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration_ns"`
	Err      error         `json:"-"`
}

// Passed reports whether the check passed.
func (r Result) Passed() bool {
	return r.Status == observability.StatusPass
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed() {
			return false
		}
	}

	return true
}

// Runner evaluates cases. The zero value is not usable; use NewRunner.
type Runner struct {
	tracer  trace.Tracer
	metrics *observability.GradeMetrics
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithTracer sets the tracer for case and check spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Runner) { r.tracer = tracer }
}

// WithMetrics records every check into gm.
func WithMetrics(gm *observability.GradeMetrics) Option {
	return func(r *Runner) { r.metrics = gm }
}

// WithLogger sets the logger for check outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner creates a Runner using the global tracer and default logger
// unless overridden.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		tracer: otel.Tracer(observability.TracerName),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run evaluates every check of c with a default Runner.
func Run(ctx context.Context, c *Case, f *frame.Frame, axes *plot.Axes) []Result {
	return NewRunner().Run(ctx, c, f, axes)
}

// Run evaluates every check of c against the submission. A failing check
// never stops the run.
func (r *Runner) Run(ctx context.Context, c *Case, f *frame.Frame, axes *plot.Axes) []Result {
	ctx, span := r.tracer.Start(ctx, "grader.case", trace.WithAttributes(
		attribute.String("case.name", c.Name),
		attribute.Int("case.checks", len(c.Checks)),
	))
	defer span.End()

	sub := submission{frame: f, axes: axes}
	results := make([]Result, 0, len(c.Checks))

	for _, entry := range c.Checks {
		results = append(results, r.evaluate(ctx, sub, entry))
	}

	passed := AllPassed(results)
	if !passed {
		span.SetStatus(codes.Error, "checks failed")
	}

	if r.metrics != nil {
		r.metrics.RecordCase(ctx, passed)
	}

	return results
}

func (r *Runner) evaluate(ctx context.Context, sub submission, entry Check) Result {
	ctx, span := r.tracer.Start(ctx, "grader.check", trace.WithAttributes(
		attribute.String("check.name", entry.Label()),
		attribute.String("check.kind", entry.Check),
	))
	defer span.End()

	start := time.Now()
	res := Result{Name: entry.Label(), Check: entry.Check}

	fn, ok := registry[entry.Check]
	if !ok {
		r.finish(ctx, span, &res, false, fmt.Errorf("%w: %q", ErrUnknownCheck, entry.Check), start)

		return res
	}

	passed, err := fn(sub, entry)
	r.finish(ctx, span, &res, passed, err, start)

	return res
}

func (r *Runner) finish(ctx context.Context, span trace.Span, res *Result, passed bool, err error, start time.Time) {
	res.Duration = time.Since(start)
	res.Err = err

	var checkErr *check.Error

	switch {
	case err == nil && passed:
		res.Status = observability.StatusPass
	case err == nil:
		res.Status = observability.StatusFail
		res.Message = "check returned false"
	case errors.As(err, &checkErr):
		res.Status = observability.StatusFail
		res.Kind = checkErr.Kind.String()
		res.Message = err.Error()
	default:
		res.Status = observability.StatusError
		res.Message = err.Error()
	}

	span.SetAttributes(attribute.String("check.status", res.Status))

	if err != nil {
		span.RecordError(err)
	}

	if !res.Passed() {
		span.SetStatus(codes.Error, res.Message)
	}

	if r.metrics != nil {
		r.metrics.RecordCheck(ctx, res.Check, res.Status, res.Kind, res.Duration)
	}

	r.logger.DebugContext(ctx, "check evaluated",
		"name", res.Name, "check", res.Check, "status", res.Status, "kind", res.Kind)
}
