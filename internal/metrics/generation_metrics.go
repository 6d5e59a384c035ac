package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("generation-metrics")

// GenerationMetrics provides metrics collection for petition generation sessions
type GenerationMetrics struct {
	startedCounter    metric.Int64Counter
	completedCounter  metric.Int64Counter
	failedCounter     metric.Int64Counter
	durationHistogram metric.Float64Histogram
	activeGauge       metric.Int64UpDownCounter
}

// NewGenerationMetrics creates a new generation metrics collector
func NewGenerationMetrics() (*GenerationMetrics, error) {
	startedCounter, err := meter.Int64Counter(
		"petition_orchestrator.generations.started",
		metric.WithDescription("Total number of generation sessions started"),
		metric.WithUnit("{generation}"),
	)
	if err != nil {
		return nil, err
	}

	completedCounter, err := meter.Int64Counter(
		"petition_orchestrator.generations.completed",
		metric.WithDescription("Total number of generation sessions completed successfully"),
		metric.WithUnit("{generation}"),
	)
	if err != nil {
		return nil, err
	}

	failedCounter, err := meter.Int64Counter(
		"petition_orchestrator.generations.failed",
		metric.WithDescription("Total number of generation sessions that failed"),
		metric.WithUnit("{generation}"),
	)
	if err != nil {
		return nil, err
	}

	durationHistogram, err := meter.Float64Histogram(
		"petition_orchestrator.generation.duration",
		metric.WithDescription("Duration of generation sessions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	activeGauge, err := meter.Int64UpDownCounter(
		"petition_orchestrator.generations.active",
		metric.WithDescription("Number of currently active generation sessions"),
		metric.WithUnit("{generation}"),
	)
	if err != nil {
		return nil, err
	}

	return &GenerationMetrics{
		startedCounter:    startedCounter,
		completedCounter:  completedCounter,
		failedCounter:     failedCounter,
		durationHistogram: durationHistogram,
		activeGauge:       activeGauge,
	}, nil
}

// RecordStarted records the start of a generation session
func (gm *GenerationMetrics) RecordStarted(ctx context.Context, legalArea, pieceType string) {
	gm.startedCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("legal.area", legalArea),
			attribute.String("piece.type", pieceType),
		),
	)
	gm.activeGauge.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("legal.area", legalArea),
		),
	)
}

// RecordCompleted records a successful generation session
func (gm *GenerationMetrics) RecordCompleted(ctx context.Context, legalArea, pieceType string, duration time.Duration) {
	gm.completedCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("legal.area", legalArea),
			attribute.String("piece.type", pieceType),
			attribute.String("status", "completed"),
		),
	)
	gm.durationHistogram.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("legal.area", legalArea),
			attribute.String("piece.type", pieceType),
			attribute.String("status", "completed"),
		),
	)
	gm.activeGauge.Add(ctx, -1,
		metric.WithAttributes(
			attribute.String("legal.area", legalArea),
		),
	)
}

// RecordFailed records a failed generation session
func (gm *GenerationMetrics) RecordFailed(ctx context.Context, legalArea, pieceType, errorType string, duration time.Duration) {
	gm.failedCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("legal.area", legalArea),
			attribute.String("piece.type", pieceType),
			attribute.String("status", "failed"),
			attribute.String("error.type", errorType),
		),
	)
	gm.durationHistogram.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("legal.area", legalArea),
			attribute.String("piece.type", pieceType),
			attribute.String("status", "failed"),
		),
	)
	gm.activeGauge.Add(ctx, -1,
		metric.WithAttributes(
			attribute.String("legal.area", legalArea),
		),
	)
}
