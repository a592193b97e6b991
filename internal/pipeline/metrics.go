package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

const meterName = "github.com/nguyentantai21042004/lecture-notes/internal/pipeline"

type stageMetrics struct {
	duration metric.Float64Histogram
	runs     metric.Int64Counter
}

// newStageMetrics binds instruments on the global meter provider. With
// telemetry disabled that provider is a no-op.
func newStageMetrics(log logger.Logger) *stageMetrics {
	meter := otel.Meter(meterName)
	m := &stageMetrics{}

	var err error
	m.duration, err = meter.Float64Histogram("lecturenotes.stage.duration",
		metric.WithDescription("Duration of a pipeline stage"),
		metric.WithUnit("s"))
	if err != nil {
		log.Warn(context.Background(), "Failed to create stage duration histogram: %v", err)
	}
	m.runs, err = meter.Int64Counter("lecturenotes.runs",
		metric.WithDescription("Completed pipeline runs by outcome"))
	if err != nil {
		log.Warn(context.Background(), "Failed to create run counter: %v", err)
	}
	return m
}

func (m *stageMetrics) recordStage(ctx context.Context, stage Stage, outcome string, seconds float64) {
	if m.duration == nil {
		return
	}
	m.duration.Record(ctx, seconds, metric.WithAttributes(
		attribute.String("stage", string(stage)),
		attribute.String("outcome", outcome),
	))
}

func (m *stageMetrics) recordRun(ctx context.Context, outcome string) {
	if m.runs == nil {
		return
	}
	m.runs.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func newRunID() string {
	return uuid.NewString()
}
