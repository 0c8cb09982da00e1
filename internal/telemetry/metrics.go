package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ToolCallOutcome describes how a tool invocation ended.
type ToolCallOutcome string

const (
	ToolCallOutcomeSuccess ToolCallOutcome = "success"
	ToolCallOutcomeError   ToolCallOutcome = "error"
)

// CustomMetrics is the interface for recording pxbridge-specific metrics.
// Call sites always record through this interface; when telemetry is
// disabled a no-op implementation is injected, so they never need to
// check whether metrics are enabled.
type CustomMetrics interface {
	// RecordToolCall records a single tool invocation with its outcome and duration.
	RecordToolCall(ctx context.Context, tool string, outcome ToolCallOutcome, duration time.Duration)
}

type noopCustomMetrics struct{}

// NewNoopCustomMetrics returns a CustomMetrics implementation that discards everything.
func NewNoopCustomMetrics() CustomMetrics {
	return &noopCustomMetrics{}
}

func (n *noopCustomMetrics) RecordToolCall(context.Context, string, ToolCallOutcome, time.Duration) {
}

type otelCustomMetrics struct {
	toolCalls       metric.Int64Counter
	toolCallLatency metric.Float64Histogram
}

// NewOtelCustomMetrics creates a CustomMetrics implementation backed by the given otel meter.
func NewOtelCustomMetrics(meter metric.Meter) (CustomMetrics, error) {
	toolCalls, err := meter.Int64Counter(
		"pxbridge.tool.calls",
		metric.WithDescription("Total number of MCP tool invocations"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool calls counter: %w", err)
	}

	toolCallLatency, err := meter.Float64Histogram(
		"pxbridge.tool.call.duration",
		metric.WithDescription("Duration of MCP tool invocations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool call duration histogram: %w", err)
	}

	return &otelCustomMetrics{
		toolCalls:       toolCalls,
		toolCallLatency: toolCallLatency,
	}, nil
}

func (m *otelCustomMetrics) RecordToolCall(
	ctx context.Context, tool string, outcome ToolCallOutcome, duration time.Duration,
) {
	attrs := metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("outcome", string(outcome)),
	)
	m.toolCalls.Add(ctx, 1, attrs)
	m.toolCallLatency.Record(ctx, duration.Seconds(), attrs)
}
