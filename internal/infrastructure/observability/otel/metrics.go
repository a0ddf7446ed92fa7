package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// ポイント付与数
	GrantCount metric.Int64Counter

	// 交換数
	RedemptionCount metric.Int64Counter

	// エージェント残高の分布
	AgentBalance metric.Int64Gauge

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	grantCount, err := meter.Int64Counter(
		"point_grants_total",
		metric.WithDescription("Total number of point grants"),
	)
	if err != nil {
		return nil, err
	}

	redemptionCount, err := meter.Int64Counter(
		"redemptions_total",
		metric.WithDescription("Total number of redemptions"),
	)
	if err != nil {
		return nil, err
	}

	agentBalance, err := meter.Int64Gauge(
		"agent_point_balance",
		metric.WithDescription("Agent point balance"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		GrantCount:      grantCount,
		RedemptionCount: redemptionCount,
		AgentBalance:    agentBalance,
		RequestCount:    requestCount,
		ResponseTime:    responseTime,
		ErrorCount:      errorCount,
	}, nil
}

// RecordGrant ポイント付与を記録
func (m *Metrics) RecordGrant(ctx context.Context, ruleCategory string, points int) {
	m.GrantCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("rule_category", ruleCategory),
			attribute.Int("points", points),
		),
	)
}

// RecordRedemption 交換を記録
func (m *Metrics) RecordRedemption(ctx context.Context, redeemCategory string, pointsCost int) {
	m.RedemptionCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("redeem_category", redeemCategory),
			attribute.Int("points_cost", pointsCost),
		),
	)
}

// RecordAgentBalance エージェント残高を記録
func (m *Metrics) RecordAgentBalance(ctx context.Context, agentCode string, balance int64) {
	m.AgentBalance.Record(ctx, balance,
		metric.WithAttributes(
			attribute.String("agent_code", agentCode),
		),
	)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}
