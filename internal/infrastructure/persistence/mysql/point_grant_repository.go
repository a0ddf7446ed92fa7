package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"loyalty-server/internal/domain/agent"
	"loyalty-server/internal/domain/point_grant"
)

// PointGrantRepository MySQL実装のpoint_grant.Repository
type PointGrantRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewPointGrantRepository 新しいPointGrantRepositoryを作成
func NewPointGrantRepository(db *DB) *PointGrantRepository {
	return &PointGrantRepository{
		db:     db,
		tracer: otel.Tracer("point-grant-repository"),
	}
}

// SaveTx 付与レコードを挿入し、採番されたIDを返す
func (r *PointGrantRepository) SaveTx(ctx context.Context, tx *sql.Tx, grant *point_grant.PointGrant) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "PointGrantRepository.SaveTx")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.agent_code", grant.AgentCode().String()),
		attribute.Int64("db.rule_id", grant.RuleID()),
		attribute.Int("db.points", grant.Points()),
		attribute.Int("db.occurred_year", grant.OccurredYear()),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "point_grants"),
	)

	query := `
		INSERT INTO point_grants (agent_code, rule_id, points, occurred_year, remark, created_by)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		grant.AgentCode().String(),
		grant.RuleID(),
		grant.Points(),
		grant.OccurredYear(),
		grant.Remark(),
		grant.CreatedBy(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return 0, fmt.Errorf("failed to save point grant: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	span.SetAttributes(attribute.Int64("db.grant_id", id))
	span.SetStatus(otelcodes.Ok, "grant saved")
	return id, nil
}

// CountByAgentRuleYearTx (agentCode, ruleID, occurredYear)の付与件数を取得
// 残高行ロックを保持したトランザクション内で呼び出すため、同時付与が直列化される
func (r *PointGrantRepository) CountByAgentRuleYearTx(ctx context.Context, tx *sql.Tx, agentCode agent.Code, ruleID int64, occurredYear int) (int, error) {
	ctx, span := r.tracer.Start(ctx, "PointGrantRepository.CountByAgentRuleYearTx")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.agent_code", agentCode.String()),
		attribute.Int64("db.rule_id", ruleID),
		attribute.Int("db.occurred_year", occurredYear),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "point_grants"),
	)

	query := `
		SELECT COUNT(*)
		FROM point_grants
		WHERE agent_code = ? AND rule_id = ? AND occurred_year = ?
	`

	var count int
	err := tx.QueryRowContext(ctx, query, agentCode.String(), ruleID, occurredYear).Scan(&count)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return 0, fmt.Errorf("failed to count point grants: %w", err)
	}

	span.SetAttributes(attribute.Int("db.count", count))
	span.SetStatus(otelcodes.Ok, "grants counted")
	return count, nil
}

// ListByAgent エージェントの付与履歴を取得（ruleIDが0の場合は全ルール、作成日時降順）
func (r *PointGrantRepository) ListByAgent(ctx context.Context, agentCode agent.Code, ruleID int64) ([]*point_grant.GrantDetail, int, error) {
	ctx, span := r.tracer.Start(ctx, "PointGrantRepository.ListByAgent")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.agent_code", agentCode.String()),
		attribute.Int64("db.rule_id", ruleID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "point_grants"),
	)

	query := `
		SELECT g.id, g.agent_code, g.rule_id, g.points, g.occurred_year,
			g.remark, g.created_by, g.created_at, r.name, r.category
		FROM point_grants g
		JOIN point_rules r ON r.id = g.rule_id
		WHERE g.agent_code = ?
	`
	args := []interface{}{agentCode.String()}
	if ruleID != 0 {
		query += " AND g.rule_id = ?"
		args = append(args, ruleID)
	}
	query += " ORDER BY g.created_at DESC, g.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, 0, fmt.Errorf("failed to list point grants: %w", err)
	}
	defer rows.Close()

	var details []*point_grant.GrantDetail
	total := 0
	for rows.Next() {
		var id, dbRuleID, createdBy int64
		var dbAgentCode, ruleName, ruleCategory string
		var points, occurredYear int
		var remark sql.NullString
		var createdAt time.Time

		if err := rows.Scan(&id, &dbAgentCode, &dbRuleID, &points, &occurredYear, &remark, &createdBy, &createdAt, &ruleName, &ruleCategory); err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, 0, fmt.Errorf("failed to scan point grant: %w", err)
		}

		code, err := agent.NewCode(dbAgentCode)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid agent code in database: %w", err)
		}

		var remarkPtr *string
		if remark.Valid {
			remarkPtr = &remark.String
		}

		details = append(details, &point_grant.GrantDetail{
			Grant:        point_grant.Reconstruct(id, code, dbRuleID, points, occurredYear, remarkPtr, createdBy, createdAt),
			RuleName:     ruleName,
			RuleCategory: ruleCategory,
		})
		total += points
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, 0, fmt.Errorf("failed to iterate point grants: %w", err)
	}

	span.SetAttributes(
		attribute.Int("db.count", len(details)),
		attribute.Int("db.total_points", total),
	)
	span.SetStatus(otelcodes.Ok, "grants listed")
	return details, total, nil
}

// ExistsForRule 指定ルールを参照する付与レコードが存在するかどうか
func (r *PointGrantRepository) ExistsForRule(ctx context.Context, ruleID int64) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "PointGrantRepository.ExistsForRule")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.rule_id", ruleID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "point_grants"),
	)

	query := `SELECT EXISTS(SELECT 1 FROM point_grants WHERE rule_id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, ruleID).Scan(&exists); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to check grants for rule: %w", err)
	}

	span.SetAttributes(attribute.Bool("db.exists", exists))
	span.SetStatus(otelcodes.Ok, "grants checked")
	return exists, nil
}
