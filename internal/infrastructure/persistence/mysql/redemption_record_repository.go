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
	"loyalty-server/internal/domain/redemption_record"
)

// RedemptionRecordRepository MySQL実装のredemption_record.Repository
type RedemptionRecordRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewRedemptionRecordRepository 新しいRedemptionRecordRepositoryを作成
func NewRedemptionRecordRepository(db *DB) *RedemptionRecordRepository {
	return &RedemptionRecordRepository{
		db:     db,
		tracer: otel.Tracer("redemption-record-repository"),
	}
}

// SaveTx 交換履歴を挿入し、採番されたIDを返す
func (r *RedemptionRecordRepository) SaveTx(ctx context.Context, tx *sql.Tx, record *redemption_record.RedemptionRecord) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionRecordRepository.SaveTx")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.product_id", record.ProductID()),
		attribute.String("db.agent_code", record.AgentCode().String()),
		attribute.Int("db.points_cost", record.PointsCost()),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "redemption_records"),
	)

	query := `
		INSERT INTO redemption_records (product_id, agent_code, points_cost, status, remark, redeemed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		record.ProductID(),
		record.AgentCode().String(),
		record.PointsCost(),
		record.Status().String(),
		record.Remark(),
		record.RedeemedAt(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return 0, fmt.Errorf("failed to save redemption record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	span.SetAttributes(attribute.Int64("db.record_id", id))
	span.SetStatus(otelcodes.Ok, "record saved")
	return id, nil
}

// CountSuccessByProductAgentTx (productID, agentCode)の成功交換件数を取得
// 残高行ロックを保持したトランザクション内で呼び出すため、同時交換が直列化される
func (r *RedemptionRecordRepository) CountSuccessByProductAgentTx(ctx context.Context, tx *sql.Tx, productID int64, agentCode agent.Code) (int, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionRecordRepository.CountSuccessByProductAgentTx")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.product_id", productID),
		attribute.String("db.agent_code", agentCode.String()),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "redemption_records"),
	)

	query := `
		SELECT COUNT(*)
		FROM redemption_records
		WHERE product_id = ? AND agent_code = ? AND status = 'success'
	`

	var count int
	err := tx.QueryRowContext(ctx, query, productID, agentCode.String()).Scan(&count)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return 0, fmt.Errorf("failed to count redemption records: %w", err)
	}

	span.SetAttributes(attribute.Int("db.count", count))
	span.SetStatus(otelcodes.Ok, "records counted")
	return count, nil
}

// ListByAgent エージェントの交換履歴を取得（productIDが0の場合は全商品、交換日時降順）
func (r *RedemptionRecordRepository) ListByAgent(ctx context.Context, agentCode agent.Code, productID int64) ([]*redemption_record.RecordDetail, int, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionRecordRepository.ListByAgent")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.agent_code", agentCode.String()),
		attribute.Int64("db.product_id", productID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "redemption_records"),
	)

	query := `
		SELECT rr.id, rr.product_id, rr.agent_code, rr.points_cost, rr.status,
			rr.remark, rr.redeemed_at, rr.created_at, p.title, p.redeem_category
		FROM redemption_records rr
		JOIN redemption_products p ON p.id = rr.product_id
		WHERE rr.agent_code = ?
	`
	args := []interface{}{agentCode.String()}
	if productID != 0 {
		query += " AND rr.product_id = ?"
		args = append(args, productID)
	}
	query += " ORDER BY rr.redeemed_at DESC, rr.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, 0, fmt.Errorf("failed to list redemption records: %w", err)
	}
	defer rows.Close()

	var details []*redemption_record.RecordDetail
	totalCost := 0
	for rows.Next() {
		var id, dbProductID int64
		var dbAgentCode, dbStatus, title, redeemCategory string
		var pointsCost int
		var remark sql.NullString
		var redeemedAt, createdAt time.Time

		if err := rows.Scan(&id, &dbProductID, &dbAgentCode, &pointsCost, &dbStatus, &remark, &redeemedAt, &createdAt, &title, &redeemCategory); err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, 0, fmt.Errorf("failed to scan redemption record: %w", err)
		}

		code, err := agent.NewCode(dbAgentCode)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid agent code in database: %w", err)
		}

		status, err := redemption_record.NewRecordStatus(dbStatus)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid record status in database: %w", err)
		}

		var remarkPtr *string
		if remark.Valid {
			remarkPtr = &remark.String
		}

		details = append(details, &redemption_record.RecordDetail{
			Record:         redemption_record.Reconstruct(id, dbProductID, code, pointsCost, status, remarkPtr, redeemedAt, createdAt),
			ProductTitle:   title,
			RedeemCategory: redeemCategory,
		})
		if status.IsSuccess() {
			totalCost += pointsCost
		}
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, 0, fmt.Errorf("failed to iterate redemption records: %w", err)
	}

	span.SetAttributes(
		attribute.Int("db.count", len(details)),
		attribute.Int("db.total_cost", totalCost),
	)
	span.SetStatus(otelcodes.Ok, "records listed")
	return details, totalCost, nil
}
