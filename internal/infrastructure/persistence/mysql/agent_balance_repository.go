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
)

// AgentBalanceRepository MySQL実装のBalanceRepository
type AgentBalanceRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewAgentBalanceRepository 新しいAgentBalanceRepositoryを作成
func NewAgentBalanceRepository(db *DB) *AgentBalanceRepository {
	return &AgentBalanceRepository{
		db:     db,
		tracer: otel.Tracer("agent-balance-repository"),
	}
}

// FindByAgentCode エージェントコードで残高を取得
func (r *AgentBalanceRepository) FindByAgentCode(ctx context.Context, agentCode agent.Code) (*agent.AgentBalance, error) {
	ctx, span := r.tracer.Start(ctx, "AgentBalanceRepository.FindByAgentCode")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.agent_code", agentCode.String()),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "agent_point_balances"),
	)

	query := `
		SELECT agent_code, current_points, created_at, updated_at
		FROM agent_point_balances
		WHERE agent_code = ?
	`

	balance, err := r.scanBalance(r.db.QueryRowContext(ctx, query, agentCode.String()))
	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "balance not found")
		return nil, agent.ErrBalanceNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find agent balance: %w", err)
	}

	span.SetAttributes(attribute.Int("db.current_points", balance.CurrentPoints()))
	span.SetStatus(otelcodes.Ok, "balance found")
	return balance, nil
}

// ListAll 全エージェントの残高を取得（残高降順）
func (r *AgentBalanceRepository) ListAll(ctx context.Context) ([]*agent.AgentBalance, error) {
	ctx, span := r.tracer.Start(ctx, "AgentBalanceRepository.ListAll")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "agent_point_balances"),
	)

	query := `
		SELECT agent_code, current_points, created_at, updated_at
		FROM agent_point_balances
		ORDER BY current_points DESC, agent_code ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to list agent balances: %w", err)
	}
	defer rows.Close()

	var balances []*agent.AgentBalance
	for rows.Next() {
		balance, err := r.scanBalance(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan agent balance: %w", err)
		}
		balances = append(balances, balance)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate agent balances: %w", err)
	}

	span.SetAttributes(attribute.Int("db.count", len(balances)))
	span.SetStatus(otelcodes.Ok, "balances listed")
	return balances, nil
}

// EnsureRowTx 残高行が存在しない場合は0ポイントで作成
func (r *AgentBalanceRepository) EnsureRowTx(ctx context.Context, tx *sql.Tx, agentCode agent.Code) error {
	ctx, span := r.tracer.Start(ctx, "AgentBalanceRepository.EnsureRowTx")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.agent_code", agentCode.String()),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "agent_point_balances"),
	)

	query := `
		INSERT INTO agent_point_balances (agent_code, current_points)
		VALUES (?, 0)
		ON DUPLICATE KEY UPDATE agent_code = agent_code
	`

	if _, err := tx.ExecContext(ctx, query, agentCode.String()); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to ensure balance row: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "balance row ensured")
	return nil
}

// LockForUpdateTx 残高行を行ロック付きで取得（エージェント単位の直列化点）
func (r *AgentBalanceRepository) LockForUpdateTx(ctx context.Context, tx *sql.Tx, agentCode agent.Code) (*agent.AgentBalance, error) {
	ctx, span := r.tracer.Start(ctx, "AgentBalanceRepository.LockForUpdateTx")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.agent_code", agentCode.String()),
		attribute.String("db.operation", "SELECT FOR UPDATE"),
		attribute.String("db.table", "agent_point_balances"),
	)

	query := `
		SELECT agent_code, current_points, created_at, updated_at
		FROM agent_point_balances
		WHERE agent_code = ?
		FOR UPDATE
	`

	balance, err := r.scanBalance(tx.QueryRowContext(ctx, query, agentCode.String()))
	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "balance not found")
		return nil, agent.ErrBalanceNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to lock agent balance: %w", err)
	}

	span.SetAttributes(attribute.Int("db.current_points", balance.CurrentPoints()))
	span.SetStatus(otelcodes.Ok, "balance locked")
	return balance, nil
}

// AddPointsTx 残高を加算（付与は減ることがないため無条件インクリメント）
func (r *AgentBalanceRepository) AddPointsTx(ctx context.Context, tx *sql.Tx, agentCode agent.Code, points int) error {
	ctx, span := r.tracer.Start(ctx, "AgentBalanceRepository.AddPointsTx")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.agent_code", agentCode.String()),
		attribute.Int("db.points", points),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "agent_point_balances"),
	)

	query := `
		UPDATE agent_point_balances
		SET current_points = current_points + ?, updated_at = CURRENT_TIMESTAMP
		WHERE agent_code = ?
	`

	result, err := tx.ExecContext(ctx, query, points, agentCode.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to add points: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		span.SetStatus(otelcodes.Error, "balance row missing")
		return agent.ErrBalanceNotFound
	}

	span.SetStatus(otelcodes.Ok, "points added")
	return nil
}

// DeductPointsTx 残高を条件付きUPDATEで減算
// WHERE句で残高を再評価するため、同時実行されても残高が負になることはない
func (r *AgentBalanceRepository) DeductPointsTx(ctx context.Context, tx *sql.Tx, agentCode agent.Code, points int) error {
	ctx, span := r.tracer.Start(ctx, "AgentBalanceRepository.DeductPointsTx")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.agent_code", agentCode.String()),
		attribute.Int("db.points", points),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "agent_point_balances"),
	)

	query := `
		UPDATE agent_point_balances
		SET current_points = current_points - ?, updated_at = CURRENT_TIMESTAMP
		WHERE agent_code = ? AND current_points >= ?
	`

	result, err := tx.ExecContext(ctx, query, points, agentCode.String(), points)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to deduct points: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		span.SetStatus(otelcodes.Error, "insufficient balance")
		return agent.ErrInsufficientBalance
	}

	span.SetStatus(otelcodes.Ok, "points deducted")
	return nil
}

// rowScanner QueryRowContextとrows.Nextの両方からスキャンするための共通インターフェース
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *AgentBalanceRepository) scanBalance(row rowScanner) (*agent.AgentBalance, error) {
	var agentCode string
	var currentPoints int
	var createdAt, updatedAt time.Time

	if err := row.Scan(&agentCode, &currentPoints, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	code, err := agent.NewCode(agentCode)
	if err != nil {
		return nil, fmt.Errorf("invalid agent code in database: %w", err)
	}

	balance, err := agent.NewAgentBalance(code, currentPoints, createdAt, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct balance entity: %w", err)
	}
	return balance, nil
}
