package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"loyalty-server/internal/domain/point_rule"
)

// PointRuleRepository MySQL実装のpoint_rule.Repository
type PointRuleRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewPointRuleRepository 新しいPointRuleRepositoryを作成
func NewPointRuleRepository(db *DB) *PointRuleRepository {
	return &PointRuleRepository{
		db:     db,
		tracer: otel.Tracer("point-rule-repository"),
	}
}

// FindByID IDでルールを取得
func (r *PointRuleRepository) FindByID(ctx context.Context, id int64) (*point_rule.PointRule, error) {
	ctx, span := r.tracer.Start(ctx, "PointRuleRepository.FindByID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.rule_id", id),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "point_rules"),
	)

	query := `
		SELECT id, name, category, point_amount, annual_limit, standard,
			created_by, created_at, updated_at
		FROM point_rules
		WHERE id = ?
	`

	rule, err := r.scanRule(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "rule not found")
		return nil, point_rule.ErrRuleNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find point rule: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "rule found")
	return rule, nil
}

// List ルール一覧を取得（categoryが空文字の場合は全件、作成日時降順）
func (r *PointRuleRepository) List(ctx context.Context, category string) ([]*point_rule.PointRule, error) {
	ctx, span := r.tracer.Start(ctx, "PointRuleRepository.List")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.category", category),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "point_rules"),
	)

	query := `
		SELECT id, name, category, point_amount, annual_limit, standard,
			created_by, created_at, updated_at
		FROM point_rules
	`
	var args []interface{}
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to list point rules: %w", err)
	}
	defer rows.Close()

	var rules []*point_rule.PointRule
	for rows.Next() {
		rule, err := r.scanRule(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan point rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate point rules: %w", err)
	}

	span.SetAttributes(attribute.Int("db.count", len(rules)))
	span.SetStatus(otelcodes.Ok, "rules listed")
	return rules, nil
}

// Create 新しいルールを作成し、採番されたIDを返す
func (r *PointRuleRepository) Create(ctx context.Context, rule *point_rule.PointRule) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "PointRuleRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.name", rule.Name()),
		attribute.String("db.category", rule.Category()),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "point_rules"),
	)

	standardJSON, err := marshalStandard(rule.Standard())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return 0, err
	}

	query := `
		INSERT INTO point_rules (name, category, point_amount, annual_limit, standard, created_by)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		rule.Name(),
		rule.Category(),
		rule.PointAmount(),
		rule.AnnualLimit(),
		standardJSON,
		rule.CreatedBy(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return 0, fmt.Errorf("failed to create point rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	span.SetAttributes(attribute.Int64("db.rule_id", id))
	span.SetStatus(otelcodes.Ok, "rule created")
	return id, nil
}

// Update ルールを部分更新（更新された場合はtrue）
func (r *PointRuleRepository) Update(ctx context.Context, id int64, fields point_rule.UpdateFields) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "PointRuleRepository.Update")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.rule_id", id),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "point_rules"),
	)

	var sets []string
	var args []interface{}
	if fields.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *fields.Name)
	}
	if fields.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *fields.Category)
	}
	if fields.PointAmount != nil {
		sets = append(sets, "point_amount = ?")
		args = append(args, *fields.PointAmount)
	}
	if fields.AnnualLimit != nil {
		sets = append(sets, "annual_limit = ?")
		args = append(args, *fields.AnnualLimit)
	}
	if fields.Standard != nil {
		standardJSON, err := marshalStandard(fields.Standard)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return false, err
		}
		sets = append(sets, "standard = ?")
		args = append(args, standardJSON)
	}
	if len(sets) == 0 {
		span.SetStatus(otelcodes.Ok, "no fields to update")
		return false, nil
	}

	query := "UPDATE point_rules SET " + strings.Join(sets, ", ") + ", updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to update point rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", rowsAffected))
	span.SetStatus(otelcodes.Ok, "rule updated")
	return rowsAffected > 0, nil
}

// Delete ルールを削除（削除された場合はtrue）
func (r *PointRuleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "PointRuleRepository.Delete")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.rule_id", id),
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.table", "point_rules"),
	)

	query := `DELETE FROM point_rules WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to delete point rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", rowsAffected))
	span.SetStatus(otelcodes.Ok, "rule deleted")
	return rowsAffected > 0, nil
}

func (r *PointRuleRepository) scanRule(row rowScanner) (*point_rule.PointRule, error) {
	var id, createdBy int64
	var name, category string
	var pointAmount, annualLimit sql.NullInt64
	var standardJSON sql.NullString
	var createdAt, updatedAt time.Time

	if err := row.Scan(&id, &name, &category, &pointAmount, &annualLimit, &standardJSON, &createdBy, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var pointAmountPtr, annualLimitPtr *int
	if pointAmount.Valid {
		v := int(pointAmount.Int64)
		pointAmountPtr = &v
	}
	if annualLimit.Valid {
		v := int(annualLimit.Int64)
		annualLimitPtr = &v
	}

	var standard point_rule.Standard
	if standardJSON.Valid && standardJSON.String != "" {
		if err := json.Unmarshal([]byte(standardJSON.String), &standard); err != nil {
			return nil, fmt.Errorf("failed to unmarshal standard: %w", err)
		}
	}

	return point_rule.Reconstruct(id, name, category, pointAmountPtr, annualLimitPtr, standard, createdBy, createdAt, updatedAt), nil
}

func marshalStandard(standard point_rule.Standard) (interface{}, error) {
	if standard == nil {
		return nil, nil
	}
	b, err := json.Marshal(standard)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal standard: %w", err)
	}
	return string(b), nil
}
