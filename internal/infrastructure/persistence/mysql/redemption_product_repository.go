package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"loyalty-server/internal/domain/redemption_product"
)

// RedemptionProductRepository MySQL実装のredemption_product.Repository
type RedemptionProductRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewRedemptionProductRepository 新しいRedemptionProductRepositoryを作成
func NewRedemptionProductRepository(db *DB) *RedemptionProductRepository {
	return &RedemptionProductRepository{
		db:     db,
		tracer: otel.Tracer("redemption-product-repository"),
	}
}

const productColumns = `id, redeem_category, title, description, notice, image_url,
	status, stock, redeem_points, max_redeem_per_agent, valid_until,
	published_at, off_shelf_at, created_by, created_at, updated_at`

// FindByID IDで商品を取得
func (r *RedemptionProductRepository) FindByID(ctx context.Context, id int64) (*redemption_product.RedemptionProduct, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.product_id", id),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "redemption_products"),
	)

	query := `SELECT ` + productColumns + ` FROM redemption_products WHERE id = ?`

	product, err := r.scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "product not found")
		return nil, redemption_product.ErrProductNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	span.SetAttributes(attribute.String("db.status", product.Status().String()))
	span.SetStatus(otelcodes.Ok, "product found")
	return product, nil
}

// LockForUpdateTx 商品行を行ロック付きで取得（交換トランザクション用）
func (r *RedemptionProductRepository) LockForUpdateTx(ctx context.Context, tx *sql.Tx, id int64) (*redemption_product.RedemptionProduct, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionProductRepository.LockForUpdateTx")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.product_id", id),
		attribute.String("db.operation", "SELECT FOR UPDATE"),
		attribute.String("db.table", "redemption_products"),
	)

	query := `SELECT ` + productColumns + ` FROM redemption_products WHERE id = ? FOR UPDATE`

	product, err := r.scanProduct(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "product not found")
		return nil, redemption_product.ErrProductNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to lock product: %w", err)
	}

	span.SetAttributes(
		attribute.String("db.status", product.Status().String()),
		attribute.Int("db.stock", product.Stock()),
	)
	span.SetStatus(otelcodes.Ok, "product locked")
	return product, nil
}

// List 商品一覧を取得（status・categoryが空の場合は全件、作成日時降順）
func (r *RedemptionProductRepository) List(ctx context.Context, status redemption_product.ProductStatus, category string) ([]*redemption_product.RedemptionProduct, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionProductRepository.List")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.status", status.String()),
		attribute.String("db.category", category),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "redemption_products"),
	)

	query := `SELECT ` + productColumns + ` FROM redemption_products`
	var conds []string
	var args []interface{}
	if status != "" {
		conds = append(conds, "status = ?")
		args = append(args, status.String())
	}
	if category != "" {
		conds = append(conds, "redeem_category = ?")
		args = append(args, category)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*redemption_product.RedemptionProduct
	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	span.SetAttributes(attribute.Int("db.count", len(products)))
	span.SetStatus(otelcodes.Ok, "products listed")
	return products, nil
}

// Create 新しい商品を作成し、採番されたIDを返す
func (r *RedemptionProductRepository) Create(ctx context.Context, product *redemption_product.RedemptionProduct) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionProductRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.title", product.Title()),
		attribute.String("db.category", product.RedeemCategory()),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "redemption_products"),
	)

	query := `
		INSERT INTO redemption_products (
			redeem_category, title, description, notice, image_url,
			status, stock, redeem_points, max_redeem_per_agent, valid_until, created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		product.RedeemCategory(),
		product.Title(),
		product.Description(),
		product.Notice(),
		product.ImageURL(),
		product.Status().String(),
		product.Stock(),
		product.RedeemPoints(),
		product.MaxRedeemPerAgent(),
		product.ValidUntil(),
		product.CreatedBy(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return 0, fmt.Errorf("failed to create product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	span.SetAttributes(attribute.Int64("db.product_id", id))
	span.SetStatus(otelcodes.Ok, "product created")
	return id, nil
}

// Update 商品を部分更新（draft状態の行のみ。対象行がなければfalse）
func (r *RedemptionProductRepository) Update(ctx context.Context, id int64, fields redemption_product.UpdateFields) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionProductRepository.Update")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.product_id", id),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "redemption_products"),
	)

	var sets []string
	var args []interface{}
	if fields.RedeemCategory != nil {
		sets = append(sets, "redeem_category = ?")
		args = append(args, *fields.RedeemCategory)
	}
	if fields.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *fields.Title)
	}
	if fields.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *fields.Description)
	}
	if fields.Notice != nil {
		sets = append(sets, "notice = ?")
		args = append(args, *fields.Notice)
	}
	if fields.ImageURL != nil {
		sets = append(sets, "image_url = ?")
		args = append(args, *fields.ImageURL)
	}
	if fields.Stock != nil {
		sets = append(sets, "stock = ?")
		args = append(args, *fields.Stock)
	}
	if fields.RedeemPoints != nil {
		sets = append(sets, "redeem_points = ?")
		args = append(args, *fields.RedeemPoints)
	}
	if fields.MaxRedeemPerAgent != nil {
		sets = append(sets, "max_redeem_per_agent = ?")
		args = append(args, *fields.MaxRedeemPerAgent)
	}
	if fields.ValidUntil != nil {
		sets = append(sets, "valid_until = ?")
		args = append(args, *fields.ValidUntil)
	}
	if len(sets) == 0 {
		span.SetStatus(otelcodes.Ok, "no fields to update")
		return false, nil
	}

	query := "UPDATE redemption_products SET " + strings.Join(sets, ", ") +
		", updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = 'draft'"
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", rowsAffected))
	span.SetStatus(otelcodes.Ok, "product updated")
	return rowsAffected > 0, nil
}

// Delete 商品を削除（draft状態の行のみ。対象行がなければfalse）
func (r *RedemptionProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionProductRepository.Delete")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.product_id", id),
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.table", "redemption_products"),
	)

	query := `DELETE FROM redemption_products WHERE id = ? AND status = 'draft'`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", rowsAffected))
	span.SetStatus(otelcodes.Ok, "product deleted")
	return rowsAffected > 0, nil
}

// Publish draft状態の商品を公開（遷移できた場合はtrue）
func (r *RedemptionProductRepository) Publish(ctx context.Context, id int64) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionProductRepository.Publish")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.product_id", id),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "redemption_products"),
	)

	query := `
		UPDATE redemption_products
		SET status = 'published', published_at = CURRENT_TIMESTAMP, off_shelf_at = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'draft'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to publish product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", rowsAffected))
	span.SetStatus(otelcodes.Ok, "product published")
	return rowsAffected > 0, nil
}

// OffShelf published状態の商品を公開終了（遷移できた場合はtrue）
func (r *RedemptionProductRepository) OffShelf(ctx context.Context, id int64) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionProductRepository.OffShelf")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.product_id", id),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "redemption_products"),
	)

	query := `
		UPDATE redemption_products
		SET status = 'off_shelf', off_shelf_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'published'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to take product off shelf: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", rowsAffected))
	span.SetStatus(otelcodes.Ok, "product taken off shelf")
	return rowsAffected > 0, nil
}

// DecrementStockTx 在庫を条件付きUPDATEで1減算
// WHERE句で公開状態・在庫・有効期限を再評価するため、売り切れ間際の競合でも
// 在庫が負になることはない
func (r *RedemptionProductRepository) DecrementStockTx(ctx context.Context, tx *sql.Tx, id int64, now time.Time) error {
	ctx, span := r.tracer.Start(ctx, "RedemptionProductRepository.DecrementStockTx")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.product_id", id),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "redemption_products"),
	)

	query := `
		UPDATE redemption_products
		SET stock = stock - 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'published' AND stock > 0
			AND (valid_until IS NULL OR valid_until >= ?)
	`

	result, err := tx.ExecContext(ctx, query, id, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		span.SetStatus(otelcodes.Error, "stock not enough")
		return redemption_product.ErrOutOfStock
	}

	span.SetStatus(otelcodes.Ok, "stock decremented")
	return nil
}

func (r *RedemptionProductRepository) scanProduct(row rowScanner) (*redemption_product.RedemptionProduct, error) {
	var id, createdBy int64
	var redeemCategory, title, dbStatus string
	var description, notice, imageURL sql.NullString
	var stock, redeemPoints, maxRedeemPerAgent int
	var validUntil, publishedAt, offShelfAt sql.NullTime
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&id, &redeemCategory, &title, &description, &notice, &imageURL,
		&dbStatus, &stock, &redeemPoints, &maxRedeemPerAgent, &validUntil,
		&publishedAt, &offShelfAt, &createdBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	status, err := redemption_product.NewProductStatus(dbStatus)
	if err != nil {
		return nil, fmt.Errorf("invalid product status in database: %w", err)
	}

	return redemption_product.Reconstruct(
		id,
		redeemCategory,
		title,
		nullStringPtr(description),
		nullStringPtr(notice),
		nullStringPtr(imageURL),
		status,
		stock,
		redeemPoints,
		maxRedeemPerAgent,
		nullTimePtr(validUntil),
		nullTimePtr(publishedAt),
		nullTimePtr(offShelfAt),
		createdBy,
		createdAt,
		updatedAt,
	), nil
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}
