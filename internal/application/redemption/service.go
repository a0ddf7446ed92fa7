package redemption

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
	"loyalty-server/internal/domain/redemption_product"
	"loyalty-server/internal/domain/redemption_record"
	"loyalty-server/internal/domain/transaction"
	otelinfra "loyalty-server/internal/infrastructure/observability/otel"
)

// RedemptionApplicationService 商品交換アプリケーションサービス
type RedemptionApplicationService struct {
	productRepo redemption_product.Repository
	recordRepo  redemption_record.Repository
	balanceRepo agent.BalanceRepository
	txManager   transaction.TransactionManager
	logger      *otelinfra.Logger
	metrics     *otelinfra.Metrics
	tracer      trace.Tracer
}

// NewRedemptionApplicationService 新しいRedemptionApplicationServiceを作成
func NewRedemptionApplicationService(
	productRepo redemption_product.Repository,
	recordRepo redemption_record.Repository,
	balanceRepo agent.BalanceRepository,
	txManager transaction.TransactionManager,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *RedemptionApplicationService {
	return &RedemptionApplicationService{
		productRepo: productRepo,
		recordRepo:  recordRepo,
		balanceRepo: balanceRepo,
		txManager:   txManager,
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer("redemption-service"),
	}
}

// Redeem 商品を交換する
// 在庫減算・残高減算・履歴追記を1トランザクションで行う。
// 商品行と残高行のロックを取得してからすべての上限を再評価し、
// 最後の1個・最後のポイントを巡る競合でもちょうど1件だけが成功する
func (s *RedemptionApplicationService) Redeem(ctx context.Context, req *RedeemRequest) (*RedeemResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RedemptionApplicationService.Redeem")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("product_id", req.ProductID),
		attribute.String("agent_code", req.AgentCode),
	)

	s.logger.Info(ctx, "Redeeming product", map[string]interface{}{
		"product_id": req.ProductID,
		"agent_code": req.AgentCode,
	})

	agentCode, err := agent.NewCode(req.AgentCode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	var result *RedeemResponse
	var redeemCategory string

	err = s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		now := time.Now()

		// 商品行ロックを取得し、最新の状態で公開・期限を確認
		product, err := s.productRepo.LockForUpdateTx(ctx, tx, req.ProductID)
		if err != nil {
			return err
		}
		if !product.Status().IsPublished() {
			return redemption_product.ErrProductNotPublished
		}
		if product.IsExpired(now) {
			return redemption_product.ErrProductExpired
		}

		// 残高行ロックを取得（同一エージェントの交換を直列化）
		// 残高行がない = 付与実績なし = 残高0
		balance, err := s.balanceRepo.LockForUpdateTx(ctx, tx, agentCode)
		if err != nil {
			if err == agent.ErrBalanceNotFound {
				return agent.ErrInsufficientBalance
			}
			return err
		}

		// 行ロック下で交換上限を再評価
		count, err := s.recordRepo.CountSuccessByProductAgentTx(ctx, tx, product.ID(), agentCode)
		if err != nil {
			return err
		}
		if count >= product.MaxRedeemPerAgent() {
			return redemption_record.ErrRedeemLimitReached
		}

		if !balance.CanAfford(product.RedeemPoints()) {
			return agent.ErrInsufficientBalance
		}

		// 条件付きUPDATEで在庫と残高を確定（WHERE述語が最終判定）
		if err := s.productRepo.DecrementStockTx(ctx, tx, product.ID(), now); err != nil {
			return err
		}
		if err := s.balanceRepo.DeductPointsTx(ctx, tx, agentCode, product.RedeemPoints()); err != nil {
			return err
		}

		record, err := redemption_record.NewRedemptionRecord(product.ID(), agentCode, product.RedeemPoints(), req.Remark)
		if err != nil {
			return err
		}
		recordID, err := s.recordRepo.SaveTx(ctx, tx, record)
		if err != nil {
			return err
		}

		balanceAfter := balance.CurrentPoints() - product.RedeemPoints()
		redeemCategory = product.RedeemCategory()

		result = &RedeemResponse{
			RecordID:     recordID,
			ProductID:    product.ID(),
			ProductTitle: product.Title(),
			AgentCode:    agentCode.String(),
			PointsCost:   product.RedeemPoints(),
			BalanceAfter: balanceAfter,
			Status:       record.Status().String(),
			RedeemedAt:   record.RedeemedAt(),
		}
		return nil
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to redeem product", err, map[string]interface{}{
			"product_id": req.ProductID,
			"agent_code": req.AgentCode,
		})
		s.metrics.RecordError(ctx, "redemption_failed")
		return nil, err
	}

	// コミット成功後にのみ計上する
	s.metrics.RecordRedemption(ctx, redeemCategory, result.PointsCost)
	s.metrics.RecordAgentBalance(ctx, agentCode.String(), int64(result.BalanceAfter))

	s.logger.Info(ctx, "Product redeemed successfully", map[string]interface{}{
		"product_id": req.ProductID,
		"agent_code": req.AgentCode,
		"record_id":  result.RecordID,
	})

	return result, nil
}

// ListRedemptions エージェントの交換履歴を取得
func (s *RedemptionApplicationService) ListRedemptions(ctx context.Context, req *ListRedemptionsRequest) (*ListRedemptionsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RedemptionApplicationService.ListRedemptions")
	defer span.End()

	span.SetAttributes(
		attribute.String("agent_code", req.AgentCode),
		attribute.Int64("product_id", req.ProductID),
	)

	agentCode, err := agent.NewCode(req.AgentCode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	details, totalCost, err := s.recordRepo.ListByAgent(ctx, agentCode, req.ProductID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to list redemptions", err, map[string]interface{}{
			"agent_code": req.AgentCode,
		})
		return nil, fmt.Errorf("failed to list redemptions: %w", err)
	}

	items := make([]*RedemptionItem, 0, len(details))
	for _, d := range details {
		items = append(items, &RedemptionItem{
			RecordID:       d.Record.ID(),
			ProductID:      d.Record.ProductID(),
			ProductTitle:   d.ProductTitle,
			RedeemCategory: d.RedeemCategory,
			AgentCode:      d.Record.AgentCode().String(),
			PointsCost:     d.Record.PointsCost(),
			Status:         d.Record.Status().String(),
			Remark:         d.Record.Remark(),
			RedeemedAt:     d.Record.RedeemedAt(),
		})
	}

	return &ListRedemptionsResponse{
		Redemptions: items,
		Total:       len(items),
		TotalCost:   totalCost,
	}, nil
}
