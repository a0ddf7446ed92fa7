package point_grant

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
	"loyalty-server/internal/domain/point_rule"
	"loyalty-server/internal/domain/transaction"
	otelinfra "loyalty-server/internal/infrastructure/observability/otel"
)

// GrantApplicationService ポイント付与アプリケーションサービス
type GrantApplicationService struct {
	ruleRepo    point_rule.Repository
	grantRepo   point_grant.Repository
	balanceRepo agent.BalanceRepository
	txManager   transaction.TransactionManager
	logger      *otelinfra.Logger
	metrics     *otelinfra.Metrics
	tracer      trace.Tracer
}

// NewGrantApplicationService 新しいGrantApplicationServiceを作成
func NewGrantApplicationService(
	ruleRepo point_rule.Repository,
	grantRepo point_grant.Repository,
	balanceRepo agent.BalanceRepository,
	txManager transaction.TransactionManager,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *GrantApplicationService {
	return &GrantApplicationService{
		ruleRepo:    ruleRepo,
		grantRepo:   grantRepo,
		balanceRepo: balanceRepo,
		txManager:   txManager,
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer("point-grant-service"),
	}
}

// Grant ポイントを付与する
// 付与レコードの追記と残高の加算を1トランザクションで行い、
// 残高行ロックで同一エージェントへの同時付与を直列化する
func (s *GrantApplicationService) Grant(ctx context.Context, req *GrantRequest) (*GrantResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GrantApplicationService.Grant")
	defer span.End()

	span.SetAttributes(
		attribute.String("agent_code", req.AgentCode),
		attribute.Int64("rule_id", req.RuleID),
	)

	s.logger.Info(ctx, "Granting points", map[string]interface{}{
		"agent_code": req.AgentCode,
		"rule_id":    req.RuleID,
	})

	agentCode, err := agent.NewCode(req.AgentCode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	rule, err := s.ruleRepo.FindByID(ctx, req.RuleID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	points, err := rule.ResolvePoints(req.Points)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	occurredYear := time.Now().Year()
	if req.OccurredYear != nil {
		occurredYear = *req.OccurredYear
	}

	grant, err := point_grant.NewPointGrant(agentCode, rule.ID(), points, occurredYear, req.Remark, req.CreatedBy)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	var result *GrantResponse

	err = s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		// 残高行を用意して行ロックを取得（同一エージェントの付与・交換を直列化）
		if err := s.balanceRepo.EnsureRowTx(ctx, tx, agentCode); err != nil {
			return err
		}
		balance, err := s.balanceRepo.LockForUpdateTx(ctx, tx, agentCode)
		if err != nil {
			return err
		}

		// 行ロック下で年間上限を再評価
		if rule.HasAnnualLimit() {
			count, err := s.grantRepo.CountByAgentRuleYearTx(ctx, tx, agentCode, rule.ID(), occurredYear)
			if err != nil {
				return err
			}
			if count >= *rule.AnnualLimit() {
				return point_grant.ErrAnnualLimitReached
			}
		}

		grantID, err := s.grantRepo.SaveTx(ctx, tx, grant)
		if err != nil {
			return err
		}

		if err := s.balanceRepo.AddPointsTx(ctx, tx, agentCode, points); err != nil {
			return err
		}

		balanceAfter := balance.CurrentPoints() + points

		result = &GrantResponse{
			GrantID:      grantID,
			AgentCode:    agentCode.String(),
			RuleID:       rule.ID(),
			Points:       points,
			OccurredYear: occurredYear,
			BalanceAfter: balanceAfter,
			CreatedAt:    grant.CreatedAt(),
		}
		return nil
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to grant points", err, map[string]interface{}{
			"agent_code": req.AgentCode,
			"rule_id":    req.RuleID,
		})
		s.metrics.RecordError(ctx, "point_grant_failed")
		return nil, err
	}

	// コミット成功後にのみ計上する
	s.metrics.RecordGrant(ctx, rule.Category(), points)
	s.metrics.RecordAgentBalance(ctx, agentCode.String(), int64(result.BalanceAfter))

	s.logger.Info(ctx, "Points granted successfully", map[string]interface{}{
		"agent_code": req.AgentCode,
		"rule_id":    req.RuleID,
		"grant_id":   result.GrantID,
		"points":     points,
	})

	return result, nil
}

// ListGrants エージェントの付与履歴を取得
func (s *GrantApplicationService) ListGrants(ctx context.Context, req *ListGrantsRequest) (*ListGrantsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GrantApplicationService.ListGrants")
	defer span.End()

	span.SetAttributes(
		attribute.String("agent_code", req.AgentCode),
		attribute.Int64("rule_id", req.RuleID),
	)

	agentCode, err := agent.NewCode(req.AgentCode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	details, totalPoints, err := s.grantRepo.ListByAgent(ctx, agentCode, req.RuleID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to list grants", err, map[string]interface{}{
			"agent_code": req.AgentCode,
		})
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}

	items := make([]*GrantItem, 0, len(details))
	for _, d := range details {
		items = append(items, &GrantItem{
			GrantID:      d.Grant.ID(),
			AgentCode:    d.Grant.AgentCode().String(),
			RuleID:       d.Grant.RuleID(),
			RuleName:     d.RuleName,
			RuleCategory: d.RuleCategory,
			Points:       d.Grant.Points(),
			OccurredYear: d.Grant.OccurredYear(),
			Remark:       d.Grant.Remark(),
			CreatedAt:    d.Grant.CreatedAt(),
		})
	}

	return &ListGrantsResponse{
		Grants:      items,
		Total:       len(items),
		TotalPoints: totalPoints,
	}, nil
}

// GetBalance エージェントの残高を取得（残高行がない場合は0ポイント）
func (s *GrantApplicationService) GetBalance(ctx context.Context, req *GetBalanceRequest) (*BalanceResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GrantApplicationService.GetBalance")
	defer span.End()

	span.SetAttributes(attribute.String("agent_code", req.AgentCode))

	agentCode, err := agent.NewCode(req.AgentCode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	balance, err := s.balanceRepo.FindByAgentCode(ctx, agentCode)
	if err != nil {
		if err == agent.ErrBalanceNotFound {
			// 付与実績のないエージェントは残高0として扱う
			return &BalanceResponse{
				AgentCode:     agentCode.String(),
				CurrentPoints: 0,
			}, nil
		}
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find balance: %w", err)
	}

	updatedAt := balance.UpdatedAt()
	return &BalanceResponse{
		AgentCode:     balance.AgentCode().String(),
		CurrentPoints: balance.CurrentPoints(),
		UpdatedAt:     &updatedAt,
	}, nil
}

// ListBalances 全エージェントの残高一覧を取得（残高降順）
func (s *GrantApplicationService) ListBalances(ctx context.Context) (*ListBalancesResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GrantApplicationService.ListBalances")
	defer span.End()

	balances, err := s.balanceRepo.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to list balances", err, nil)
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}

	responses := make([]*BalanceResponse, 0, len(balances))
	for _, b := range balances {
		updatedAt := b.UpdatedAt()
		responses = append(responses, &BalanceResponse{
			AgentCode:     b.AgentCode().String(),
			CurrentPoints: b.CurrentPoints(),
			UpdatedAt:     &updatedAt,
		})
	}

	return &ListBalancesResponse{
		Balances: responses,
		Total:    len(responses),
	}, nil
}
