package point_rule

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"loyalty-server/internal/domain/point_grant"
	"loyalty-server/internal/domain/point_rule"
	otelinfra "loyalty-server/internal/infrastructure/observability/otel"
)

// RuleApplicationService ポイントルール管理アプリケーションサービス
type RuleApplicationService struct {
	ruleRepo  point_rule.Repository
	grantRepo point_grant.Repository
	logger    *otelinfra.Logger
	metrics   *otelinfra.Metrics
	tracer    trace.Tracer
}

// NewRuleApplicationService 新しいRuleApplicationServiceを作成
func NewRuleApplicationService(
	ruleRepo point_rule.Repository,
	grantRepo point_grant.Repository,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *RuleApplicationService {
	return &RuleApplicationService{
		ruleRepo:  ruleRepo,
		grantRepo: grantRepo,
		logger:    logger,
		metrics:   metrics,
		tracer:    otel.Tracer("point-rule-service"),
	}
}

// CreateRule 新しいポイントルールを作成
func (s *RuleApplicationService) CreateRule(ctx context.Context, req *CreateRuleRequest) (*RuleResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RuleApplicationService.CreateRule")
	defer span.End()

	span.SetAttributes(
		attribute.String("rule.name", req.Name),
		attribute.String("rule.category", req.Category),
	)

	s.logger.Info(ctx, "Creating point rule", map[string]interface{}{
		"name":     req.Name,
		"category": req.Category,
	})

	rule, err := point_rule.NewPointRule(req.Name, req.Category, req.PointAmount, req.AnnualLimit, req.Standard, req.CreatedBy)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	id, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to create point rule", err, map[string]interface{}{
			"name": req.Name,
		})
		return nil, fmt.Errorf("failed to create point rule: %w", err)
	}

	created, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find created rule: %w", err)
	}

	s.logger.Info(ctx, "Point rule created successfully", map[string]interface{}{
		"rule_id": id,
	})

	return toRuleResponse(created), nil
}

// UpdateRule ポイントルールを部分更新
func (s *RuleApplicationService) UpdateRule(ctx context.Context, req *UpdateRuleRequest) (*RuleResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RuleApplicationService.UpdateRule")
	defer span.End()

	span.SetAttributes(attribute.Int64("rule.id", req.RuleID))

	s.logger.Info(ctx, "Updating point rule", map[string]interface{}{
		"rule_id": req.RuleID,
	})

	fields := point_rule.UpdateFields{
		Name:        req.Name,
		Category:    req.Category,
		PointAmount: req.PointAmount,
		AnnualLimit: req.AnnualLimit,
		Standard:    req.Standard,
	}
	if err := fields.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	if !fields.IsEmpty() {
		updated, err := s.ruleRepo.Update(ctx, req.RuleID, fields)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			s.logger.Error(ctx, "Failed to update point rule", err, map[string]interface{}{
				"rule_id": req.RuleID,
			})
			return nil, fmt.Errorf("failed to update point rule: %w", err)
		}
		if !updated {
			err := point_rule.ErrRuleNotFound
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
	}

	rule, err := s.ruleRepo.FindByID(ctx, req.RuleID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Point rule updated successfully", map[string]interface{}{
		"rule_id": req.RuleID,
	})

	return toRuleResponse(rule), nil
}

// DeleteRule ポイントルールを削除
// 付与実績のあるルールは履歴の整合性を守るため削除できない
func (s *RuleApplicationService) DeleteRule(ctx context.Context, req *DeleteRuleRequest) (*DeleteRuleResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RuleApplicationService.DeleteRule")
	defer span.End()

	span.SetAttributes(attribute.Int64("rule.id", req.RuleID))

	s.logger.Info(ctx, "Deleting point rule", map[string]interface{}{
		"rule_id": req.RuleID,
	})

	if _, err := s.ruleRepo.FindByID(ctx, req.RuleID); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	hasGrants, err := s.grantRepo.ExistsForRule(ctx, req.RuleID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to check grants for rule: %w", err)
	}
	if hasGrants {
		err := point_rule.ErrRuleHasGrants
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	deleted, err := s.ruleRepo.Delete(ctx, req.RuleID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to delete point rule", err, map[string]interface{}{
			"rule_id": req.RuleID,
		})
		return nil, fmt.Errorf("failed to delete point rule: %w", err)
	}
	if !deleted {
		err := point_rule.ErrRuleNotFound
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Point rule deleted successfully", map[string]interface{}{
		"rule_id": req.RuleID,
	})

	return &DeleteRuleResponse{
		RuleID:    req.RuleID,
		DeletedAt: time.Now(),
	}, nil
}

// GetRule ポイントルールを取得
func (s *RuleApplicationService) GetRule(ctx context.Context, req *GetRuleRequest) (*RuleResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RuleApplicationService.GetRule")
	defer span.End()

	span.SetAttributes(attribute.Int64("rule.id", req.RuleID))

	rule, err := s.ruleRepo.FindByID(ctx, req.RuleID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	return toRuleResponse(rule), nil
}

// ListRules ポイントルールの一覧を取得
func (s *RuleApplicationService) ListRules(ctx context.Context, req *ListRulesRequest) (*ListRulesResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RuleApplicationService.ListRules")
	defer span.End()

	span.SetAttributes(attribute.String("rule.category", req.Category))

	rules, err := s.ruleRepo.List(ctx, req.Category)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to list point rules", err, nil)
		return nil, fmt.Errorf("failed to list point rules: %w", err)
	}

	responses := make([]*RuleResponse, 0, len(rules))
	for _, rule := range rules {
		responses = append(responses, toRuleResponse(rule))
	}

	return &ListRulesResponse{
		Rules: responses,
		Total: len(responses),
	}, nil
}
