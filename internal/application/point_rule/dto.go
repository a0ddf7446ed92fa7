package point_rule

import (
	"time"

	"loyalty-server/internal/domain/point_rule"
)

// CreateRuleRequest ルール作成リクエスト
type CreateRuleRequest struct {
	Name        string
	Category    string
	PointAmount *int
	AnnualLimit *int
	Standard    point_rule.Standard
	CreatedBy   int64
}

// UpdateRuleRequest ルール更新リクエスト
type UpdateRuleRequest struct {
	RuleID      int64
	Name        *string
	Category    *string
	PointAmount *int
	AnnualLimit *int
	Standard    point_rule.Standard
}

// DeleteRuleRequest ルール削除リクエスト
type DeleteRuleRequest struct {
	RuleID int64
}

// DeleteRuleResponse ルール削除レスポンス
type DeleteRuleResponse struct {
	RuleID    int64
	DeletedAt time.Time
}

// GetRuleRequest ルール取得リクエスト
type GetRuleRequest struct {
	RuleID int64
}

// ListRulesRequest ルール一覧取得リクエスト
type ListRulesRequest struct {
	Category string // optional
}

// RuleResponse ルールレスポンス
type RuleResponse struct {
	RuleID      int64
	Name        string
	Category    string
	PointAmount *int
	AnnualLimit *int
	Standard    point_rule.Standard
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListRulesResponse ルール一覧取得レスポンス
type ListRulesResponse struct {
	Rules []*RuleResponse
	Total int
}

func toRuleResponse(rule *point_rule.PointRule) *RuleResponse {
	return &RuleResponse{
		RuleID:      rule.ID(),
		Name:        rule.Name(),
		Category:    rule.Category(),
		PointAmount: rule.PointAmount(),
		AnnualLimit: rule.AnnualLimit(),
		Standard:    rule.Standard(),
		CreatedBy:   rule.CreatedBy(),
		CreatedAt:   rule.CreatedAt(),
		UpdatedAt:   rule.UpdatedAt(),
	}
}
