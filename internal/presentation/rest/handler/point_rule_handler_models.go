package handler

import (
	"loyalty-server/internal/domain/point_rule"
)

// ErrorResponse エラーレスポンス
// @Description エラーレスポンス
type ErrorResponse struct {
	Error   string `json:"error" example:"rule_not_found"`
	Message string `json:"message" example:"point rule not found"`
}

// CreateRuleRequest ルール作成リクエスト
// @Description ルール作成リクエスト
type CreateRuleRequest struct {
	Name        string              `json:"name" example:"年間契約更新"`
	Category    string              `json:"category" example:"contract"`
	PointAmount *int                `json:"point_amount,omitempty" example:"100"`
	AnnualLimit *int                `json:"annual_limit,omitempty" example:"1"`
	Standard    point_rule.Standard `json:"standard,omitempty"`
	CreatedBy   int64               `json:"created_by" example:"10"`
}

// UpdateRuleRequest ルール更新リクエスト
// @Description ルール更新リクエスト（指定したフィールドのみ更新）
type UpdateRuleRequest struct {
	Name        *string             `json:"name,omitempty" example:"年間契約更新"`
	Category    *string             `json:"category,omitempty" example:"contract"`
	PointAmount *int                `json:"point_amount,omitempty" example:"150"`
	AnnualLimit *int                `json:"annual_limit,omitempty" example:"2"`
	Standard    point_rule.Standard `json:"standard,omitempty"`
}

// RuleResponse ルールレスポンス
// @Description ルールレスポンス
type RuleResponse struct {
	RuleID      int64               `json:"rule_id" example:"1"`
	Name        string              `json:"name" example:"年間契約更新"`
	Category    string              `json:"category" example:"contract"`
	PointAmount *int                `json:"point_amount,omitempty" example:"100"`
	AnnualLimit *int                `json:"annual_limit,omitempty" example:"1"`
	Standard    point_rule.Standard `json:"standard,omitempty"`
	CreatedBy   int64               `json:"created_by" example:"10"`
	CreatedAt   string              `json:"created_at" example:"2025-01-15T09:00:00+09:00"`
	UpdatedAt   string              `json:"updated_at" example:"2025-01-15T09:00:00+09:00"`
}

// DeleteRuleResponse ルール削除レスポンス
// @Description ルール削除レスポンス
type DeleteRuleResponse struct {
	RuleID    int64  `json:"rule_id" example:"1"`
	DeletedAt string `json:"deleted_at" example:"2025-01-15T09:00:00+09:00"`
}

// ListRulesResponse ルール一覧レスポンス
// @Description ルール一覧レスポンス
type ListRulesResponse struct {
	Rules []RuleResponse `json:"rules"`
	Total int            `json:"total" example:"2"`
}
