package point_grant

import (
	"time"
)

// GrantRequest ポイント付与リクエスト
type GrantRequest struct {
	AgentCode    string
	RuleID       int64
	Points       *int // 未指定の場合はルールの既定ポイント
	OccurredYear *int // 未指定の場合は現在の年
	Remark       *string
	CreatedBy    int64
}

// GrantResponse ポイント付与レスポンス
type GrantResponse struct {
	GrantID      int64
	AgentCode    string
	RuleID       int64
	Points       int
	OccurredYear int
	BalanceAfter int
	CreatedAt    time.Time
}

// ListGrantsRequest 付与履歴一覧取得リクエスト
type ListGrantsRequest struct {
	AgentCode string
	RuleID    int64 // 0の場合は全ルール
}

// GrantItem 付与履歴の1件
type GrantItem struct {
	GrantID      int64
	AgentCode    string
	RuleID       int64
	RuleName     string
	RuleCategory string
	Points       int
	OccurredYear int
	Remark       *string
	CreatedAt    time.Time
}

// ListGrantsResponse 付与履歴一覧取得レスポンス
type ListGrantsResponse struct {
	Grants      []*GrantItem
	Total       int
	TotalPoints int
}

// GetBalanceRequest 残高取得リクエスト
type GetBalanceRequest struct {
	AgentCode string
}

// BalanceResponse 残高レスポンス
type BalanceResponse struct {
	AgentCode     string
	CurrentPoints int
	UpdatedAt     *time.Time
}

// ListBalancesResponse 残高一覧取得レスポンス（残高降順）
type ListBalancesResponse struct {
	Balances []*BalanceResponse
	Total    int
}
