package handler

// GrantPointsRequest ポイント付与リクエスト
// @Description ポイント付与リクエスト
type GrantPointsRequest struct {
	AgentCode    string  `json:"agent_code" example:"AGT00001"`
	RuleID       int64   `json:"rule_id" example:"1"`
	Points       *int    `json:"points,omitempty" example:"100"`
	OccurredYear *int    `json:"occurred_year,omitempty" example:"2025"`
	Remark       *string `json:"remark,omitempty" example:"2025年度契約更新"`
	CreatedBy    int64   `json:"created_by" example:"10"`
}

// GrantPointsResponse ポイント付与レスポンス
// @Description ポイント付与レスポンス
type GrantPointsResponse struct {
	GrantID      int64  `json:"grant_id" example:"5"`
	AgentCode    string `json:"agent_code" example:"AGT00001"`
	RuleID       int64  `json:"rule_id" example:"1"`
	Points       int    `json:"points" example:"100"`
	OccurredYear int    `json:"occurred_year" example:"2025"`
	BalanceAfter int    `json:"balance_after" example:"600"`
	CreatedAt    string `json:"created_at" example:"2025-01-15T09:00:00+09:00"`
}

// AgentBalanceResponse 残高レスポンス
// @Description エージェント残高レスポンス
type AgentBalanceResponse struct {
	AgentCode     string  `json:"agent_code" example:"AGT00001"`
	CurrentPoints int     `json:"current_points" example:"600"`
	UpdatedAt     *string `json:"updated_at,omitempty" example:"2025-01-15T09:00:00+09:00"`
}

// ListBalancesResponse 残高一覧レスポンス
// @Description 残高一覧レスポンス（残高降順）
type ListBalancesResponse struct {
	Balances []AgentBalanceResponse `json:"balances"`
	Total    int                    `json:"total" example:"2"`
}

// GrantItem 付与履歴アイテム
// @Description 付与履歴アイテム
type GrantItem struct {
	GrantID      int64   `json:"grant_id" example:"5"`
	AgentCode    string  `json:"agent_code" example:"AGT00001"`
	RuleID       int64   `json:"rule_id" example:"1"`
	RuleName     string  `json:"rule_name" example:"年間契約更新"`
	RuleCategory string  `json:"rule_category" example:"contract"`
	Points       int     `json:"points" example:"100"`
	OccurredYear int     `json:"occurred_year" example:"2025"`
	Remark       *string `json:"remark,omitempty" example:"2025年度契約更新"`
	CreatedAt    string  `json:"created_at" example:"2025-01-15T09:00:00+09:00"`
}

// ListGrantsResponse 付与履歴一覧レスポンス
// @Description 付与履歴一覧レスポンス
type ListGrantsResponse struct {
	Grants      []GrantItem `json:"grants"`
	Total       int         `json:"total" example:"3"`
	TotalPoints int         `json:"total_points" example:"300"`
}
