package redemption

import (
	"time"
)

// RedeemRequest 商品交換リクエスト
type RedeemRequest struct {
	ProductID int64
	AgentCode string
	Remark    *string
}

// RedeemResponse 商品交換レスポンス
type RedeemResponse struct {
	RecordID     int64
	ProductID    int64
	ProductTitle string
	AgentCode    string
	PointsCost   int
	BalanceAfter int
	Status       string
	RedeemedAt   time.Time
}

// ListRedemptionsRequest 交換履歴一覧取得リクエスト
type ListRedemptionsRequest struct {
	AgentCode string
	ProductID int64 // 0の場合は全商品
}

// RedemptionItem 交換履歴の1件
type RedemptionItem struct {
	RecordID       int64
	ProductID      int64
	ProductTitle   string
	RedeemCategory string
	AgentCode      string
	PointsCost     int
	Status         string
	Remark         *string
	RedeemedAt     time.Time
}

// ListRedemptionsResponse 交換履歴一覧取得レスポンス
type ListRedemptionsResponse struct {
	Redemptions []*RedemptionItem
	Total       int
	TotalCost   int
}
