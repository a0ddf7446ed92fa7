package handler

// RedeemRequest 商品交換リクエスト
// @Description 商品交換リクエスト
type RedeemRequest struct {
	ProductID int64   `json:"product_id" example:"1"`
	Remark    *string `json:"remark,omitempty" example:"景品交換"`
}

// RedeemResponse 商品交換レスポンス
// @Description 商品交換レスポンス
type RedeemResponse struct {
	RecordID     int64  `json:"record_id" example:"3"`
	ProductID    int64  `json:"product_id" example:"1"`
	ProductTitle string `json:"product_title" example:"ギフトカード5000円分"`
	AgentCode    string `json:"agent_code" example:"AGT00001"`
	PointsCost   int    `json:"points_cost" example:"500"`
	BalanceAfter int    `json:"balance_after" example:"300"`
	Status       string `json:"status" example:"success"`
	RedeemedAt   string `json:"redeemed_at" example:"2025-01-15T09:00:00+09:00"`
}

// RedemptionItem 交換履歴アイテム
// @Description 交換履歴アイテム
type RedemptionItem struct {
	RecordID       int64   `json:"record_id" example:"3"`
	ProductID      int64   `json:"product_id" example:"1"`
	ProductTitle   string  `json:"product_title" example:"ギフトカード5000円分"`
	RedeemCategory string  `json:"redeem_category" example:"gift"`
	AgentCode      string  `json:"agent_code" example:"AGT00001"`
	PointsCost     int     `json:"points_cost" example:"500"`
	Status         string  `json:"status" example:"success" enums:"success,cancelled"`
	Remark         *string `json:"remark,omitempty" example:"景品交換"`
	RedeemedAt     string  `json:"redeemed_at" example:"2025-01-15T09:00:00+09:00"`
}

// ListRedemptionsResponse 交換履歴一覧レスポンス
// @Description 交換履歴一覧レスポンス
type ListRedemptionsResponse struct {
	Redemptions []RedemptionItem `json:"redemptions"`
	Total       int              `json:"total" example:"1"`
	TotalCost   int              `json:"total_cost" example:"500"`
}
