package redemption_catalog

import (
	"time"
)

// CreateProductRequest 商品作成リクエスト
// MaxRedeemPerAgentが未指定の場合は1件として扱う
type CreateProductRequest struct {
	RedeemCategory    string
	Title             string
	Description       *string
	Notice            *string
	ImageURL          *string
	Stock             int
	RedeemPoints      int
	MaxRedeemPerAgent *int
	ValidUntil        *time.Time
	CreatedBy         int64
}

// UpdateProductRequest 商品更新リクエスト（draft状態のみ）
type UpdateProductRequest struct {
	ProductID         int64
	RedeemCategory    *string
	Title             *string
	Description       *string
	Notice            *string
	ImageURL          *string
	Stock             *int
	RedeemPoints      *int
	MaxRedeemPerAgent *int
	ValidUntil        *time.Time
}

// DeleteProductRequest 商品削除リクエスト
type DeleteProductRequest struct {
	ProductID int64
}

// DeleteProductResponse 商品削除レスポンス
type DeleteProductResponse struct {
	ProductID int64
	DeletedAt time.Time
}

// PublishProductRequest 商品公開リクエスト
type PublishProductRequest struct {
	ProductID int64
}

// OffShelfProductRequest 商品公開終了リクエスト
type OffShelfProductRequest struct {
	ProductID int64
}

// GetProductRequest 商品取得リクエスト
type GetProductRequest struct {
	ProductID int64
}

// ListProductsRequest 商品一覧取得リクエスト
type ListProductsRequest struct {
	Status   string // optional: "draft", "published", "off_shelf"
	Category string // optional
}

// ProductResponse 商品レスポンス
type ProductResponse struct {
	ProductID         int64
	RedeemCategory    string
	Title             string
	Description       *string
	Notice            *string
	ImageURL          *string
	Status            string
	Stock             int
	RedeemPoints      int
	MaxRedeemPerAgent int
	ValidUntil        *time.Time
	PublishedAt       *time.Time
	OffShelfAt        *time.Time
	CreatedBy         int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ListProductsResponse 商品一覧取得レスポンス
type ListProductsResponse struct {
	Products []*ProductResponse
	Total    int
}
