package handler

import (
	"time"
)

// CreateProductRequest 商品作成リクエスト
// @Description 商品作成リクエスト
type CreateProductRequest struct {
	RedeemCategory    string     `json:"redeem_category" example:"gift"`
	Title             string     `json:"title" example:"ギフトカード5000円分"`
	Description       *string    `json:"description,omitempty" example:"全国の加盟店で利用できます"`
	Notice            *string    `json:"notice,omitempty" example:"発送まで2週間程度かかります"`
	ImageURL          *string    `json:"image_url,omitempty" example:"https://example.com/gift.png"`
	Stock             int        `json:"stock" example:"50"`
	RedeemPoints      int        `json:"redeem_points" example:"500"`
	MaxRedeemPerAgent *int       `json:"max_redeem_per_agent,omitempty" example:"2"`
	ValidUntil        *time.Time `json:"valid_until,omitempty" example:"2025-12-31T23:59:59+09:00"`
	CreatedBy         int64      `json:"created_by" example:"10"`
}

// UpdateProductRequest 商品更新リクエスト
// @Description 商品更新リクエスト（指定したフィールドのみ更新、draft状態のみ）
type UpdateProductRequest struct {
	RedeemCategory    *string    `json:"redeem_category,omitempty" example:"gift"`
	Title             *string    `json:"title,omitempty" example:"ギフトカード5000円分"`
	Description       *string    `json:"description,omitempty" example:"全国の加盟店で利用できます"`
	Notice            *string    `json:"notice,omitempty" example:"発送まで2週間程度かかります"`
	ImageURL          *string    `json:"image_url,omitempty" example:"https://example.com/gift.png"`
	Stock             *int       `json:"stock,omitempty" example:"100"`
	RedeemPoints      *int       `json:"redeem_points,omitempty" example:"450"`
	MaxRedeemPerAgent *int       `json:"max_redeem_per_agent,omitempty" example:"3"`
	ValidUntil        *time.Time `json:"valid_until,omitempty" example:"2025-12-31T23:59:59+09:00"`
}

// ProductResponse 商品レスポンス
// @Description 交換商品レスポンス
type ProductResponse struct {
	ProductID         int64   `json:"product_id" example:"1"`
	RedeemCategory    string  `json:"redeem_category" example:"gift"`
	Title             string  `json:"title" example:"ギフトカード5000円分"`
	Description       *string `json:"description,omitempty" example:"全国の加盟店で利用できます"`
	Notice            *string `json:"notice,omitempty" example:"発送まで2週間程度かかります"`
	ImageURL          *string `json:"image_url,omitempty" example:"https://example.com/gift.png"`
	Status            string  `json:"status" example:"published" enums:"draft,published,off_shelf"`
	Stock             int     `json:"stock" example:"50"`
	RedeemPoints      int     `json:"redeem_points" example:"500"`
	MaxRedeemPerAgent int     `json:"max_redeem_per_agent" example:"2"`
	ValidUntil        *string `json:"valid_until,omitempty" example:"2025-12-31T23:59:59+09:00"`
	PublishedAt       *string `json:"published_at,omitempty" example:"2025-01-15T09:00:00+09:00"`
	OffShelfAt        *string `json:"off_shelf_at,omitempty" example:"2025-06-30T18:00:00+09:00"`
	CreatedBy         int64   `json:"created_by" example:"10"`
	CreatedAt         string  `json:"created_at" example:"2025-01-15T09:00:00+09:00"`
	UpdatedAt         string  `json:"updated_at" example:"2025-01-15T09:00:00+09:00"`
}

// DeleteProductResponse 商品削除レスポンス
// @Description 商品削除レスポンス
type DeleteProductResponse struct {
	ProductID int64  `json:"product_id" example:"1"`
	DeletedAt string `json:"deleted_at" example:"2025-01-15T09:00:00+09:00"`
}

// ListProductsResponse 商品一覧レスポンス
// @Description 商品一覧レスポンス
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total" example:"2"`
}
