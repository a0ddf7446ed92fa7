package redemption_product

import "errors"

var (
	// ErrProductNotFound 商品が見つからないエラー
	ErrProductNotFound = errors.New("redemption product not found")
	// ErrProductNotDraft 下書き以外の商品は編集・削除不可
	ErrProductNotDraft = errors.New("only draft products can be modified")
	// ErrProductNotPublished 公開中以外の商品は交換不可
	ErrProductNotPublished = errors.New("redemption product is not published")
	// ErrProductExpired 商品の有効期限切れ
	ErrProductExpired = errors.New("redemption product is expired")
	// ErrOutOfStock 在庫切れ（条件付きUPDATEが0行）
	ErrOutOfStock = errors.New("stock not enough")
	// ErrInvalidTitle タイトルが無効
	ErrInvalidTitle = errors.New("invalid product title")
	// ErrInvalidCategory カテゴリが無効
	ErrInvalidCategory = errors.New("invalid redeem category")
	// ErrInvalidStock 在庫数が無効
	ErrInvalidStock = errors.New("stock cannot be negative")
	// ErrInvalidRedeemPoints 交換ポイントが無効
	ErrInvalidRedeemPoints = errors.New("redeem points must be a positive number")
	// ErrInvalidMaxRedeem 1人あたり交換上限が無効
	ErrInvalidMaxRedeem = errors.New("max redeem per agent must be a positive number")
	// ErrInvalidValidUntil 有効期限が無効
	ErrInvalidValidUntil = errors.New("valid until must be in the future")
)
