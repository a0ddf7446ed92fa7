package redemption_product

import (
	"fmt"
)

// ProductStatus 交換商品のステータスを表す値オブジェクト
// 遷移は draft → published → off_shelf の一方向のみ（off_shelfは終端）
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"     // 下書き
	ProductStatusPublished ProductStatus = "published" // 公開中
	ProductStatusOffShelf  ProductStatus = "off_shelf" // 公開終了
)

// NewProductStatus 新しいProductStatusを作成
func NewProductStatus(s string) (ProductStatus, error) {
	switch s {
	case "draft", "published", "off_shelf":
		return ProductStatus(s), nil
	default:
		return "", fmt.Errorf("invalid product status: %s", s)
	}
}

// String 文字列表現を返す
func (ps ProductStatus) String() string {
	return string(ps)
}

// Valid 有効なステータスかどうかを返す
func (ps ProductStatus) Valid() bool {
	switch ps {
	case ProductStatusDraft, ProductStatusPublished, ProductStatusOffShelf:
		return true
	default:
		return false
	}
}

// IsDraft 下書き状態かどうかを返す
func (ps ProductStatus) IsDraft() bool {
	return ps == ProductStatusDraft
}

// IsPublished 公開中かどうかを返す
func (ps ProductStatus) IsPublished() bool {
	return ps == ProductStatusPublished
}
