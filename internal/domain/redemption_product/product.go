package redemption_product

import (
	"time"
)

// RedemptionProduct 交換商品エンティティ
// 編集・削除はdraft状態のみ許可、published以降は在庫・ステータス以外不変
type RedemptionProduct struct {
	id                int64
	redeemCategory    string
	title             string
	description       *string
	notice            *string
	imageURL          *string
	status            ProductStatus
	stock             int
	redeemPoints      int
	maxRedeemPerAgent int
	validUntil        *time.Time
	publishedAt       *time.Time
	offShelfAt        *time.Time
	createdBy         int64
	createdAt         time.Time
	updatedAt         time.Time
}

// NewRedemptionProduct 新しいRedemptionProductエンティティを作成（ステータスはdraft固定）
func NewRedemptionProduct(
	redeemCategory string,
	title string,
	description *string,
	notice *string,
	imageURL *string,
	stock int,
	redeemPoints int,
	maxRedeemPerAgent int,
	validUntil *time.Time,
	createdBy int64,
) (*RedemptionProduct, error) {
	if redeemCategory == "" {
		return nil, ErrInvalidCategory
	}
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}
	if redeemPoints <= 0 {
		return nil, ErrInvalidRedeemPoints
	}
	if maxRedeemPerAgent <= 0 {
		return nil, ErrInvalidMaxRedeem
	}
	if validUntil != nil && !validUntil.After(time.Now()) {
		return nil, ErrInvalidValidUntil
	}

	now := time.Now()
	return &RedemptionProduct{
		redeemCategory:    redeemCategory,
		title:             title,
		description:       description,
		notice:            notice,
		imageURL:          imageURL,
		status:            ProductStatusDraft,
		stock:             stock,
		redeemPoints:      redeemPoints,
		maxRedeemPerAgent: maxRedeemPerAgent,
		validUntil:        validUntil,
		createdBy:         createdBy,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// Reconstruct 永続化済みの行からRedemptionProductエンティティを復元（リポジトリ用）
func Reconstruct(
	id int64,
	redeemCategory string,
	title string,
	description *string,
	notice *string,
	imageURL *string,
	status ProductStatus,
	stock int,
	redeemPoints int,
	maxRedeemPerAgent int,
	validUntil *time.Time,
	publishedAt *time.Time,
	offShelfAt *time.Time,
	createdBy int64,
	createdAt time.Time,
	updatedAt time.Time,
) *RedemptionProduct {
	return &RedemptionProduct{
		id:                id,
		redeemCategory:    redeemCategory,
		title:             title,
		description:       description,
		notice:            notice,
		imageURL:          imageURL,
		status:            status,
		stock:             stock,
		redeemPoints:      redeemPoints,
		maxRedeemPerAgent: maxRedeemPerAgent,
		validUntil:        validUntil,
		publishedAt:       publishedAt,
		offShelfAt:        offShelfAt,
		createdBy:         createdBy,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// ID 商品IDを返す
func (p *RedemptionProduct) ID() int64 {
	return p.id
}

// RedeemCategory 交換カテゴリを返す
func (p *RedemptionProduct) RedeemCategory() string {
	return p.redeemCategory
}

// Title タイトルを返す
func (p *RedemptionProduct) Title() string {
	return p.title
}

// Description 説明を返す
func (p *RedemptionProduct) Description() *string {
	return p.description
}

// Notice 注意事項を返す
func (p *RedemptionProduct) Notice() *string {
	return p.notice
}

// ImageURL 画像URLを返す
func (p *RedemptionProduct) ImageURL() *string {
	return p.imageURL
}

// Status ステータスを返す
func (p *RedemptionProduct) Status() ProductStatus {
	return p.status
}

// Stock 在庫数を返す
func (p *RedemptionProduct) Stock() int {
	return p.stock
}

// RedeemPoints 交換に必要なポイントを返す
func (p *RedemptionProduct) RedeemPoints() int {
	return p.redeemPoints
}

// MaxRedeemPerAgent 1エージェントあたりの交換上限を返す
func (p *RedemptionProduct) MaxRedeemPerAgent() int {
	return p.maxRedeemPerAgent
}

// ValidUntil 有効期限を返す
func (p *RedemptionProduct) ValidUntil() *time.Time {
	return p.validUntil
}

// PublishedAt 公開日時を返す
func (p *RedemptionProduct) PublishedAt() *time.Time {
	return p.publishedAt
}

// OffShelfAt 公開終了日時を返す
func (p *RedemptionProduct) OffShelfAt() *time.Time {
	return p.offShelfAt
}

// CreatedBy 作成者IDを返す
func (p *RedemptionProduct) CreatedBy() int64 {
	return p.createdBy
}

// CreatedAt 作成日時を返す
func (p *RedemptionProduct) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt 更新日時を返す
func (p *RedemptionProduct) UpdatedAt() time.Time {
	return p.updatedAt
}

// IsExpired 指定時刻時点で有効期限切れかどうかを返す（期限なしは常にfalse）
func (p *RedemptionProduct) IsExpired(now time.Time) bool {
	return p.validUntil != nil && p.validUntil.Before(now)
}

// UpdateFields 部分更新フィールド（nilのフィールドは更新しない）
type UpdateFields struct {
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

// Validate 部分更新フィールドを検証
func (f UpdateFields) Validate() error {
	if f.RedeemCategory != nil && *f.RedeemCategory == "" {
		return ErrInvalidCategory
	}
	if f.Title != nil && *f.Title == "" {
		return ErrInvalidTitle
	}
	if f.Stock != nil && *f.Stock < 0 {
		return ErrInvalidStock
	}
	if f.RedeemPoints != nil && *f.RedeemPoints <= 0 {
		return ErrInvalidRedeemPoints
	}
	if f.MaxRedeemPerAgent != nil && *f.MaxRedeemPerAgent <= 0 {
		return ErrInvalidMaxRedeem
	}
	if f.ValidUntil != nil && !f.ValidUntil.After(time.Now()) {
		return ErrInvalidValidUntil
	}
	return nil
}

// IsEmpty 更新対象フィールドが1つもないかどうかを返す
func (f UpdateFields) IsEmpty() bool {
	return f.RedeemCategory == nil && f.Title == nil && f.Description == nil &&
		f.Notice == nil && f.ImageURL == nil && f.Stock == nil &&
		f.RedeemPoints == nil && f.MaxRedeemPerAgent == nil && f.ValidUntil == nil
}

// MustNewRedemptionProduct テスト用ヘルパー: NewRedemptionProductを呼び出し、エラーが発生した場合はpanicする
func MustNewRedemptionProduct(
	redeemCategory string,
	title string,
	stock int,
	redeemPoints int,
	maxRedeemPerAgent int,
	validUntil *time.Time,
	createdBy int64,
) *RedemptionProduct {
	p, err := NewRedemptionProduct(redeemCategory, title, nil, nil, nil, stock, redeemPoints, maxRedeemPerAgent, validUntil, createdBy)
	if err != nil {
		panic(err)
	}
	return p
}
