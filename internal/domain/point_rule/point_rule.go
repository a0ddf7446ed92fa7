package point_rule

import (
	"time"
)

// Standard 付与基準の自由形式ドキュメント（JSON）
type Standard map[string]interface{}

// PointRule ポイント付与ルールエンティティ
type PointRule struct {
	id          int64
	name        string
	category    string
	pointAmount *int // 既定付与ポイント（nil = 付与時に必ず指定）
	annualLimit *int // 年間付与回数上限（nilまたは負数 = 無制限）
	standard    Standard
	createdBy   int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPointRule 新しいPointRuleエンティティを作成
func NewPointRule(
	name string,
	category string,
	pointAmount *int,
	annualLimit *int,
	standard Standard,
	createdBy int64,
) (*PointRule, error) {
	if name == "" {
		return nil, ErrInvalidRuleName
	}
	if category == "" {
		return nil, ErrInvalidRuleCategory
	}
	if pointAmount != nil && *pointAmount <= 0 {
		return nil, ErrInvalidPointAmount
	}
	if annualLimit != nil && *annualLimit <= 0 {
		return nil, ErrInvalidAnnualLimit
	}

	now := time.Now()
	return &PointRule{
		name:        name,
		category:    category,
		pointAmount: pointAmount,
		annualLimit: annualLimit,
		standard:    standard,
		createdBy:   createdBy,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct 永続化済みの行からPointRuleエンティティを復元（リポジトリ用）
func Reconstruct(
	id int64,
	name string,
	category string,
	pointAmount *int,
	annualLimit *int,
	standard Standard,
	createdBy int64,
	createdAt time.Time,
	updatedAt time.Time,
) *PointRule {
	return &PointRule{
		id:          id,
		name:        name,
		category:    category,
		pointAmount: pointAmount,
		annualLimit: annualLimit,
		standard:    standard,
		createdBy:   createdBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID ルールIDを返す
func (r *PointRule) ID() int64 {
	return r.id
}

// Name ルール名を返す
func (r *PointRule) Name() string {
	return r.name
}

// Category カテゴリを返す
func (r *PointRule) Category() string {
	return r.category
}

// PointAmount 既定付与ポイントを返す
func (r *PointRule) PointAmount() *int {
	return r.pointAmount
}

// AnnualLimit 年間付与回数上限を返す
func (r *PointRule) AnnualLimit() *int {
	return r.annualLimit
}

// Standard 付与基準ドキュメントを返す
func (r *PointRule) Standard() Standard {
	return r.standard
}

// CreatedBy 作成者IDを返す
func (r *PointRule) CreatedBy() int64 {
	return r.createdBy
}

// CreatedAt 作成日時を返す
func (r *PointRule) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt 更新日時を返す
func (r *PointRule) UpdatedAt() time.Time {
	return r.updatedAt
}

// HasAnnualLimit 年間上限が有効かどうかを返す（負数は旧データ互換で無制限扱い）
func (r *PointRule) HasAnnualLimit() bool {
	return r.annualLimit != nil && *r.annualLimit >= 0
}

// ResolvePoints 付与ポイントを解決する（指定値が優先、未指定なら既定値）
func (r *PointRule) ResolvePoints(requested *int) (int, error) {
	points := requested
	if points == nil {
		points = r.pointAmount
	}
	if points == nil || *points <= 0 {
		return 0, ErrInvalidPointAmount
	}
	return *points, nil
}

// UpdateFields 部分更新フィールド（nilのフィールドは更新しない）
type UpdateFields struct {
	Name        *string
	Category    *string
	PointAmount *int
	AnnualLimit *int
	Standard    Standard
}

// Validate 部分更新フィールドを検証
func (f UpdateFields) Validate() error {
	if f.Name != nil && *f.Name == "" {
		return ErrInvalidRuleName
	}
	if f.Category != nil && *f.Category == "" {
		return ErrInvalidRuleCategory
	}
	if f.PointAmount != nil && *f.PointAmount <= 0 {
		return ErrInvalidPointAmount
	}
	if f.AnnualLimit != nil && *f.AnnualLimit <= 0 {
		return ErrInvalidAnnualLimit
	}
	return nil
}

// IsEmpty 更新対象フィールドが1つもないかどうかを返す
func (f UpdateFields) IsEmpty() bool {
	return f.Name == nil && f.Category == nil && f.PointAmount == nil &&
		f.AnnualLimit == nil && f.Standard == nil
}

// MustNewPointRule テスト用ヘルパー: NewPointRuleを呼び出し、エラーが発生した場合はpanicする
func MustNewPointRule(
	name string,
	category string,
	pointAmount *int,
	annualLimit *int,
	standard Standard,
	createdBy int64,
) *PointRule {
	r, err := NewPointRule(name, category, pointAmount, annualLimit, standard, createdBy)
	if err != nil {
		panic(err)
	}
	return r
}
