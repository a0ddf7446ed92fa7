package point_rule

import (
	"context"
)

// Repository ポイントルールリポジトリインターフェース
type Repository interface {
	// FindByID IDでルールを取得
	FindByID(ctx context.Context, id int64) (*PointRule, error)

	// List ルール一覧を取得（categoryが空文字の場合は全件、作成日時降順）
	List(ctx context.Context, category string) ([]*PointRule, error)

	// Create 新しいルールを作成し、採番されたIDを返す
	Create(ctx context.Context, rule *PointRule) (int64, error)

	// Update ルールを部分更新（更新された場合はtrue）
	Update(ctx context.Context, id int64, fields UpdateFields) (bool, error)

	// Delete ルールを削除（削除された場合はtrue）
	Delete(ctx context.Context, id int64) (bool, error)
}
