package redemption_product

import (
	"context"
	"database/sql"
	"time"
)

// Repository 交換商品リポジトリインターフェース
// publish/offShelf/DecrementStockTxは条件付きUPDATE（WHERE述語で最新行を再評価）で
// 実装し、競合時はちょうど1トランザクションだけが成功する
type Repository interface {
	// FindByID IDで商品を取得
	FindByID(ctx context.Context, id int64) (*RedemptionProduct, error)

	// LockForUpdateTx 商品行を行ロック付きで取得（交換トランザクション用）
	LockForUpdateTx(ctx context.Context, tx *sql.Tx, id int64) (*RedemptionProduct, error)

	// List 商品一覧を取得（status・categoryが空の場合は全件、作成日時降順）
	List(ctx context.Context, status ProductStatus, category string) ([]*RedemptionProduct, error)

	// Create 新しい商品を作成し、採番されたIDを返す
	Create(ctx context.Context, product *RedemptionProduct) (int64, error)

	// Update 商品を部分更新（draft以外はErrProductNotDraft）
	Update(ctx context.Context, id int64, fields UpdateFields) (bool, error)

	// Delete 商品を削除（draft以外はErrProductNotDraft）
	Delete(ctx context.Context, id int64) (bool, error)

	// Publish draft状態の商品を公開（遷移できた場合はtrue）
	Publish(ctx context.Context, id int64) (bool, error)

	// OffShelf published状態の商品を公開終了（遷移できた場合はtrue）
	OffShelf(ctx context.Context, id int64) (bool, error)

	// DecrementStockTx 在庫を条件付きUPDATEで1減算
	// 在庫切れ・非公開・期限切れの場合は行が更新されずErrOutOfStockを返す
	DecrementStockTx(ctx context.Context, tx *sql.Tx, id int64, now time.Time) error
}
