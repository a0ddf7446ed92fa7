package transaction

import (
	"context"
	"database/sql"
)

// TransactionManager トランザクション管理インターフェース
// 付与・交換の1呼び出し = 1トランザクションを保証するために使用する
type TransactionManager interface {
	// WithTransaction トランザクション内で関数を実行
	// fnがエラーを返した場合はロールバックし、部分的な更新を残さない
	WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}
