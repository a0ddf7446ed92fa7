package redemption_record

import (
	"context"
	"database/sql"

	"loyalty-server/internal/domain/agent"
)

// Repository 交換履歴リポジトリインターフェース
type Repository interface {
	// SaveTx 交換履歴を挿入し、採番されたIDを返す
	// 在庫・残高の減算と同一トランザクション内で呼び出すこと
	SaveTx(ctx context.Context, tx *sql.Tx, record *RedemptionRecord) (int64, error)

	// CountSuccessByProductAgentTx (productID, agentCode)の成功交換件数を取得
	// 交換上限チェック用（残高行ロック取得後に呼び出すこと）
	CountSuccessByProductAgentTx(ctx context.Context, tx *sql.Tx, productID int64, agentCode agent.Code) (int, error)

	// ListByAgent エージェントの交換履歴を取得（productIDが0の場合は全商品、交換日時降順）
	ListByAgent(ctx context.Context, agentCode agent.Code, productID int64) ([]*RecordDetail, int, error)
}
