package agent

import (
	"context"
	"database/sql"
)

// BalanceRepository 残高リポジトリインターフェース
// 残高の増減は必ず付与・交換と同一トランザクション内で行うため、
// 書き込み系の操作は*sql.Txを受け取る
type BalanceRepository interface {
	// FindByAgentCode エージェントコードで残高を取得
	FindByAgentCode(ctx context.Context, agentCode Code) (*AgentBalance, error)

	// ListAll 全エージェントの残高を取得（残高降順）
	ListAll(ctx context.Context) ([]*AgentBalance, error)

	// EnsureRowTx 残高行が存在しない場合は0ポイントで作成
	EnsureRowTx(ctx context.Context, tx *sql.Tx, agentCode Code) error

	// LockForUpdateTx 残高行を行ロック付きで取得（エージェント単位の直列化点）
	LockForUpdateTx(ctx context.Context, tx *sql.Tx, agentCode Code) (*AgentBalance, error)

	// AddPointsTx 残高を加算（付与は減ることがないため無条件インクリメント）
	AddPointsTx(ctx context.Context, tx *sql.Tx, agentCode Code, points int) error

	// DeductPointsTx 残高を条件付きUPDATEで減算
	// 残高がpoints未満の場合は行が更新されずErrInsufficientBalanceを返す
	DeductPointsTx(ctx context.Context, tx *sql.Tx, agentCode Code, points int) error
}
