package point_grant

import (
	"context"
	"database/sql"

	"loyalty-server/internal/domain/agent"
)

// Repository ポイント付与リポジトリインターフェース
type Repository interface {
	// SaveTx 付与レコードを挿入し、採番されたIDを返す
	// 残高更新と同一トランザクション内で呼び出すこと
	SaveTx(ctx context.Context, tx *sql.Tx, grant *PointGrant) (int64, error)

	// CountByAgentRuleYearTx (agentCode, ruleID, occurredYear)の付与件数を取得
	// 年間上限チェック用（残高行ロック取得後に呼び出すこと）
	CountByAgentRuleYearTx(ctx context.Context, tx *sql.Tx, agentCode agent.Code, ruleID int64, occurredYear int) (int, error)

	// ListByAgent エージェントの付与履歴を取得（ruleIDが0の場合は全ルール、作成日時降順）
	ListByAgent(ctx context.Context, agentCode agent.Code, ruleID int64) ([]*GrantDetail, int, error)

	// ExistsForRule 指定ルールを参照する付与レコードが存在するかどうか
	ExistsForRule(ctx context.Context, ruleID int64) (bool, error)
}
