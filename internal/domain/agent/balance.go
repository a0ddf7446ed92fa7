package agent

import (
	"time"
)

// AgentBalance エージェントポイント残高エンティティ
// 残高は付与・交換のたびに増分更新され、常に0以上を維持する
type AgentBalance struct {
	agentCode     Code
	currentPoints int
	createdAt     time.Time
	updatedAt     time.Time
}

// NewAgentBalance 新しいAgentBalanceエンティティを作成
func NewAgentBalance(agentCode Code, currentPoints int, createdAt, updatedAt time.Time) (*AgentBalance, error) {
	if currentPoints < 0 {
		return nil, ErrNegativeBalance
	}
	return &AgentBalance{
		agentCode:     agentCode,
		currentPoints: currentPoints,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

// AgentCode エージェントコードを返す
func (b *AgentBalance) AgentCode() Code {
	return b.agentCode
}

// CurrentPoints 現在のポイント残高を返す
func (b *AgentBalance) CurrentPoints() int {
	return b.currentPoints
}

// CreatedAt 作成日時を返す
func (b *AgentBalance) CreatedAt() time.Time {
	return b.createdAt
}

// UpdatedAt 更新日時を返す
func (b *AgentBalance) UpdatedAt() time.Time {
	return b.updatedAt
}

// CanAfford 指定コストを支払えるかどうかを返す（参考値: 確定判定は条件付きUPDATEで行う）
func (b *AgentBalance) CanAfford(cost int) bool {
	return b.currentPoints >= cost
}

// MustNewAgentBalance テスト用ヘルパー: NewAgentBalanceを呼び出し、エラーが発生した場合はpanicする
func MustNewAgentBalance(agentCode Code, currentPoints int, createdAt, updatedAt time.Time) *AgentBalance {
	b, err := NewAgentBalance(agentCode, currentPoints, createdAt, updatedAt)
	if err != nil {
		panic(err)
	}
	return b
}
