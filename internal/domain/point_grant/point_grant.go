package point_grant

import (
	"time"

	"loyalty-server/internal/domain/agent"
)

// PointGrant ポイント付与レコードエンティティ（追記専用、更新・削除なし）
type PointGrant struct {
	id           int64
	agentCode    agent.Code
	ruleID       int64
	points       int
	occurredYear int
	remark       *string
	createdBy    int64
	createdAt    time.Time
}

// NewPointGrant 新しいPointGrantエンティティを作成
func NewPointGrant(
	agentCode agent.Code,
	ruleID int64,
	points int,
	occurredYear int,
	remark *string,
	createdBy int64,
) (*PointGrant, error) {
	if points <= 0 {
		return nil, ErrInvalidPoints
	}
	if occurredYear <= 0 {
		return nil, ErrInvalidOccurredYear
	}
	return &PointGrant{
		agentCode:    agentCode,
		ruleID:       ruleID,
		points:       points,
		occurredYear: occurredYear,
		remark:       remark,
		createdBy:    createdBy,
		createdAt:    time.Now(),
	}, nil
}

// Reconstruct 永続化済みの行からPointGrantエンティティを復元（リポジトリ用）
func Reconstruct(
	id int64,
	agentCode agent.Code,
	ruleID int64,
	points int,
	occurredYear int,
	remark *string,
	createdBy int64,
	createdAt time.Time,
) *PointGrant {
	return &PointGrant{
		id:           id,
		agentCode:    agentCode,
		ruleID:       ruleID,
		points:       points,
		occurredYear: occurredYear,
		remark:       remark,
		createdBy:    createdBy,
		createdAt:    createdAt,
	}
}

// ID 付与レコードIDを返す
func (g *PointGrant) ID() int64 {
	return g.id
}

// AgentCode エージェントコードを返す
func (g *PointGrant) AgentCode() agent.Code {
	return g.agentCode
}

// RuleID ルールIDを返す
func (g *PointGrant) RuleID() int64 {
	return g.ruleID
}

// Points 付与ポイントを返す
func (g *PointGrant) Points() int {
	return g.points
}

// OccurredYear 対象年度を返す
func (g *PointGrant) OccurredYear() int {
	return g.occurredYear
}

// Remark 備考を返す
func (g *PointGrant) Remark() *string {
	return g.remark
}

// CreatedBy 作成者IDを返す
func (g *PointGrant) CreatedBy() int64 {
	return g.createdBy
}

// CreatedAt 作成日時を返す
func (g *PointGrant) CreatedAt() time.Time {
	return g.createdAt
}

// GrantDetail 一覧表示用のリードモデル（ルール名・カテゴリ付き）
type GrantDetail struct {
	Grant        *PointGrant
	RuleName     string
	RuleCategory string
}

// MustNewPointGrant テスト用ヘルパー: NewPointGrantを呼び出し、エラーが発生した場合はpanicする
func MustNewPointGrant(
	agentCode agent.Code,
	ruleID int64,
	points int,
	occurredYear int,
	remark *string,
	createdBy int64,
) *PointGrant {
	g, err := NewPointGrant(agentCode, ruleID, points, occurredYear, remark, createdBy)
	if err != nil {
		panic(err)
	}
	return g
}
