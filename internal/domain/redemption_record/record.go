package redemption_record

import (
	"time"

	"loyalty-server/internal/domain/agent"
)

// RedemptionRecord 交換履歴エンティティ（追記専用の監査レコード）
// pointsCostは交換時点の消費ポイントのスナップショット
type RedemptionRecord struct {
	id         int64
	productID  int64
	agentCode  agent.Code
	pointsCost int
	status     RecordStatus
	remark     *string
	redeemedAt time.Time
	createdAt  time.Time
}

// NewRedemptionRecord 新しいRedemptionRecordエンティティを作成（ステータスはsuccess固定）
func NewRedemptionRecord(
	productID int64,
	agentCode agent.Code,
	pointsCost int,
	remark *string,
) (*RedemptionRecord, error) {
	if pointsCost <= 0 {
		return nil, ErrInvalidPointsCost
	}

	now := time.Now()
	return &RedemptionRecord{
		productID:  productID,
		agentCode:  agentCode,
		pointsCost: pointsCost,
		status:     RecordStatusSuccess,
		remark:     remark,
		redeemedAt: now,
		createdAt:  now,
	}, nil
}

// Reconstruct 永続化済みの行からRedemptionRecordエンティティを復元（リポジトリ用）
func Reconstruct(
	id int64,
	productID int64,
	agentCode agent.Code,
	pointsCost int,
	status RecordStatus,
	remark *string,
	redeemedAt time.Time,
	createdAt time.Time,
) *RedemptionRecord {
	return &RedemptionRecord{
		id:         id,
		productID:  productID,
		agentCode:  agentCode,
		pointsCost: pointsCost,
		status:     status,
		remark:     remark,
		redeemedAt: redeemedAt,
		createdAt:  createdAt,
	}
}

// ID 交換履歴IDを返す
func (r *RedemptionRecord) ID() int64 {
	return r.id
}

// ProductID 商品IDを返す
func (r *RedemptionRecord) ProductID() int64 {
	return r.productID
}

// AgentCode エージェントコードを返す
func (r *RedemptionRecord) AgentCode() agent.Code {
	return r.agentCode
}

// PointsCost 消費ポイント（交換時点のスナップショット）を返す
func (r *RedemptionRecord) PointsCost() int {
	return r.pointsCost
}

// Status ステータスを返す
func (r *RedemptionRecord) Status() RecordStatus {
	return r.status
}

// Remark 備考を返す
func (r *RedemptionRecord) Remark() *string {
	return r.remark
}

// RedeemedAt 交換日時を返す
func (r *RedemptionRecord) RedeemedAt() time.Time {
	return r.redeemedAt
}

// CreatedAt 作成日時を返す
func (r *RedemptionRecord) CreatedAt() time.Time {
	return r.createdAt
}

// RecordDetail 一覧表示用のリードモデル（商品タイトル・カテゴリ付き）
type RecordDetail struct {
	Record         *RedemptionRecord
	ProductTitle   string
	RedeemCategory string
}

// MustNewRedemptionRecord テスト用ヘルパー: NewRedemptionRecordを呼び出し、エラーが発生した場合はpanicする
func MustNewRedemptionRecord(
	productID int64,
	agentCode agent.Code,
	pointsCost int,
	remark *string,
) *RedemptionRecord {
	r, err := NewRedemptionRecord(productID, agentCode, pointsCost, remark)
	if err != nil {
		panic(err)
	}
	return r
}
