package redemption_record

import (
	"fmt"
)

// RecordStatus 交換履歴ステータスを表す値オブジェクト
type RecordStatus string

const (
	RecordStatusSuccess   RecordStatus = "success"   // 交換成功
	RecordStatusCancelled RecordStatus = "cancelled" // 取消済み
)

// NewRecordStatus 新しいRecordStatusを作成
func NewRecordStatus(s string) (RecordStatus, error) {
	switch s {
	case "success", "cancelled":
		return RecordStatus(s), nil
	default:
		return "", fmt.Errorf("invalid record status: %s", s)
	}
}

// String 文字列表現を返す
func (rs RecordStatus) String() string {
	return string(rs)
}

// IsSuccess 交換成功かどうかを返す
func (rs RecordStatus) IsSuccess() bool {
	return rs == RecordStatusSuccess
}
