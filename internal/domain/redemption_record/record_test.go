package redemption_record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyalty-server/internal/domain/agent"
)

func TestNewRedemptionRecord(t *testing.T) {
	code := agent.MustNewCode("AAAA1111")

	t.Run("正常系: 成功ステータスで作成される", func(t *testing.T) {
		r, err := NewRedemptionRecord(1, code, 50, nil)
		require.NoError(t, err)
		assert.Equal(t, RecordStatusSuccess, r.Status())
		assert.Equal(t, 50, r.PointsCost())
		assert.Equal(t, code, r.AgentCode())
	})

	t.Run("異常系: 消費ポイントが0", func(t *testing.T) {
		_, err := NewRedemptionRecord(1, code, 0, nil)
		assert.ErrorIs(t, err, ErrInvalidPointsCost)
	})
}

func TestNewRecordStatus(t *testing.T) {
	st, err := NewRecordStatus("success")
	require.NoError(t, err)
	assert.True(t, st.IsSuccess())

	st, err = NewRecordStatus("cancelled")
	require.NoError(t, err)
	assert.False(t, st.IsSuccess())

	_, err = NewRecordStatus("pending")
	assert.Error(t, err)
}
