package point_rule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestNewPointRule(t *testing.T) {
	tests := []struct {
		name        string
		ruleName    string
		category    string
		pointAmount *int
		annualLimit *int
		wantError   error
	}{
		{
			name:        "正常系: 全フィールド指定",
			ruleName:    "展示会出展",
			category:    "marketing",
			pointAmount: intPtr(100),
			annualLimit: intPtr(2),
		},
		{
			name:     "正常系: 数値フィールドなし",
			ruleName: "特別表彰",
			category: "award",
		},
		{
			name:      "異常系: ルール名が空",
			ruleName:  "",
			category:  "marketing",
			wantError: ErrInvalidRuleName,
		},
		{
			name:      "異常系: カテゴリが空",
			ruleName:  "展示会出展",
			category:  "",
			wantError: ErrInvalidRuleCategory,
		},
		{
			name:        "異常系: 付与ポイントが0",
			ruleName:    "展示会出展",
			category:    "marketing",
			pointAmount: intPtr(0),
			wantError:   ErrInvalidPointAmount,
		},
		{
			name:        "異常系: 年間上限がマイナス",
			ruleName:    "展示会出展",
			category:    "marketing",
			annualLimit: intPtr(-1),
			wantError:   ErrInvalidAnnualLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewPointRule(tt.ruleName, tt.category, tt.pointAmount, tt.annualLimit, nil, 1)

			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ruleName, rule.Name())
			assert.Equal(t, tt.category, rule.Category())
		})
	}
}

func TestPointRule_HasAnnualLimit(t *testing.T) {
	t.Run("上限あり", func(t *testing.T) {
		rule := MustNewPointRule("r", "c", nil, intPtr(2), nil, 1)
		assert.True(t, rule.HasAnnualLimit())
	})

	t.Run("上限なし（nil）", func(t *testing.T) {
		rule := MustNewPointRule("r", "c", nil, nil, nil, 1)
		assert.False(t, rule.HasAnnualLimit())
	})

	t.Run("上限なし（旧データの負数）", func(t *testing.T) {
		limit := -1
		rule := Reconstruct(1, "r", "c", nil, &limit, nil, 1, time.Now(), time.Now())
		assert.False(t, rule.HasAnnualLimit())
	})
}

func TestPointRule_ResolvePoints(t *testing.T) {
	tests := []struct {
		name      string
		rule      *PointRule
		requested *int
		want      int
		wantError bool
	}{
		{
			name:      "正常系: 指定値が優先される",
			rule:      MustNewPointRule("r", "c", intPtr(100), nil, nil, 1),
			requested: intPtr(50),
			want:      50,
		},
		{
			name: "正常系: 未指定なら既定値",
			rule: MustNewPointRule("r", "c", intPtr(100), nil, nil, 1),
			want: 100,
		},
		{
			name:      "異常系: 指定も既定もない",
			rule:      MustNewPointRule("r", "c", nil, nil, nil, 1),
			wantError: true,
		},
		{
			name:      "異常系: 指定値が0以下",
			rule:      MustNewPointRule("r", "c", intPtr(100), nil, nil, 1),
			requested: intPtr(0),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rule.ResolvePoints(tt.requested)

			if tt.wantError {
				assert.ErrorIs(t, err, ErrInvalidPointAmount)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestUpdateFields_Validate(t *testing.T) {
	empty := ""

	assert.NoError(t, UpdateFields{Name: strPtr("new name")}.Validate())
	assert.ErrorIs(t, UpdateFields{Name: &empty}.Validate(), ErrInvalidRuleName)
	assert.ErrorIs(t, UpdateFields{Category: &empty}.Validate(), ErrInvalidRuleCategory)
	assert.ErrorIs(t, UpdateFields{PointAmount: intPtr(-5)}.Validate(), ErrInvalidPointAmount)
	assert.ErrorIs(t, UpdateFields{AnnualLimit: intPtr(0)}.Validate(), ErrInvalidAnnualLimit)
	assert.True(t, UpdateFields{}.IsEmpty())
}

func strPtr(s string) *string {
	return &s
}
