package point_rule

import "errors"

var (
	// ErrRuleNotFound ルールが見つからないエラー
	ErrRuleNotFound = errors.New("point rule not found")
	// ErrInvalidRuleName ルール名が無効
	ErrInvalidRuleName = errors.New("invalid rule name")
	// ErrInvalidRuleCategory カテゴリが無効
	ErrInvalidRuleCategory = errors.New("invalid rule category")
	// ErrInvalidPointAmount 付与ポイントが無効
	ErrInvalidPointAmount = errors.New("point amount must be a positive number")
	// ErrInvalidAnnualLimit 年間上限が無効
	ErrInvalidAnnualLimit = errors.New("annual limit must be a positive number")
	// ErrRuleHasGrants 付与実績のあるルールは削除不可
	ErrRuleHasGrants = errors.New("point rule has existing grants")
)
