package redemption_record

import "errors"

var (
	// ErrInvalidPointsCost 消費ポイントが無効
	ErrInvalidPointsCost = errors.New("points cost must be a positive number")
	// ErrRedeemLimitReached 1エージェントあたりの交換上限に到達
	ErrRedeemLimitReached = errors.New("redeem limit reached for this product")
)
