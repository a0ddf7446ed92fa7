package point_grant

import "errors"

var (
	// ErrInvalidPoints 付与ポイントが無効
	ErrInvalidPoints = errors.New("points must be a positive number")
	// ErrInvalidOccurredYear 対象年度が無効
	ErrInvalidOccurredYear = errors.New("invalid occurred year")
	// ErrAnnualLimitReached 年間付与回数上限に到達
	ErrAnnualLimitReached = errors.New("annual limit reached for this point rule")
)
