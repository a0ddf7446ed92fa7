package agent

import "errors"

var (
	// ErrBalanceNotFound 残高が見つからないエラー
	ErrBalanceNotFound = errors.New("agent balance not found")
	// ErrInsufficientBalance 残高不足エラー
	ErrInsufficientBalance = errors.New("insufficient point balance")
	// ErrNegativeBalance 残高がマイナスエラー
	ErrNegativeBalance = errors.New("balance must not be negative")
)
