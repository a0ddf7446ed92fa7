package agent

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrInvalidAgentCode エージェントコードが無効
	ErrInvalidAgentCode = errors.New("invalid agent code")
)

var agentCodeRegex = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// Code エージェントコード（8桁英数字、大文字に正規化）
type Code string

// NewCode 新しいCodeを作成（大文字に正規化してから検証）
func NewCode(raw string) (Code, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if !agentCodeRegex.MatchString(normalized) {
		return "", ErrInvalidAgentCode
	}
	return Code(normalized), nil
}

// String 文字列表現を返す
func (c Code) String() string {
	return string(c)
}

// MustNewCode テスト用ヘルパー: NewCodeを呼び出し、エラーが発生した場合はpanicする
func MustNewCode(raw string) Code {
	c, err := NewCode(raw)
	if err != nil {
		panic(err)
	}
	return c
}
