package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/jinford/adgm-agent/internal/core/analysis"
)

// fallbackEncoding は未知のモデル名に対して使うエンコーディング
const fallbackEncoding = "cl100k_base"

// Counter は tiktoken によるトークン数計測を提供する
type Counter struct {
	encoding *tiktoken.Tiktoken
}

// NewCounter はモデルに対応したトークンカウンタを作成する
// モデルが未知の場合は cl100k_base にフォールバックする
func NewCounter(model string) (*Counter, error) {
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		encoding, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer encoding: %w", err)
		}
	}

	return &Counter{encoding: encoding}, nil
}

// Count はテキストのトークン数を返す
func (c *Counter) Count(text string) (int, error) {
	return len(c.encoding.Encode(text, nil, nil)), nil
}

// インターフェース実装の確認
var _ analysis.TokenCounter = (*Counter)(nil)
