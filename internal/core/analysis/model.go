package analysis

import "context"

// デフォルトの検索・フィルタリングパラメータ
const (
	DefaultTopK                  = 5
	DefaultContextScoreThreshold = 0.7
	DefaultSearchScoreThreshold  = 0.6
	DefaultContextLimit          = 3
	DefaultDocumentCharLimit     = 2000
)

// Config は分析サービスの検索パラメータ
type Config struct {
	// TopK は近傍検索で取得する候補数
	TopK int
	// ContextScoreThreshold は分析コンテキストに採用する最低類似度
	ContextScoreThreshold float64
	// SearchScoreThreshold はナレッジベース検索結果に採用する最低類似度
	SearchScoreThreshold float64
	// ContextLimit はプロンプトに含めるコンテキストチャンクの最大数
	ContextLimit int
	// DocumentCharLimit はプロンプトに含める対象文書の最大文字数
	DocumentCharLimit int
}

// withDefaults はゼロ値のフィールドをデフォルト値で埋める
func (c Config) withDefaults() Config {
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
	if c.ContextScoreThreshold <= 0 {
		c.ContextScoreThreshold = DefaultContextScoreThreshold
	}
	if c.SearchScoreThreshold <= 0 {
		c.SearchScoreThreshold = DefaultSearchScoreThreshold
	}
	if c.ContextLimit <= 0 {
		c.ContextLimit = DefaultContextLimit
	}
	if c.DocumentCharLimit <= 0 {
		c.DocumentCharLimit = DefaultDocumentCharLimit
	}
	return c
}

// KnowledgeMatch はナレッジベース検索の結果1件を表す
type KnowledgeMatch struct {
	Content      string  `json:"content"`
	DocumentID   string  `json:"documentID"`
	DocumentType string  `json:"documentType"`
	Source       string  `json:"source"`
	Category     string  `json:"category"`
	Filename     string  `json:"filename"`
	Score        float64 `json:"score"`
}

// Embedder は検索クエリのEmbedding生成インターフェース
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// TokenCounter はプロンプトのトークン数計測インターフェース（ロギング用）
type TokenCounter interface {
	Count(text string) (int, error)
}
