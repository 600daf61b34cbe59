package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey は必須のAPIキーが未設定の場合のエラー
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// Database設定（ベクトルインデックス用）
	Database DatabaseConfig

	// OpenAI設定（Embeddings + 生成）
	OpenAI OpenAIConfig

	// ベクトルインデックス設定
	Index IndexConfig

	// 参照コーパス設定
	Corpus CorpusConfig

	// RAG分析設定
	Analysis AnalysisConfig
}

// DatabaseConfig はデータベース接続設定
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// OpenAIConfig はOpenAI API設定
type OpenAIConfig struct {
	APIKey             string
	EmbeddingModel     string
	EmbeddingDimension int
	LLMModel           string
	Temperature        float64
	MaxOutputTokens    int
	RequestTimeout     time.Duration
	MaxRetries         int
	RetryBaseInterval  time.Duration
}

// IndexConfig はベクトルインデックス設定
type IndexConfig struct {
	// TableName はインデックスを保持するテーブル名
	TableName string
	// SettleDelay は全削除後の反映待ち時間
	// バックエンドの削除は結果整合のため、再構築前に待機する必要がある
	SettleDelay time.Duration
}

// CorpusConfig は参照コーパスの取得・分割設定
type CorpusConfig struct {
	DocsDir      string
	ChunkSize    int
	ChunkOverlap int
}

// AnalysisConfig はRAG分析のパラメータ設定
// 閾値とtop-kは経験的に選ばれた値のため、固定値ではなく設定可能とする
type AnalysisConfig struct {
	TopK                 int
	ScoreThreshold       float64
	SearchScoreThreshold float64
	ContextLimit         int
	DocumentCharLimit    int
}

// ConnString はpgx用の接続文字列を返します
func (c DatabaseConfig) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// Load は環境変数または.envファイルから設定を読み込みます
func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			// ファイルが存在しない場合はエラーとしない（環境変数のみで動作可能）
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "adgm"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "adgm"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		OpenAI: OpenAIConfig{
			APIKey:             getEnv("OPENAI_API_KEY", ""),
			EmbeddingModel:     getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			EmbeddingDimension: getEnvAsInt("OPENAI_EMBEDDING_DIMENSION", 384),
			LLMModel:           getEnv("OPENAI_LLM_MODEL", "gpt-4o-mini"),
			Temperature:        getEnvAsFloat("OPENAI_TEMPERATURE", 0.1),
			MaxOutputTokens:    getEnvAsInt("OPENAI_MAX_OUTPUT_TOKENS", 4096),
			RequestTimeout:     getEnvAsDuration("OPENAI_REQUEST_TIMEOUT", 60*time.Second),
			MaxRetries:         getEnvAsInt("OPENAI_MAX_RETRIES", 3),
			RetryBaseInterval:  getEnvAsDuration("OPENAI_RETRY_BASE_INTERVAL", time.Second),
		},
		Index: IndexConfig{
			TableName:   getEnv("INDEX_TABLE_NAME", "reference_chunks"),
			SettleDelay: getEnvAsDuration("INDEX_SETTLE_DELAY", 10*time.Second),
		},
		Corpus: CorpusConfig{
			DocsDir:      getEnv("CORPUS_DOCS_DIR", "official_adgm_documents"),
			ChunkSize:    getEnvAsInt("CORPUS_CHUNK_SIZE", 1000),
			ChunkOverlap: getEnvAsInt("CORPUS_CHUNK_OVERLAP", 200),
		},
		Analysis: AnalysisConfig{
			TopK:                 getEnvAsInt("ANALYSIS_TOP_K", 5),
			ScoreThreshold:       getEnvAsFloat("ANALYSIS_SCORE_THRESHOLD", 0.7),
			SearchScoreThreshold: getEnvAsFloat("SEARCH_SCORE_THRESHOLD", 0.6),
			ContextLimit:         getEnvAsInt("ANALYSIS_CONTEXT_LIMIT", 3),
			DocumentCharLimit:    getEnvAsInt("ANALYSIS_DOCUMENT_CHAR_LIMIT", 2000),
		},
	}

	return cfg, nil
}

// Validate は起動に必須の設定が揃っているかを検証します
// 不足している場合は起動を中断すべきエラーを返す
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.OpenAI.EmbeddingDimension <= 0 {
		return fmt.Errorf("invalid embedding dimension: %d", c.OpenAI.EmbeddingDimension)
	}
	if c.Corpus.ChunkOverlap >= c.Corpus.ChunkSize {
		return fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", c.Corpus.ChunkOverlap, c.Corpus.ChunkSize)
	}
	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt は環境変数を整数として取得します
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat は環境変数を浮動小数点数として取得します
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration は環境変数をDurationとして取得します
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
