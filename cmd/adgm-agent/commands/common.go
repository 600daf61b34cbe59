package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jinford/adgm-agent/internal/core/analysis"
	"github.com/jinford/adgm-agent/internal/core/corpus"
	"github.com/jinford/adgm-agent/internal/infra/docx"
	"github.com/jinford/adgm-agent/internal/infra/httpfetch"
	"github.com/jinford/adgm-agent/internal/infra/openai"
	"github.com/jinford/adgm-agent/internal/infra/postgres"
	"github.com/jinford/adgm-agent/internal/infra/tokenizer"
	"github.com/jinford/adgm-agent/internal/platform/config"
	"github.com/jinford/adgm-agent/internal/platform/logger"
	"github.com/jinford/adgm-agent/internal/platform/retry"
)

// AppContext はコマンド実行に必要な共通コンテキストを保持する
type AppContext struct {
	Config   *config.Config
	Logger   *slog.Logger
	Index    *postgres.VectorIndex
	Embedder *openai.Embedder
	LLM      *openai.Client
}

// NewAppContext は設定を読み込み、外部リソースに接続して AppContext を作成する
func NewAppContext(ctx context.Context, envFile string) (*AppContext, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定が不正: %w", err)
	}

	appLogger := logger.New(logger.DefaultConfig())

	idx, err := postgres.NewVectorIndex(ctx, cfg.Database.ConnString(),
		postgres.WithTable(cfg.Index.TableName),
		postgres.WithDimension(cfg.OpenAI.EmbeddingDimension),
		postgres.WithIndexLogger(appLogger),
	)
	if err != nil {
		return nil, fmt.Errorf("ベクトルインデックスへの接続に失敗: %w", err)
	}

	embedder := openai.NewEmbedder(cfg.OpenAI.APIKey,
		openai.WithEmbeddingModel(cfg.OpenAI.EmbeddingModel),
		openai.WithEmbeddingDimension(cfg.OpenAI.EmbeddingDimension),
	)

	llm, err := openai.NewClient(cfg.OpenAI.APIKey,
		openai.WithModel(cfg.OpenAI.LLMModel),
		openai.WithTemperature(cfg.OpenAI.Temperature),
		openai.WithTimeout(cfg.OpenAI.RequestTimeout),
		openai.WithRetryPolicy(retry.Policy{
			MaxAttempts:  cfg.OpenAI.MaxRetries,
			BaseInterval: cfg.OpenAI.RetryBaseInterval,
			MaxInterval:  32 * cfg.OpenAI.RetryBaseInterval,
		}),
	)
	if err != nil {
		idx.Close()
		return nil, fmt.Errorf("LLMクライアントの初期化に失敗: %w", err)
	}

	return &AppContext{
		Config:   cfg,
		Logger:   appLogger,
		Index:    idx,
		Embedder: embedder,
		LLM:      llm,
	}, nil
}

// Close はAppContextが保持するリソースをクリーンアップする
func (ac *AppContext) Close() {
	if ac.Index != nil {
		ac.Index.Close()
	}
}

// CorpusService は参照コーパス取り込みサービスを組み立てる
func (ac *AppContext) CorpusService() *corpus.Service {
	return corpus.NewService(
		ac.Index,
		ac.Embedder,
		httpfetch.NewFetcher(),
		docx.NewReader(),
		corpus.ServiceConfig{
			DocsDir:      ac.Config.Corpus.DocsDir,
			ChunkSize:    ac.Config.Corpus.ChunkSize,
			ChunkOverlap: ac.Config.Corpus.ChunkOverlap,
			SettleDelay:  ac.Config.Index.SettleDelay,
		},
		corpus.WithLogger(ac.Logger),
	)
}

// AnalysisService はRAG分析サービスを組み立てる
func (ac *AppContext) AnalysisService() *analysis.Service {
	opts := []analysis.ServiceOption{
		analysis.WithServiceLogger(ac.Logger),
	}

	// トークンカウンタはロギング補助のため、初期化失敗は致命的ではない
	if counter, err := tokenizer.NewCounter(ac.Config.OpenAI.LLMModel); err == nil {
		opts = append(opts, analysis.WithTokenCounter(counter))
	} else {
		ac.Logger.Warn("token counter unavailable", "error", err)
	}

	return analysis.NewService(
		ac.Index,
		ac.Embedder,
		ac.LLM,
		analysis.Config{
			TopK:                  ac.Config.Analysis.TopK,
			ContextScoreThreshold: ac.Config.Analysis.ScoreThreshold,
			SearchScoreThreshold:  ac.Config.Analysis.SearchScoreThreshold,
			ContextLimit:          ac.Config.Analysis.ContextLimit,
			DocumentCharLimit:     ac.Config.Analysis.DocumentCharLimit,
		},
		opts...,
	)
}
