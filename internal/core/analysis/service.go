package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jinford/adgm-agent/internal/core/generation"
	"github.com/jinford/adgm-agent/internal/core/index"
)

// Service は公式コーパスを根拠とした文書分析・検索のビジネスロジックを提供する
type Service struct {
	index    index.Index
	embedder Embedder
	llm      generation.Client
	cfg      Config
	tokens   TokenCounter
	logger   *slog.Logger
}

type ServiceOption func(*Service)

// WithServiceLogger は Service にロガーを設定する
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTokenCounter はプロンプトのトークン数計測を有効にする
func WithTokenCounter(counter TokenCounter) ServiceOption {
	return func(s *Service) {
		s.tokens = counter
	}
}

// NewService は新しい Service を作成する
func NewService(idx index.Index, embedder Embedder, llm generation.Client, cfg Config, opts ...ServiceOption) *Service {
	svc := &Service{
		index:    idx,
		embedder: embedder,
		llm:      llm,
		cfg:      cfg.withDefaults(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

// Analyze は文書を公式ADGMコンテキスト付きでLLM分析する
// 分析は失敗してもエラーを返さず、エラー内容を分析結果テキストとして返す
// （レビュー処理全体を1文書の分析失敗で止めないため）
func (s *Service) Analyze(ctx context.Context, documentContent, processType string) string {
	vector, err := s.embedder.Embed(ctx, documentContent)
	if err != nil {
		s.logger.Error("failed to embed document for analysis", "error", err)
		return analysisErrorText(err)
	}

	matches, err := s.index.Query(ctx, vector, s.cfg.TopK, index.Filter{OfficialOnly: true})
	if err != nil {
		s.logger.Error("failed to query knowledge base", "error", err)
		return analysisErrorText(err)
	}

	// 類似度の低い候補を除外し、プロンプトに入れる件数を制限する
	contextMatches := make([]index.Match, 0, s.cfg.ContextLimit)
	for _, match := range matches {
		if match.Score <= s.cfg.ContextScoreThreshold {
			continue
		}
		contextMatches = append(contextMatches, match)
		if len(contextMatches) >= s.cfg.ContextLimit {
			break
		}
	}

	prompt := BuildAnalysisPrompt(processType, documentContent, contextMatches, s.cfg.DocumentCharLimit)

	if s.tokens != nil {
		if count, err := s.tokens.Count(prompt); err == nil {
			s.logger.Info("built analysis prompt",
				"contextChunks", len(contextMatches),
				"promptTokens", count,
			)
		}
	}

	analysis, err := s.llm.GenerateCompletion(ctx, prompt)
	if err != nil {
		s.logger.Error("failed to generate analysis", "error", err)
		return analysisErrorText(err)
	}

	return analysis
}

// SearchKnowledgeBase はナレッジベースを類似度検索する
// 閾値以下の結果は除外される
func (s *Service) SearchKnowledgeBase(ctx context.Context, query string, topK int) ([]KnowledgeMatch, error) {
	if topK <= 0 {
		topK = s.cfg.TopK
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := s.index.Query(ctx, vector, topK, index.Filter{OfficialOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge base: %w", err)
	}

	results := make([]KnowledgeMatch, 0, len(matches))
	for _, match := range matches {
		if match.Score <= s.cfg.SearchScoreThreshold {
			continue
		}
		results = append(results, KnowledgeMatch{
			Content:      match.Metadata.Content,
			DocumentID:   match.Metadata.DocumentID,
			DocumentType: match.Metadata.DocumentType,
			Source:       match.Metadata.Source,
			Category:     match.Metadata.Category,
			Filename:     match.Metadata.Filename,
			Score:        match.Score,
		})
	}

	s.logger.Info("knowledge base search completed",
		"query", query,
		"candidates", len(matches),
		"results", len(results),
	)

	return results, nil
}

func analysisErrorText(err error) string {
	return fmt.Sprintf("Error in official ADGM analysis: %s", err)
}
