package generation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jinford/adgm-agent/internal/core/compliance"
)

// Analyzer はLLMによる法的分析のビジネスロジックを提供する
type Analyzer struct {
	llm    Client
	logger *slog.Logger
}

type AnalyzerOption func(*Analyzer)

// WithAnalyzerLogger は Analyzer にロガーを設定する
func WithAnalyzerLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer は新しい Analyzer を作成する
func NewAnalyzer(llm Client, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		llm:    llm,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// AnalyzeLegalDocument は文書をLLMで分析し、構造化された結果を返す
// LLM応答がJSONとして解釈できない場合もフォールバック結果を返すため、
// エラーになるのはLLM呼び出し自体の失敗のみ
func (a *Analyzer) AnalyzeLegalDocument(ctx context.Context, documentContent, documentType, analysisContext string) (*LegalAnalysis, error) {
	prompt := BuildLegalAnalysisPrompt(documentContent, documentType, analysisContext)

	response, err := a.llm.GenerateCompletion(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate legal analysis: %w", err)
	}

	analysis := ParseAnalysis(response)
	if !analysis.Structured() {
		a.logger.Warn("LLM response was not valid JSON, returning raw response fallback",
			"documentType", documentType,
			"responseLength", len(response),
		)
	}

	return analysis, nil
}

// Suggestions は指摘事項に対する改善提案テキストを生成する
func (a *Analyzer) Suggestions(ctx context.Context, documentType string, issues []compliance.Issue) (string, error) {
	if len(issues) == 0 {
		return "", nil
	}

	prompt := buildSuggestionsPrompt(documentType, issues)

	suggestions, err := a.llm.GenerateCompletion(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate suggestions: %w", err)
	}

	return suggestions, nil
}
