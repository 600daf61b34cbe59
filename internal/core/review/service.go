package review

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jinford/adgm-agent/internal/core/compliance"
	"github.com/jinford/adgm-agent/internal/core/document"
)

// Service は複数文書のレビューを逐次実行するビジネスロジックを提供する
type Service struct {
	parser    Parser
	checker   *compliance.Checker
	analyzer  Analyzer
	suggester Suggester
	now       func() time.Time
	logger    *slog.Logger
}

type ServiceOption func(*Service)

// WithReviewLogger は Service にロガーを設定する
func WithReviewLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithSuggester は改善提案の生成を有効にする
func WithSuggester(suggester Suggester) ServiceOption {
	return func(s *Service) {
		s.suggester = suggester
	}
}

// WithClock は現在時刻の取得を差し替える（テスト用）
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService は新しい Service を作成する
func NewService(parser Parser, checker *compliance.Checker, analyzer Analyzer, opts ...ServiceOption) *Service {
	svc := &Service{
		parser:   parser,
		checker:  checker,
		analyzer: analyzer,
		now:      time.Now,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

// Review は文書を1件ずつ逐次処理してレポートを生成する
// 1文書の失敗はその文書の結果に Error として記録され、残りの処理は続行する
func (s *Service) Review(ctx context.Context, inputs []InputDocument, opts Options) (*Report, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no documents to review")
	}

	report := &Report{
		ID:               uuid.NewString(),
		GeneratedAt:      s.now(),
		ProcessType:      opts.ProcessType,
		OverallCompliant: true,
	}

	for i, input := range inputs {
		s.logger.Info("reviewing document",
			"filename", input.Filename,
			"position", i+1,
			"total", len(inputs),
		)

		result := s.reviewOne(ctx, input, opts)
		if result.Error != "" {
			s.logger.Error("failed to review document",
				"filename", input.Filename,
				"error", result.Error,
			)
		}

		if result.Compliance != nil && !result.Compliance.IsCompliant {
			report.OverallCompliant = false
			report.TotalIssues += len(result.Compliance.Issues)
		}

		report.Documents = append(report.Documents, result)
	}

	s.logger.Info("review completed",
		"reportID", report.ID,
		"documents", len(report.Documents),
		"totalIssues", report.TotalIssues,
		"overallCompliant", report.OverallCompliant,
	)

	return report, nil
}

// reviewOne は1文書を一時ファイルに退避してから解析する
// 一時ファイルはすべての終了経路で削除される
func (s *Service) reviewOne(ctx context.Context, input InputDocument, opts Options) DocumentResult {
	result := DocumentResult{Filename: input.Filename}

	path, err := s.stageTempFile(input.Content)
	if err != nil {
		result.Error = fmt.Sprintf("failed to stage document: %s", err)
		return result
	}
	defer os.Remove(path)

	file, err := s.parser.ReadFile(path)
	if err != nil {
		result.Error = fmt.Sprintf("failed to parse document: %s", err)
		return result
	}

	doc := document.Analyze(input.Filename, *file)
	result.DocumentType = doc.Type
	result.WordCount = doc.WordCount

	if opts.RunAnalysis {
		result.Analysis = s.analyzer.Analyze(ctx, doc.Content, opts.ProcessType)
	}

	if opts.CheckCompliance {
		checkResult := s.checker.Check(doc, opts.ProcessType)
		result.Compliance = &checkResult

		if opts.WithSuggestions && s.suggester != nil && len(checkResult.Issues) > 0 {
			suggestions, err := s.suggester.Suggestions(ctx, doc.Type, checkResult.Issues)
			if err != nil {
				s.logger.Warn("failed to generate suggestions",
					"filename", input.Filename,
					"error", err,
				)
			} else {
				result.Suggestions = suggestions
			}
		}
	}

	return result
}

// stageTempFile は入力バイト列を一時 docx ファイルに書き出してパスを返す
func (s *Service) stageTempFile(content io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "adgm-review-*.docx")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return tmp.Name(), nil
}
