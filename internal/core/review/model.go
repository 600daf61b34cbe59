package review

import (
	"context"
	"io"
	"time"

	"github.com/jinford/adgm-agent/internal/core/compliance"
	"github.com/jinford/adgm-agent/internal/core/document"
)

// InputDocument はレビュー対象の1文書を表す
// Content は docx ファイルのバイト列を提供する
type InputDocument struct {
	Filename string
	Content  io.Reader
}

// Options はレビュー処理の実行オプション
type Options struct {
	ProcessType     string
	CheckCompliance bool
	RunAnalysis     bool
	WithSuggestions bool
}

// DocumentResult は1文書のレビュー結果を表す
// 解析に失敗した文書は Error のみを持ち、他のフィールドは空になる
type DocumentResult struct {
	Filename     string             `json:"filename"`
	DocumentType string             `json:"documentType,omitempty"`
	WordCount    int                `json:"wordCount,omitempty"`
	Compliance   *compliance.Result `json:"compliance,omitempty"`
	Analysis     string             `json:"ragAnalysis,omitempty"`
	Suggestions  string             `json:"suggestions,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// Report はレビュー全体の結果を表す
type Report struct {
	ID               string           `json:"id"`
	GeneratedAt      time.Time        `json:"generatedAt"`
	ProcessType      string           `json:"processType"`
	Documents        []DocumentResult `json:"documents"`
	OverallCompliant bool             `json:"overallCompliant"`
	TotalIssues      int              `json:"totalIssues"`
}

// Parser は docx ファイルの読み取りインターフェース
type Parser interface {
	ReadFile(path string) (*document.File, error)
}

// Analyzer は公式コーパスを根拠としたRAG分析インターフェース
// 分析の失敗はエラーではなく結果テキストとして返る
type Analyzer interface {
	Analyze(ctx context.Context, documentContent, processType string) string
}

// Suggester は指摘事項に対する改善提案の生成インターフェース
type Suggester interface {
	Suggestions(ctx context.Context, documentType string, issues []compliance.Issue) (string, error)
}
