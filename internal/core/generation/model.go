package generation

import (
	"context"

	"github.com/samber/mo"
)

// Client はLLM通信インターフェース
type Client interface {
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
}

// ComplianceAssessment はLLMによる全体評価を表す
type ComplianceAssessment struct {
	OverallCompliant bool    `json:"overall_compliant"`
	ComplianceScore  float64 `json:"compliance_score"`
	Summary          string  `json:"summary"`
}

// AnalysisIssue はLLMが特定した個別の問題を表す
type AnalysisIssue struct {
	Category       string `json:"category"`
	Severity       string `json:"severity"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	ADGMReference  string `json:"adgm_reference"`
	Recommendation string `json:"recommendation"`
}

// LegalAnalysis はLLMによる構造化された法的分析結果を表す
// JSONとして解釈できなかった場合は RawResponse に元の応答テキストを保持する
type LegalAnalysis struct {
	Assessment      ComplianceAssessment `json:"compliance_assessment"`
	Issues          []AnalysisIssue      `json:"issues_identified"`
	PositiveAspects []string             `json:"positive_aspects"`
	Recommendations []string             `json:"recommendations"`
	NextSteps       string               `json:"next_steps"`

	RawResponse mo.Option[string] `json:"-"`
}

// Structured はJSONとして解釈できた結果かどうかを返す
func (a *LegalAnalysis) Structured() bool {
	return a.RawResponse.IsAbsent()
}
