package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/adgm-agent/internal/core/compliance"
)

func TestParseAnalysisExtractsJSONFromWrappedResponse(t *testing.T) {
	response := "Here is my analysis:\n```json\n" + `{
		"compliance_assessment": {
			"overall_compliant": true,
			"compliance_score": 92.5,
			"summary": "Document is largely compliant"
		},
		"issues_identified": [
			{
				"category": "formatting",
				"severity": "Low",
				"description": "Missing page numbers",
				"location": "Throughout",
				"adgm_reference": "",
				"recommendation": "Add page numbers"
			}
		],
		"positive_aspects": ["Correct jurisdiction clause"],
		"recommendations": ["Add page numbers"],
		"next_steps": "Submit for registration"
	}` + "\n```\nLet me know if you need more detail."

	analysis := ParseAnalysis(response)

	assert.True(t, analysis.Structured())
	assert.True(t, analysis.Assessment.OverallCompliant)
	assert.InDelta(t, 92.5, analysis.Assessment.ComplianceScore, 0.001)
	require.Len(t, analysis.Issues, 1)
	assert.Equal(t, "formatting", analysis.Issues[0].Category)
	assert.Equal(t, "Submit for registration", analysis.NextSteps)
}

func TestParseAnalysisFallsBackOnNonJSONResponse(t *testing.T) {
	response := "The document looks mostly fine but I cannot produce JSON today."

	analysis := ParseAnalysis(response)

	assert.False(t, analysis.Structured())
	assert.False(t, analysis.Assessment.OverallCompliant)
	assert.InDelta(t, 50, analysis.Assessment.ComplianceScore, 0.001)
	assert.Equal(t, response, analysis.RawResponse.MustGet())
}

func TestParseAnalysisFallsBackOnBrokenJSON(t *testing.T) {
	response := `{"compliance_assessment": {"overall_compliant": true,` // 途中で切れた応答

	analysis := ParseAnalysis(response)

	assert.False(t, analysis.Structured())
	assert.Equal(t, response, analysis.RawResponse.MustGet())
}

type stubLLM struct {
	response string
	err      error
	prompts  []string
}

func (s *stubLLM) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func TestAnalyzeLegalDocumentTruncatesContent(t *testing.T) {
	llm := &stubLLM{response: `{"compliance_assessment": {"overall_compliant": true, "compliance_score": 100, "summary": "ok"}}`}
	analyzer := NewAnalyzer(llm)

	longContent := strings.Repeat("a", 5000)
	_, err := analyzer.AnalyzeLegalDocument(context.Background(), longContent, "Articles of Association", "")
	require.NoError(t, err)

	require.Len(t, llm.prompts, 1)
	assert.NotContains(t, llm.prompts[0], strings.Repeat("a", 3001))
	assert.Contains(t, llm.prompts[0], strings.Repeat("a", 3000)+"...")
}

func TestAnalyzeLegalDocumentPropagatesLLMFailure(t *testing.T) {
	llm := &stubLLM{err: errors.New("rate limited")}
	analyzer := NewAnalyzer(llm)

	_, err := analyzer.AnalyzeLegalDocument(context.Background(), "content", "Articles of Association", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestSuggestionsSkipsLLMWhenNoIssues(t *testing.T) {
	llm := &stubLLM{response: "should not be called"}
	analyzer := NewAnalyzer(llm)

	suggestions, err := analyzer.Suggestions(context.Background(), "Articles of Association", nil)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
	assert.Empty(t, llm.prompts)
}

func TestSuggestionsIncludesIssuesInPrompt(t *testing.T) {
	llm := &stubLLM{response: "1. Fix the jurisdiction clause first."}
	analyzer := NewAnalyzer(llm)

	issues := []compliance.Issue{
		{
			Location:    "Document body",
			Description: "Missing ADGM jurisdiction clause",
			Severity:    compliance.SeverityHigh,
			Category:    compliance.CategoryJurisdiction,
		},
	}

	suggestions, err := analyzer.Suggestions(context.Background(), "Articles of Association", issues)
	require.NoError(t, err)
	assert.Equal(t, "1. Fix the jurisdiction clause first.", suggestions)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Missing ADGM jurisdiction clause")
	assert.Contains(t, llm.prompts[0], "Articles of Association")
}
