package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jinford/adgm-agent/internal/core/compliance"
)

// analysisDocumentCharLimit はプロンプトに含める文書本文の最大文字数
const analysisDocumentCharLimit = 3000

// BuildLegalAnalysisPrompt は構造化された法的分析用のプロンプトを構築する
// 応答はJSON形式を要求するが、LLMが従わない場合もあるためパーサ側でフォールバックする
func BuildLegalAnalysisPrompt(documentContent, documentType, context string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert ADGM legal analyst. Analyze the following legal document for compliance with ADGM regulations.\n\n")
	sb.WriteString(fmt.Sprintf("Document Type: %s\n\n", documentType))

	if context != "" {
		sb.WriteString(fmt.Sprintf("Additional Context: %s\n\n", context))
	}

	sb.WriteString("Document Content:\n")
	sb.WriteString(TruncateRunes(documentContent, analysisDocumentCharLimit))
	sb.WriteString("\n\n")

	sb.WriteString("Please provide a structured analysis in the following JSON format:\n")
	sb.WriteString(`{
    "compliance_assessment": {
        "overall_compliant": true/false,
        "compliance_score": 0-100,
        "summary": "Brief overall assessment"
    },
    "issues_identified": [
        {
            "category": "jurisdiction/formatting/content/other",
            "severity": "High/Medium/Low",
            "description": "Issue description",
            "location": "Where in document",
            "adgm_reference": "Relevant ADGM regulation if applicable",
            "recommendation": "How to fix"
        }
    ],
    "positive_aspects": [
        "List of compliant elements found"
    ],
    "recommendations": [
        "Specific actionable recommendations"
    ],
    "next_steps": "What the user should do next"
}`)
	sb.WriteString("\n\nFocus on ADGM-specific requirements and provide practical, actionable advice.\n")

	return sb.String()
}

// buildSuggestionsPrompt は指摘事項に対する改善提案用のプロンプトを構築する
func buildSuggestionsPrompt(documentType string, issues []compliance.Issue) string {
	issuesJSON, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		issuesJSON = []byte("[]")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("As an ADGM legal expert, provide specific improvement suggestions for a %s that has the following issues:\n\n", documentType))
	sb.WriteString("Issues Found:\n")
	sb.Write(issuesJSON)
	sb.WriteString("\n\nPlease provide:\n")
	sb.WriteString("1. Priority order for fixing issues\n")
	sb.WriteString("2. Specific wording suggestions where applicable\n")
	sb.WriteString("3. ADGM regulatory references\n")
	sb.WriteString("4. Template examples if helpful\n")
	sb.WriteString("5. Common mistakes to avoid\n\n")
	sb.WriteString("Make your suggestions practical and implementable.\n")

	return sb.String()
}

// TruncateRunes は文字数ベースで文字列を切り詰め、切り詰めた場合は省略記号を付ける
func TruncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
