package generation

import (
	"encoding/json"
	"strings"

	"github.com/samber/mo"
)

// ParseAnalysis はLLMの応答テキストから構造化分析結果を取り出す
// 応答がJSONを含まない、あるいは壊れている場合でもエラーにはせず、
// 元の応答を保持したフォールバック結果を返す
func ParseAnalysis(response string) *LegalAnalysis {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")

	if start >= 0 && end > start {
		var analysis LegalAnalysis
		if err := json.Unmarshal([]byte(response[start:end+1]), &analysis); err == nil {
			return &analysis
		}
	}

	return &LegalAnalysis{
		Assessment: ComplianceAssessment{
			OverallCompliant: false,
			ComplianceScore:  50,
			Summary:          "Analysis completed - see full response",
		},
		RawResponse: mo.Some(response),
	}
}
