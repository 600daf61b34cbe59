package compliance

// Severity は指摘事項の深刻度を表す
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// チェックカテゴリ名（スコア算出の分母となる6カテゴリ）
const (
	CategoryDocumentType     = "document_type"
	CategoryRedFlags         = "red_flags"
	CategoryMandatoryClauses = "mandatory_clauses"
	CategoryJurisdiction     = "jurisdiction"
	CategoryFormatting       = "formatting"
	CategorySignatures       = "signatures"
)

// CheckedCategories は常に実行される全チェックカテゴリ
var CheckedCategories = []string{
	CategoryDocumentType,
	CategoryRedFlags,
	CategoryMandatoryClauses,
	CategoryJurisdiction,
	CategoryFormatting,
	CategorySignatures,
}

// Issue はルールチェックで検出された1件の指摘事項を表す
// 重複排除は行わず、検出順に並ぶ
type Issue struct {
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Category    string   `json:"category"`
	Suggestion  string   `json:"suggestion"`
	MatchedText string   `json:"matchedText,omitempty"`
}

// Result はルールチェックの結果を表す
type Result struct {
	IsCompliant       bool     `json:"isCompliant"`
	ComplianceScore   float64  `json:"complianceScore"`
	TotalIssues       int      `json:"totalIssues"`
	Issues            []Issue  `json:"issues"`
	CheckedCategories []string `json:"checkedCategories"`
}

// Score はカテゴリ網羅率ベースのコンプライアンススコアを計算する
// 同一カテゴリ内の指摘件数はスコアに影響しない
func Score(issues []Issue) float64 {
	flagged := map[string]struct{}{}
	for _, issue := range issues {
		flagged[issue.Category] = struct{}{}
	}

	total := float64(len(CheckedCategories))
	score := (total - float64(len(flagged))) / total * 100
	if score < 0 {
		return 0
	}
	return score
}
