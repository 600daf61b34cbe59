package compliance

import "regexp"

// ProcessRequirements はプロセス種別ごとの要求事項を表す
type ProcessRequirements struct {
	RequiredDocuments    []string
	MandatoryClauses     []string
	JurisdictionKeywords []string
}

// processRequirements はプロセス種別 → 要求事項の固定テーブル
var processRequirements = map[string]ProcessRequirements{
	"Company Incorporation": {
		RequiredDocuments: []string{
			"Articles of Association",
			"Memorandum of Association",
			"Board Resolution",
			"UBO Declaration Form",
			"Register of Members and Directors",
		},
		MandatoryClauses: []string{
			"registered office",
			"share capital",
			"objects clause",
			"liability clause",
			"directors powers",
		},
		JurisdictionKeywords: []string{"ADGM", "Abu Dhabi Global Market"},
	},
	"Business Licensing": {
		RequiredDocuments: []string{
			"License Application Form",
			"Business Plan",
			"Articles of Association",
			"Commercial License",
		},
		MandatoryClauses: []string{
			"business activities",
			"registered office",
			"authorized activities",
		},
		JurisdictionKeywords: []string{"ADGM"},
	},
	"Constitutional Amendments": {
		RequiredDocuments: []string{
			"Board Resolution",
			"Shareholder Resolution",
			"Amended Articles",
		},
		MandatoryClauses: []string{
			"amendment clause",
			"special resolution",
			"effective date",
		},
		JurisdictionKeywords: []string{"ADGM"},
	},
}

// ProcessTypes は対応しているプロセス種別の一覧を返す
func ProcessTypes() []string {
	return []string{"Company Incorporation", "Business Licensing", "Constitutional Amendments"}
}

// redFlagRule はレッドフラグ検出ルールを表す
// unlessLineContains が非空の場合、マッチ行にその文字列が含まれていれば除外する
// （正規表現の否定先読みはRE2で使えないため、行単位の除外条件として表現する）
type redFlagRule struct {
	pattern            *regexp.Regexp
	description        string
	severity           Severity
	category           string
	unlessLineContains string
}

var redFlagRules = []redFlagRule{
	{
		pattern:            regexp.MustCompile(`(?i)UAE Federal Court|Dubai Court|Abu Dhabi Court`),
		description:        "Incorrect jurisdiction - should specify ADGM Courts",
		severity:           SeverityHigh,
		category:           CategoryJurisdiction,
		unlessLineContains: "ADGM",
	},
	{
		pattern:            regexp.MustCompile(`(?i)UAE Commercial Code`),
		description:        "Reference to UAE Commercial Code instead of ADGM regulations",
		severity:           SeverityHigh,
		category:           CategoryJurisdiction,
		unlessLineContains: "ADGM",
	},
	{
		pattern:     regexp.MustCompile(`(?i)\[[^\[\]]*\]|\{[^{}]*\}|TBD|TO BE DETERMINED`),
		description: "Template placeholder not filled",
		severity:    SeverityMedium,
		category:    CategoryRedFlags,
	},
	{
		pattern:     regexp.MustCompile(`(?i)shall be deemed|may be construed|could be interpreted`),
		description: "Ambiguous legal language",
		severity:    SeverityMedium,
		category:    CategoryRedFlags,
	},
	{
		pattern:            regexp.MustCompile(`(?i)witness.*signature`),
		description:        "Signature section may not comply with ADGM requirements",
		severity:           SeverityLow,
		category:           CategoryFormatting,
		unlessLineContains: "ADGM",
	},
}

// federalReferencePatterns は管轄チェックで使う連邦参照の禁止パターン
var federalReferencePatterns = []redFlagRule{
	{
		pattern: regexp.MustCompile(`(?i)UAE Federal Court`),
	},
	{
		pattern:            regexp.MustCompile(`(?i)Dubai International Financial Centre`),
		unlessLineContains: "ADGM",
	},
	{
		pattern:            regexp.MustCompile(`(?i)UAE Commercial Code`),
		unlessLineContains: "ADGM",
	},
}

// redFlagSuggestions はカテゴリ → 修正提案の対応表
var redFlagSuggestions = map[string]string{
	CategoryJurisdiction: "Update to specify ADGM as governing jurisdiction",
	CategoryRedFlags:     "Fill in all template placeholders and use clear, definitive legal language",
	CategoryFormatting:   "Follow ADGM document formatting requirements",
}

func suggestionFor(category string) string {
	if suggestion, ok := redFlagSuggestions[category]; ok {
		return suggestion
	}
	return "Review and correct as per ADGM requirements"
}
