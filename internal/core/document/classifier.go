package document

import "strings"

// documentTypeKeywords はキーワード → 文書種別ラベルの対応表
// 上から順に完全一致フレーズを探し、見つからない場合は共起パターンで判定する
var documentTypeKeywords = []struct {
	keyword string
	docType string
}{
	{"articles of association", "Articles of Association"},
	{"memorandum of association", "Memorandum of Association"},
	{"board resolution", "Board Resolution"},
	{"shareholder resolution", "Shareholder Resolution"},
	{"incorporation application", "Incorporation Application Form"},
	{"ubo declaration", "UBO Declaration Form"},
	{"register of members", "Register of Members and Directors"},
	{"employment contract", "Employment Contract"},
	{"license application", "License Application"},
}

// cooccurrencePatterns はフレーズ一致しなかった場合のフォールバック判定
var cooccurrencePatterns = []struct {
	all     []string
	any     []string
	docType string
}{
	{all: []string{"articles", "association"}, docType: "Articles of Association"},
	{all: []string{"memorandum", "association"}, docType: "Memorandum of Association"},
	{all: []string{"resolution", "board"}, docType: "Board Resolution"},
	{all: []string{"shareholders", "resolution"}, docType: "Shareholder Resolution"},
	{any: []string{"ultimate beneficial owner", "ubo"}, docType: "UBO Declaration Form"},
	{all: []string{"register"}, any: []string{"members", "directors"}, docType: "Register of Members and Directors"},
	{all: []string{"employment", "contract"}, docType: "Employment Contract"},
	{all: []string{"license", "application"}, docType: "License Application"},
}

// Classify は文書の本文から文書種別を判定する
func Classify(content string) string {
	lower := strings.ToLower(content)

	for _, entry := range documentTypeKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.docType
		}
	}

	for _, pattern := range cooccurrencePatterns {
		matched := true
		for _, keyword := range pattern.all {
			if !strings.Contains(lower, keyword) {
				matched = false
				break
			}
		}
		if matched && len(pattern.any) > 0 {
			matched = false
			for _, keyword := range pattern.any {
				if strings.Contains(lower, keyword) {
					matched = true
					break
				}
			}
		}
		if matched {
			return pattern.docType
		}
	}

	return UnknownDocumentType
}
