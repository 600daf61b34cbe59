package compliance

import (
	"fmt"
	"strings"

	"github.com/jinford/adgm-agent/internal/core/document"
)

// Checker は決定的なルールベースのコンプライアンスチェックを提供する
// 状態を持たず、呼び出しごとに独立して動作する
type Checker struct{}

// NewChecker は新しい Checker を作成する
func NewChecker() *Checker {
	return &Checker{}
}

// Check は6つの独立したチェックを実行し、結果を集約する
// processType が未知の場合、プロセス依存のチェック（文書種別・必須条項・管轄）は
// 指摘を返さない
func (c *Checker) Check(doc *document.Document, processType string) Result {
	var issues []Issue

	issues = append(issues, c.checkDocumentType(doc, processType)...)
	issues = append(issues, c.detectRedFlags(doc)...)
	issues = append(issues, c.checkMandatoryClauses(doc, processType)...)
	issues = append(issues, c.checkJurisdiction(doc, processType)...)
	issues = append(issues, c.checkFormatting(doc)...)
	issues = append(issues, c.checkSignatures(doc)...)

	return Result{
		IsCompliant:       len(issues) == 0,
		ComplianceScore:   Score(issues),
		TotalIssues:       len(issues),
		Issues:            issues,
		CheckedCategories: CheckedCategories,
	}
}

// checkDocumentType は文書種別がプロセスの要求文書一覧に含まれるかを確認する
func (c *Checker) checkDocumentType(doc *document.Document, processType string) []Issue {
	requirements, ok := processRequirements[processType]
	if !ok {
		return nil
	}

	docType := doc.Type
	if docType == "" {
		docType = document.UnknownDocumentType
	}
	if docType == document.UnknownDocumentType {
		return nil
	}

	for _, required := range requirements.RequiredDocuments {
		if docType == required {
			return nil
		}
	}

	return []Issue{{
		Location:    "Document Type",
		Description: fmt.Sprintf("Document type %q may not be required for %s", docType, processType),
		Severity:    SeverityMedium,
		Category:    CategoryDocumentType,
		Suggestion:  fmt.Sprintf("Verify if this document is needed for %s", processType),
	}}
}

// detectRedFlags は本文に対する固定レッドフラグパターンを走査する
// マッチごとに1件の指摘を生成し、位置はマッチを含む行（50文字で切り詰め）で表す
func (c *Checker) detectRedFlags(doc *document.Document) []Issue {
	var issues []Issue

	for _, rule := range redFlagRules {
		for _, loc := range rule.pattern.FindAllStringIndex(doc.Content, -1) {
			line, lineNumber := enclosingLine(doc.Content, loc[0])
			if rule.unlessLineContains != "" && strings.Contains(line, rule.unlessLineContains) {
				continue
			}

			issues = append(issues, Issue{
				Location:    formatLocation(lineNumber, line),
				Description: rule.description,
				Severity:    rule.severity,
				Category:    rule.category,
				Suggestion:  suggestionFor(rule.category),
				MatchedText: doc.Content[loc[0]:loc[1]],
			})
		}
	}

	return issues
}

// checkMandatoryClauses はプロセスが要求する必須条項の存在を確認する
// 大文字小文字を区別しない部分一致で判定する
func (c *Checker) checkMandatoryClauses(doc *document.Document, processType string) []Issue {
	requirements, ok := processRequirements[processType]
	if !ok {
		return nil
	}

	lower := strings.ToLower(doc.Content)
	var issues []Issue

	for _, clause := range requirements.MandatoryClauses {
		if !strings.Contains(lower, strings.ToLower(clause)) {
			issues = append(issues, Issue{
				Location:    "Document Content",
				Description: fmt.Sprintf("Missing mandatory clause: %s", clause),
				Severity:    SeverityHigh,
				Category:    CategoryMandatoryClauses,
				Suggestion:  fmt.Sprintf("Add %s clause as required for %s", clause, processType),
			})
		}
	}

	return issues
}

// checkJurisdiction はADGM管轄の明示と連邦参照の不在を確認する
// 両方の違反は同一文書上で独立に検出されうる
func (c *Checker) checkJurisdiction(doc *document.Document, processType string) []Issue {
	requirements, ok := processRequirements[processType]
	if !ok {
		return nil
	}

	var issues []Issue

	mentioned := false
	for _, keyword := range requirements.JurisdictionKeywords {
		if strings.Contains(doc.Content, keyword) {
			mentioned = true
			break
		}
	}
	if !mentioned {
		issues = append(issues, Issue{
			Location:    "Jurisdiction Clause",
			Description: "ADGM jurisdiction not properly specified",
			Severity:    SeverityHigh,
			Category:    CategoryJurisdiction,
			Suggestion:  "Specify ADGM as the governing jurisdiction and court system",
		})
	}

	for _, rule := range federalReferencePatterns {
		loc := rule.pattern.FindStringIndex(doc.Content)
		if loc == nil {
			continue
		}
		if rule.unlessLineContains != "" {
			line, _ := enclosingLine(doc.Content, loc[0])
			if strings.Contains(line, rule.unlessLineContains) {
				continue
			}
		}

		issues = append(issues, Issue{
			Location:    "Jurisdiction Reference",
			Description: "Incorrect reference to UAE federal jurisdiction",
			Severity:    SeverityHigh,
			Category:    CategoryJurisdiction,
			Suggestion:  "Replace with ADGM jurisdiction and regulations",
		})
	}

	return issues
}

// checkFormatting は構造フラグ（署名・日付・見出し）を確認する
func (c *Checker) checkFormatting(doc *document.Document) []Issue {
	var issues []Issue

	if !doc.Structure.HasSignatureSection {
		issues = append(issues, Issue{
			Location:    "Document End",
			Description: "Missing signature section",
			Severity:    SeverityMedium,
			Category:    CategoryFormatting,
			Suggestion:  "Add proper signature section with witness requirements",
		})
	}

	if !doc.Structure.HasDateSection {
		issues = append(issues, Issue{
			Location:    "Document Header/Footer",
			Description: "Missing date section",
			Severity:    SeverityLow,
			Category:    CategoryFormatting,
			Suggestion:  "Add document execution date",
		})
	}

	if len(doc.Structure.Headings) == 0 {
		issues = append(issues, Issue{
			Location:    "Document Structure",
			Description: "No proper heading structure found",
			Severity:    SeverityLow,
			Category:    CategoryFormatting,
			Suggestion:  "Use proper heading styles for better document structure",
		})
	}

	return issues
}

// checkSignatures は署名セクションの必須要素（signature/witness/date）を確認する
// 欠落要素をまとめて1件の指摘として返す
func (c *Checker) checkSignatures(doc *document.Document) []Issue {
	lower := strings.ToLower(doc.Content)

	elements := []struct {
		token       string
		description string
	}{
		{"signature", "Signature line"},
		{"witness", "Witness section"},
		{"date", "Date field"},
	}

	var missing []string
	for _, element := range elements {
		if !strings.Contains(lower, element.token) {
			missing = append(missing, element.description)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return []Issue{{
		Location:    "Signature Section",
		Description: fmt.Sprintf("Missing signature elements: %s", strings.Join(missing, ", ")),
		Severity:    SeverityMedium,
		Category:    CategorySignatures,
		Suggestion:  "Add complete signature section with all required elements",
	}}
}

// enclosingLine は指定位置を含む行とその行番号（1始まり）を返す
func enclosingLine(content string, position int) (string, int) {
	lines := strings.Split(content, "\n")
	current := 0

	for i, line := range lines {
		if position >= current && position <= current+len(line) {
			return line, i + 1
		}
		current += len(line) + 1 // 改行分
	}

	return "", 0
}

// formatLocation は行の位置表記を生成する（可読性のため50文字で切り詰め）
func formatLocation(lineNumber int, line string) string {
	if lineNumber == 0 {
		return "Unknown location"
	}
	if len(line) > 50 {
		return fmt.Sprintf("Paragraph %d: %s...", lineNumber, line[:50])
	}
	return fmt.Sprintf("Paragraph %d: %s", lineNumber, line)
}
