package document

import (
	"regexp"
	"strings"
)

var (
	// 署名セクションの検出キーワード
	signatureKeywords = []string{"signature", "signed", "witness", "executed"}

	// 日付セクションの検出パターン（12/31/2024 形式と 31 December 2024 形式）
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{4}`),
		regexp.MustCompile(`\d{1,2}\s+\w+\s+\d{4}`),
	}

	// 段落番号の検出パターン
	numberingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d+\.`),
		regexp.MustCompile(`^\d+\)`),
		regexp.MustCompile(`^\(\d+\)`),
		regexp.MustCompile(`^[a-z]\.`),
		regexp.MustCompile(`^[A-Z]\.`),
		regexp.MustCompile(`^\([a-z]\)`),
		regexp.MustCompile(`^\([A-Z]\)`),
	}

	headingLevelPattern = regexp.MustCompile(`heading\s*(\d+)`)
)

// Analyze は抽出済みの生データから Document を構築する
func Analyze(filename string, file File) *Document {
	content := extractContent(file)

	doc := &Document{
		Filename:  filename,
		Type:      Classify(content),
		Content:   content,
		WordCount: len(strings.Fields(content)),
		Metadata: Metadata{
			Title:          file.Properties.Title,
			Author:         file.Properties.Author,
			Subject:        file.Properties.Subject,
			Created:        file.Properties.Created,
			Modified:       file.Properties.Modified,
			LastModifiedBy: file.Properties.LastModifiedBy,
			Revision:       file.Properties.Revision,
		},
	}

	for i, para := range file.Paragraphs {
		text := strings.TrimSpace(para.Text)
		if text == "" {
			continue
		}
		doc.Paragraphs = append(doc.Paragraphs, Paragraph{
			Index:        i,
			Text:         text,
			Style:        para.Style,
			IsHeading:    isHeadingStyle(para.Style),
			HasNumbering: hasNumbering(text),
		})
	}

	for i, rows := range file.Tables {
		table := Table{
			Index: i,
			Rows:  len(rows),
		}
		for _, row := range rows {
			if len(row) > table.Columns {
				table.Columns = len(row)
			}
			cells := make([]string, 0, len(row))
			for _, cell := range row {
				cells = append(cells, strings.TrimSpace(cell))
			}
			table.Content = append(table.Content, cells)
		}
		doc.Tables = append(doc.Tables, table)
	}

	doc.Structure = analyzeStructure(doc)

	return doc
}

// extractContent は段落・テーブルセルの順に全テキストを連結する
func extractContent(file File) string {
	var parts []string

	for _, para := range file.Paragraphs {
		if text := strings.TrimSpace(para.Text); text != "" {
			parts = append(parts, text)
		}
	}

	for _, rows := range file.Tables {
		for _, row := range rows {
			for _, cell := range row {
				if text := strings.TrimSpace(cell); text != "" {
					parts = append(parts, text)
				}
			}
		}
	}

	return strings.Join(parts, "\n")
}

func analyzeStructure(doc *Document) Structure {
	structure := Structure{
		TotalParagraphs: len(doc.Paragraphs),
		TotalTables:     len(doc.Tables),
	}

	lower := strings.ToLower(doc.Content)
	for _, keyword := range signatureKeywords {
		if strings.Contains(lower, keyword) {
			structure.HasSignatureSection = true
			break
		}
	}

	for _, pattern := range datePatterns {
		if pattern.MatchString(doc.Content) {
			structure.HasDateSection = true
			break
		}
	}

	for _, para := range doc.Paragraphs {
		if para.IsHeading {
			structure.Headings = append(structure.Headings, Heading{
				Index: para.Index,
				Text:  para.Text,
				Level: headingLevel(para.Style),
			})
		}
	}

	return structure
}

func isHeadingStyle(style string) bool {
	lower := strings.ToLower(style)
	return strings.Contains(lower, "heading") || strings.Contains(lower, "title")
}

func headingLevel(style string) int {
	if m := headingLevelPattern.FindStringSubmatch(strings.ToLower(style)); m != nil {
		level := 0
		for _, r := range m[1] {
			level = level*10 + int(r-'0')
		}
		if level > 0 {
			return level
		}
	}
	return 1
}

func hasNumbering(text string) bool {
	for _, pattern := range numberingPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
