package analysis

import (
	"fmt"
	"strings"

	"github.com/jinford/adgm-agent/internal/core/generation"
	"github.com/jinford/adgm-agent/internal/core/index"
)

// BuildAnalysisPrompt は公式コンテキスト付きの文書分析プロンプトを構築する
func BuildAnalysisPrompt(processType, documentContent string, contextMatches []index.Match, charLimit int) string {
	var sb strings.Builder

	sb.WriteString("You are an expert ADGM legal assistant with access to official ADGM documents.\n")
	sb.WriteString("Analyze the document against official ADGM regulations and templates.\n\n")

	sb.WriteString(fmt.Sprintf("Process Type: %s\n\n", processType))

	sb.WriteString("Official ADGM Reference Context:\n")
	sb.WriteString(formatContextBlock(contextMatches))
	sb.WriteString("\n\n")

	sb.WriteString("Document Content to Analyze:\n")
	sb.WriteString(generation.TruncateRunes(documentContent, charLimit))
	sb.WriteString("\n\n")

	sb.WriteString("Provide analysis based ONLY on official ADGM sources:\n")
	sb.WriteString("1. Compliance with official ADGM templates and regulations\n")
	sb.WriteString("2. Specific violations of ADGM Companies Regulations 2020\n")
	sb.WriteString("3. Required corrections with exact ADGM regulatory citations\n")
	sb.WriteString("4. Jurisdiction compliance (ADGM Courts vs UAE Federal)\n\n")
	sb.WriteString("Base all recommendations on the official ADGM sources provided above.\n")

	return sb.String()
}

// formatContextBlock は検索結果を出典ラベル付きのコンテキストブロックに整形する
func formatContextBlock(matches []index.Match) string {
	chunks := make([]string, 0, len(matches))
	for _, match := range matches {
		chunks = append(chunks, fmt.Sprintf("[%s - %s]: %s",
			match.Metadata.Source,
			match.Metadata.DocumentType,
			match.Metadata.Content,
		))
	}
	return strings.Join(chunks, "\n\n")
}
