package compliance

import (
	"fmt"
	"strings"
	"time"
)

// GenerateReport は人間可読なコンプライアンスレポートを生成する
func GenerateReport(result Result, now time.Time) string {
	var sb strings.Builder

	status := "NON-COMPLIANT"
	if result.IsCompliant {
		status = "COMPLIANT"
	}

	sb.WriteString("ADGM COMPLIANCE ANALYSIS REPORT\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("OVERALL COMPLIANCE STATUS: %s\n", status))
	sb.WriteString(fmt.Sprintf("Compliance Score: %.1f%%\n", result.ComplianceScore))
	sb.WriteString(fmt.Sprintf("Total Issues Found: %d\n\n", result.TotalIssues))

	if len(result.Issues) == 0 {
		sb.WriteString("No compliance issues found.\n")
		return sb.String()
	}

	sb.WriteString("ISSUES BREAKDOWN:\n")
	for _, severity := range []Severity{SeverityHigh, SeverityMedium, SeverityLow} {
		count := 0
		for _, issue := range result.Issues {
			if issue.Severity == severity {
				count++
			}
		}
		if count > 0 {
			sb.WriteString(fmt.Sprintf("- %s Priority: %d issues\n", severity, count))
		}
	}

	sb.WriteString("\nDETAILED ISSUES:\n")
	for i, issue := range result.Issues {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, issue.Description))
		sb.WriteString(fmt.Sprintf("   Location: %s\n", issue.Location))
		sb.WriteString(fmt.Sprintf("   Severity: %s\n", issue.Severity))
		sb.WriteString(fmt.Sprintf("   Category: %s\n", issue.Category))
		sb.WriteString(fmt.Sprintf("   Suggestion: %s\n", issue.Suggestion))
	}

	return sb.String()
}
