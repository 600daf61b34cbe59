package review

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/adgm-agent/internal/core/compliance"
	"github.com/jinford/adgm-agent/internal/core/document"
)

type fakeParser struct {
	file  *document.File
	err   error
	paths []string
}

func (f *fakeParser) ReadFile(path string) (*document.File, error) {
	f.paths = append(f.paths, path)
	if f.err != nil {
		return nil, f.err
	}
	if f.file != nil {
		return f.file, nil
	}
	return articlesFile(), nil
}

type fakeAnalyzer struct {
	response string
	calls    int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, documentContent, processType string) string {
	f.calls++
	return f.response
}

type fakeSuggester struct {
	response string
	err      error
	issues   [][]compliance.Issue
}

func (f *fakeSuggester) Suggestions(ctx context.Context, documentType string, issues []compliance.Issue) (string, error) {
	f.issues = append(f.issues, issues)
	return f.response, f.err
}

// articlesFile はルールチェックをすべて満たす定款ファイルを組み立てる
func articlesFile() *document.File {
	return &document.File{
		Paragraphs: []document.RawParagraph{
			{Text: "ARTICLES OF ASSOCIATION", Style: "Heading1"},
			{Text: "The registered office of the company shall be situated in ADGM.", Style: "Normal"},
			{Text: "The share capital of the company is USD 10,000.", Style: "Normal"},
			{Text: "Objects clause: the objects of the company are unrestricted.", Style: "Normal"},
			{Text: "Liability clause: the liability of the members is limited.", Style: "Normal"},
			{Text: "The directors powers are exercised in accordance with ADGM Companies Regulations 2020.", Style: "Normal"},
			{Text: "Signature: ________  Witness: ________  Date: 12 March 2024", Style: "Normal"},
		},
	}
}

// federalCourtFile はUAE連邦裁判所を参照する不備のあるファイルを組み立てる
func federalCourtFile() *document.File {
	return &document.File{
		Paragraphs: []document.RawParagraph{
			{Text: "Articles of Association", Style: "Heading1"},
			{Text: "Disputes shall be resolved before the UAE Federal Courts."},
		},
	}
}

func input(filename string) InputDocument {
	return InputDocument{
		Filename: filename,
		Content:  strings.NewReader("docx bytes"),
	}
}

func TestReviewProducesCompliantReport(t *testing.T) {
	parser := &fakeParser{}
	analyzer := &fakeAnalyzer{response: "analysis result"}

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(parser, compliance.NewChecker(), analyzer, WithClock(func() time.Time { return fixed }))

	report, err := svc.Review(context.Background(), []InputDocument{input("articles.docx")}, Options{
		ProcessType:     "Company Incorporation",
		CheckCompliance: true,
		RunAnalysis:     true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, fixed, report.GeneratedAt)
	assert.Equal(t, "Company Incorporation", report.ProcessType)
	assert.True(t, report.OverallCompliant)
	assert.Zero(t, report.TotalIssues)

	require.Len(t, report.Documents, 1)
	result := report.Documents[0]
	assert.Equal(t, "articles.docx", result.Filename)
	assert.Equal(t, "Articles of Association", result.DocumentType)
	assert.Equal(t, "analysis result", result.Analysis)
	require.NotNil(t, result.Compliance)
	assert.True(t, result.Compliance.IsCompliant)
	assert.Empty(t, result.Error)
}

func TestReviewAggregatesIssuesAcrossDocuments(t *testing.T) {
	parser := &fakeParser{file: federalCourtFile()}
	svc := NewService(parser, compliance.NewChecker(), &fakeAnalyzer{})

	report, err := svc.Review(context.Background(), []InputDocument{input("bad.docx")}, Options{
		ProcessType:     "Company Incorporation",
		CheckCompliance: true,
	})
	require.NoError(t, err)

	assert.False(t, report.OverallCompliant)
	assert.Greater(t, report.TotalIssues, 0)
	require.Len(t, report.Documents, 1)
	assert.Equal(t, report.TotalIssues, len(report.Documents[0].Compliance.Issues))
}

func TestReviewIsolatesParseFailures(t *testing.T) {
	parser := &fakeParser{err: errors.New("not a zip archive")}
	svc := NewService(parser, compliance.NewChecker(), &fakeAnalyzer{})

	report, err := svc.Review(context.Background(), []InputDocument{
		input("broken.docx"),
	}, Options{ProcessType: "Company Incorporation", CheckCompliance: true})
	require.NoError(t, err)

	require.Len(t, report.Documents, 1)
	assert.Contains(t, report.Documents[0].Error, "not a zip archive")
	assert.Nil(t, report.Documents[0].Compliance)

	// 失敗した文書はスコア集計に影響しない
	assert.True(t, report.OverallCompliant)
	assert.Zero(t, report.TotalIssues)
}

func TestReviewRemovesTempFileOnAllPaths(t *testing.T) {
	tests := []struct {
		name   string
		parser *fakeParser
	}{
		{name: "success", parser: &fakeParser{}},
		{name: "parse failure", parser: &fakeParser{err: errors.New("corrupt")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.parser, compliance.NewChecker(), &fakeAnalyzer{})

			_, err := svc.Review(context.Background(), []InputDocument{input("doc.docx")}, Options{
				ProcessType:     "Company Incorporation",
				CheckCompliance: true,
			})
			require.NoError(t, err)

			require.Len(t, tt.parser.paths, 1)
			staged := tt.parser.paths[0]
			assert.True(t, filepath.IsAbs(staged))

			_, statErr := os.Stat(staged)
			assert.True(t, os.IsNotExist(statErr), "temp file should be removed: %s", staged)
		})
	}
}

func TestReviewGeneratesSuggestionsForFlaggedDocuments(t *testing.T) {
	parser := &fakeParser{file: federalCourtFile()}
	suggester := &fakeSuggester{response: "1. Replace federal court references."}

	svc := NewService(parser, compliance.NewChecker(), &fakeAnalyzer{}, WithSuggester(suggester))

	report, err := svc.Review(context.Background(), []InputDocument{input("bad.docx")}, Options{
		ProcessType:     "Company Incorporation",
		CheckCompliance: true,
		WithSuggestions: true,
	})
	require.NoError(t, err)

	require.Len(t, report.Documents, 1)
	assert.Equal(t, "1. Replace federal court references.", report.Documents[0].Suggestions)
	require.Len(t, suggester.issues, 1)
	assert.NotEmpty(t, suggester.issues[0])
}

func TestReviewSuggestionFailureIsNonFatal(t *testing.T) {
	parser := &fakeParser{file: federalCourtFile()}
	suggester := &fakeSuggester{err: errors.New("llm unavailable")}

	svc := NewService(parser, compliance.NewChecker(), &fakeAnalyzer{}, WithSuggester(suggester))

	report, err := svc.Review(context.Background(), []InputDocument{input("bad.docx")}, Options{
		ProcessType:     "Company Incorporation",
		CheckCompliance: true,
		WithSuggestions: true,
	})
	require.NoError(t, err)

	require.Len(t, report.Documents, 1)
	assert.Empty(t, report.Documents[0].Suggestions)
	assert.Empty(t, report.Documents[0].Error)
}

func TestReviewRejectsEmptyBatch(t *testing.T) {
	svc := NewService(&fakeParser{}, compliance.NewChecker(), &fakeAnalyzer{})

	_, err := svc.Review(context.Background(), nil, Options{ProcessType: "Company Incorporation"})
	require.Error(t, err)
}

func TestWriteReportProducesIndentedJSON(t *testing.T) {
	report := &Report{
		ID:               "test-id",
		GeneratedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		ProcessType:      "Company Incorporation",
		OverallCompliant: true,
		Documents: []DocumentResult{
			{Filename: "articles.docx", DocumentType: "Articles of Association"},
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteReport(&sb, report))

	out := sb.String()
	assert.Contains(t, out, "\"id\": \"test-id\"")
	assert.Contains(t, out, "\"processType\": \"Company Incorporation\"")
	assert.Contains(t, out, "\n  ")
	assert.True(t, strings.HasSuffix(out, "\n"))
}
