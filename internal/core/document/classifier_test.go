package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "direct phrase match",
			content: "ARTICLES OF ASSOCIATION of Example Ltd",
			want:    "Articles of Association",
		},
		{
			name:    "board resolution phrase",
			content: "This Board Resolution is passed by the directors",
			want:    "Board Resolution",
		},
		{
			name:    "cooccurrence fallback for shareholders resolution",
			content: "The shareholders hereby pass the following resolution",
			want:    "Shareholder Resolution",
		},
		{
			name:    "ubo abbreviation",
			content: "Declaration concerning the UBO of the company",
			want:    "UBO Declaration Form",
		},
		{
			name:    "register with directors",
			content: "Register containing the names of all directors",
			want:    "Register of Members and Directors",
		},
		{
			name:    "unknown",
			content: "A plain letter with no corporate keywords",
			want:    UnknownDocumentType,
		},
		{
			name:    "empty content",
			content: "",
			want:    UnknownDocumentType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.content))
		})
	}
}

func TestAnalyzeStructureFlags(t *testing.T) {
	file := File{
		Paragraphs: []RawParagraph{
			{Text: "BOARD RESOLUTION", Style: "Heading1"},
			{Text: "1. The directors resolve to change the trade name.", Style: "Normal"},
			{Text: "Signed on 12/01/2024 in the presence of a witness.", Style: "Normal"},
			{Text: "   ", Style: "Normal"}, // 空段落は除外される
		},
		Tables: [][][]string{
			{{"Director", "Signature"}, {"Jane Doe", ""}},
		},
	}

	doc := Analyze("resolution.docx", file)

	assert.Equal(t, "Board Resolution", doc.Type)
	assert.Len(t, doc.Paragraphs, 3)
	assert.True(t, doc.Paragraphs[1].HasNumbering)
	assert.True(t, doc.Structure.HasSignatureSection)
	assert.True(t, doc.Structure.HasDateSection)
	assert.Len(t, doc.Structure.Headings, 1)
	assert.Equal(t, 1, doc.Structure.Headings[0].Level)
	assert.Equal(t, 1, doc.Structure.TotalTables)
	assert.Contains(t, doc.Content, "Director")
	assert.Greater(t, doc.WordCount, 0)
}

func TestAnalyzeWithoutSignatureOrHeadings(t *testing.T) {
	file := File{
		Paragraphs: []RawParagraph{
			{Text: "Some plain body text without any closing block.", Style: "Normal"},
		},
	}

	doc := Analyze("plain.docx", file)

	assert.False(t, doc.Structure.HasSignatureSection)
	assert.False(t, doc.Structure.HasDateSection)
	assert.Empty(t, doc.Structure.Headings)
}
