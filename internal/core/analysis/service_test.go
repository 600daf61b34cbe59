package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/adgm-agent/internal/core/index"
)

type stubIndex struct {
	matches  []index.Match
	err      error
	lastTopK int
	filters  []index.Filter
}

func (s *stubIndex) EnsureIndex(ctx context.Context) error                    { return nil }
func (s *stubIndex) IsEmpty(ctx context.Context) (bool, error)                { return false, nil }
func (s *stubIndex) Upsert(ctx context.Context, records []index.Record) error { return nil }
func (s *stubIndex) DeleteAll(ctx context.Context) error                      { return nil }
func (s *stubIndex) Stats(ctx context.Context) (index.Stats, error) {
	return index.Stats{}, nil
}

func (s *stubIndex) Query(ctx context.Context, vector []float32, topK int, filter index.Filter) ([]index.Match, error) {
	s.lastTopK = topK
	s.filters = append(s.filters, filter)
	return s.matches, s.err
}

var _ index.Index = (*stubIndex)(nil)

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []float32{0.5, 0.5, 0.5}, nil
}

type stubLLM struct {
	response string
	err      error
	prompts  []string
}

func (s *stubLLM) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func match(score float64, source, docType, content string) index.Match {
	return index.Match{
		ID:    "id",
		Score: score,
		Metadata: index.ChunkMetadata{
			Content:      content,
			Source:       source,
			DocumentType: docType,
			IsOfficial:   true,
		},
	}
}

func TestAnalyzeFiltersContextByScoreAndLimit(t *testing.T) {
	idx := &stubIndex{matches: []index.Match{
		match(0.95, "ADGM Registration Authority", "Model Articles", "chunk one"),
		match(0.90, "ADGM Registration Authority", "Model Articles", "chunk two"),
		match(0.85, "ADGM Legal Framework", "Regulations", "chunk three"),
		match(0.80, "ADGM Legal Framework", "Regulations", "chunk four"),
		match(0.50, "ADGM Legal Framework", "Regulations", "chunk five"),
	}}
	llm := &stubLLM{response: "analysis text"}

	svc := NewService(idx, &stubEmbedder{}, llm, Config{})

	result := svc.Analyze(context.Background(), "document content", "Company Incorporation")
	assert.Equal(t, "analysis text", result)

	require.Len(t, llm.prompts, 1)
	prompt := llm.prompts[0]

	// 閾値超えの上位3件のみ採用される
	assert.Contains(t, prompt, "[ADGM Registration Authority - Model Articles]: chunk one")
	assert.Contains(t, prompt, "chunk two")
	assert.Contains(t, prompt, "chunk three")
	assert.NotContains(t, prompt, "chunk four")
	assert.NotContains(t, prompt, "chunk five")

	assert.Contains(t, prompt, "Process Type: Company Incorporation")
	assert.Equal(t, DefaultTopK, idx.lastTopK)
	require.Len(t, idx.filters, 1)
	assert.True(t, idx.filters[0].OfficialOnly)
}

func TestAnalyzeTruncatesDocumentContent(t *testing.T) {
	idx := &stubIndex{}
	llm := &stubLLM{response: "ok"}
	svc := NewService(idx, &stubEmbedder{}, llm, Config{})

	longContent := strings.Repeat("x", 3000)
	svc.Analyze(context.Background(), longContent, "Company Incorporation")

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], strings.Repeat("x", 2000)+"...")
	assert.NotContains(t, llm.prompts[0], strings.Repeat("x", 2001))
}

func TestAnalyzeNeverReturnsErrorToCaller(t *testing.T) {
	tests := []struct {
		name     string
		embedder *stubEmbedder
		idx      *stubIndex
		llm      *stubLLM
	}{
		{
			name:     "embedding failure",
			embedder: &stubEmbedder{err: errors.New("embed failed")},
			idx:      &stubIndex{},
			llm:      &stubLLM{},
		},
		{
			name:     "query failure",
			embedder: &stubEmbedder{},
			idx:      &stubIndex{err: errors.New("query failed")},
			llm:      &stubLLM{},
		},
		{
			name:     "generation failure",
			embedder: &stubEmbedder{},
			idx:      &stubIndex{},
			llm:      &stubLLM{err: errors.New("llm failed")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.idx, tt.embedder, tt.llm, Config{})

			result := svc.Analyze(context.Background(), "content", "Company Incorporation")

			// 失敗してもエラーテキストを返し、panicやエラー戻り値にはしない
			assert.Contains(t, result, "Error in official ADGM analysis:")
		})
	}
}

func TestSearchKnowledgeBaseFiltersByThreshold(t *testing.T) {
	idx := &stubIndex{matches: []index.Match{
		match(0.9, "ADGM Registration Authority", "Model Articles", "high relevance"),
		match(0.61, "ADGM Legal Framework", "Regulations", "medium relevance"),
		match(0.6, "ADGM Legal Framework", "Regulations", "at threshold"),
		match(0.3, "ADGM Legal Framework", "Regulations", "low relevance"),
	}}

	svc := NewService(idx, &stubEmbedder{}, &stubLLM{}, Config{})

	results, err := svc.SearchKnowledgeBase(context.Background(), "jurisdiction clause", 10)
	require.NoError(t, err)

	// 0.6ちょうどは含まれない（閾値は排他的）
	require.Len(t, results, 2)
	assert.Equal(t, "high relevance", results[0].Content)
	assert.InDelta(t, 0.9, results[0].Score, 0.001)
	assert.Equal(t, "medium relevance", results[1].Content)
	assert.Equal(t, 10, idx.lastTopK)
}

func TestSearchKnowledgeBaseDefaultsTopK(t *testing.T) {
	idx := &stubIndex{}
	svc := NewService(idx, &stubEmbedder{}, &stubLLM{}, Config{})

	_, err := svc.SearchKnowledgeBase(context.Background(), "query", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTopK, idx.lastTopK)
}

func TestSearchKnowledgeBasePropagatesQueryFailure(t *testing.T) {
	idx := &stubIndex{err: errors.New("connection refused")}
	svc := NewService(idx, &stubEmbedder{}, &stubLLM{}, Config{})

	_, err := svc.SearchKnowledgeBase(context.Background(), "query", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
