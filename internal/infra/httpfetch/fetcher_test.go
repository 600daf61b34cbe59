package httpfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureLocalDownloadsMissingFile(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte("document bytes"))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "docs", "template.docx")
	fetcher := NewFetcherWithClient(server.Client())

	downloaded, err := fetcher.EnsureLocal(context.Background(), server.URL, path)
	require.NoError(t, err)
	assert.True(t, downloaded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "document bytes", string(data))
	assert.Contains(t, gotUserAgent, "Mozilla/5.0")
}

func TestEnsureLocalSkipsExistingFile(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte("new content"))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "template.docx")
	require.NoError(t, os.WriteFile(path, []byte("cached content"), 0o644))

	fetcher := NewFetcherWithClient(server.Client())

	downloaded, err := fetcher.EnsureLocal(context.Background(), server.URL, path)
	require.NoError(t, err)
	assert.False(t, downloaded)
	assert.Zero(t, requests)

	// 既存ファイルは上書きされない
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cached content", string(data))
}

func TestEnsureLocalFailsOnNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "template.docx")
	fetcher := NewFetcherWithClient(server.Client())

	_, err := fetcher.EnsureLocal(context.Background(), server.URL, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
