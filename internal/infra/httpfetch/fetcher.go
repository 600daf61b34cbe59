package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jinford/adgm-agent/internal/core/corpus"
)

// userAgent はアセット配信側にブロックされないためのブラウザ相当のUA
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultTimeout はダウンロード1件あたりのタイムアウト
const DefaultTimeout = 60 * time.Second

// Fetcher はHTTP経由のファイル取得を提供する
// キャッシュ判定はファイルの存在のみで行う（チェックサム検証はしない）
type Fetcher struct {
	client *http.Client
}

// NewFetcher は新しい Fetcher を作成する
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: DefaultTimeout},
	}
}

// NewFetcherWithClient はHTTPクライアントを指定して Fetcher を作成する（テスト用）
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// EnsureLocal は path にファイルが存在しない場合のみ url からダウンロードする
// 戻り値はダウンロードを実行したかどうか
// 失敗時は書きかけのファイルを残さない
func (f *Fetcher) EnsureLocal(ctx context.Context, url, path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status %d downloading %s", resp.StatusCode, url)
	}

	out, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := out.Close(); err != nil {
		os.Remove(path)
		return false, fmt.Errorf("failed to close %s: %w", path, err)
	}

	return true, nil
}

// インターフェース実装の確認
var _ corpus.Fetcher = (*Fetcher)(nil)
