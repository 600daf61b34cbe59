package corpus

import (
	"context"
	"fmt"
)

// ManifestEntry は公式参照文書1件の取得・メタデータ定義を表す
type ManifestEntry struct {
	Filename     string
	URL          string
	ContentType  string
	Category     string
	DocumentType string
	Source       string
}

// DocumentID はローカルファイル名から文書IDを導出する
func (e ManifestEntry) DocumentID() string {
	return trimDocxSuffix(e.Filename)
}

// ReferenceChunk は参照文書から切り出された1チャンクを表す
// 取り込み時に作成され、以後不変。DocumentID + SequenceIndex で一意に識別される
type ReferenceChunk struct {
	Text          string
	DocumentID    string
	Filename      string
	ContentType   string
	Category      string
	DocumentType  string
	Source        string
	IsOfficial    bool
	SequenceIndex int
}

// ID はインデックスレコードの識別子を返す
func (c ReferenceChunk) ID() string {
	return fmt.Sprintf("%s_chunk_%d", c.DocumentID, c.SequenceIndex)
}

// Embedder はテキストのEmbedding生成インターフェース
type Embedder interface {
	// BatchEmbed は複数テキストのEmbeddingをまとめて生成する
	BatchEmbed(ctx context.Context, texts []string) ([][]float32, error)

	// MaxBatchSize は一度に処理できる最大テキスト数を返す
	MaxBatchSize() int
}

// Fetcher はリモート文書の取得インターフェース
type Fetcher interface {
	// EnsureLocal は path にファイルが存在しない場合のみ url からダウンロードする
	// 戻り値はダウンロードを実行したかどうか
	EnsureLocal(ctx context.Context, url, path string) (bool, error)
}

// TextReader はローカル文書からのテキスト抽出インターフェース
type TextReader interface {
	ExtractText(path string) (string, error)
}

func trimDocxSuffix(filename string) string {
	const suffix = ".docx"
	if len(filename) > len(suffix) && filename[len(filename)-len(suffix):] == suffix {
		return filename[:len(filename)-len(suffix)]
	}
	return filename
}
