package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jinford/adgm-agent/internal/core/index"
)

const (
	// DefaultUpsertBatchSize はリクエストサイズを抑えるための書き込みバッチ上限
	DefaultUpsertBatchSize = 100

	// smallFileThreshold はダウンロード済みファイルの破損検知用の閾値
	// マニフェストのキャッシュはファイル存在のみで判定するため、
	// 途中で切れたダウンロードを警告するための簡易トリップワイヤ
	smallFileThreshold = 1024
)

// ServiceConfig は取り込みサービスの設定
type ServiceConfig struct {
	DocsDir         string
	ChunkSize       int
	ChunkOverlap    int
	UpsertBatchSize int
	SettleDelay     time.Duration
}

// PopulateResult は取り込み処理の結果を表す
type PopulateResult struct {
	AlreadyPopulated   bool
	DocumentsProcessed int
	DocumentsSkipped   int
	ChunksIndexed      int
}

// Service は公式参照コーパスの取得・分割・Embedding・インデックス登録を担う
type Service struct {
	index    index.Index
	embedder Embedder
	fetcher  Fetcher
	reader   TextReader
	manifest []ManifestEntry
	cfg      ServiceConfig
	sleep    func(time.Duration)
	logger   *slog.Logger
}

// ServiceOption は Service のオプション設定
type ServiceOption func(*Service)

// WithLogger は Service にロガーを設定する
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithManifest はマニフェストを差し替える（テスト用）
func WithManifest(manifest []ManifestEntry) ServiceOption {
	return func(s *Service) {
		s.manifest = manifest
	}
}

// WithSleeper は反映待ちのスリープ実装を差し替える（テスト用）
func WithSleeper(sleep func(time.Duration)) ServiceOption {
	return func(s *Service) {
		s.sleep = sleep
	}
}

// NewService は新しい Service を作成する
func NewService(idx index.Index, embedder Embedder, fetcher Fetcher, reader TextReader, cfg ServiceConfig, opts ...ServiceOption) *Service {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = DefaultChunkOverlap
	}
	if cfg.UpsertBatchSize <= 0 {
		cfg.UpsertBatchSize = DefaultUpsertBatchSize
	}

	svc := &Service{
		index:    idx,
		embedder: embedder,
		fetcher:  fetcher,
		reader:   reader,
		manifest: DefaultManifest(),
		cfg:      cfg,
		sleep:    time.Sleep,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

// Populate はインデックスが空の場合のみコーパスを取り込む（冪等）
// 既にレコードが存在する場合は一切書き込まない
func (s *Service) Populate(ctx context.Context) (*PopulateResult, error) {
	if err := s.index.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index: %w", err)
	}

	empty, err := s.index.IsEmpty(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check index stats: %w", err)
	}
	if !empty {
		s.logger.Info("knowledge base already populated, skipping ingestion")
		return &PopulateResult{AlreadyPopulated: true}, nil
	}

	s.downloadAll(ctx)
	return s.ingest(ctx)
}

// Refresh は全レコードを削除してからコーパスを再取り込みする
// 削除は結果整合のため、反映待ち時間を挟んでから再構築する
func (s *Service) Refresh(ctx context.Context) (*PopulateResult, error) {
	if err := s.index.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index: %w", err)
	}

	if err := s.index.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete existing records: %w", err)
	}

	if s.cfg.SettleDelay > 0 {
		s.logger.Info("waiting for deletion to settle", "delay", s.cfg.SettleDelay.String())
		s.sleep(s.cfg.SettleDelay)
	}

	s.downloadAll(ctx)
	return s.ingest(ctx)
}

// downloadAll はマニフェストの全文書をローカルに揃える
// 1件の失敗は記録して続行し、残りの取得を妨げない
func (s *Service) downloadAll(ctx context.Context) {
	for _, entry := range s.manifest {
		path := filepath.Join(s.cfg.DocsDir, entry.Filename)

		downloaded, err := s.fetcher.EnsureLocal(ctx, entry.URL, path)
		if err != nil {
			s.logger.Error("failed to download reference document",
				"filename", entry.Filename,
				"error", err,
			)
			continue
		}

		if downloaded {
			s.logger.Info("downloaded reference document", "filename", entry.Filename)
		} else {
			s.logger.Debug("reference document already cached", "filename", entry.Filename)
		}

		if info, err := os.Stat(path); err == nil && info.Size() < smallFileThreshold {
			s.logger.Warn("cached reference document is suspiciously small, it may be a partial download",
				"filename", entry.Filename,
				"size", info.Size(),
			)
		}
	}
}

// ingest はローカル文書をチャンク化・Embedding生成してインデックスへ登録する
func (s *Service) ingest(ctx context.Context) (*PopulateResult, error) {
	result := &PopulateResult{}
	var staged []ReferenceChunk

	for _, entry := range s.manifest {
		path := filepath.Join(s.cfg.DocsDir, entry.Filename)

		if _, err := os.Stat(path); err != nil {
			s.logger.Warn("reference document not available, skipping", "filename", entry.Filename)
			result.DocumentsSkipped++
			continue
		}

		content, err := s.reader.ExtractText(path)
		if err != nil {
			s.logger.Error("failed to extract text from reference document",
				"filename", entry.Filename,
				"error", err,
			)
			result.DocumentsSkipped++
			continue
		}

		chunks := s.stageChunks(entry, entry.DocumentID(), content)
		if len(chunks) == 0 {
			s.logger.Warn("reference document produced no chunks", "filename", entry.Filename)
			result.DocumentsSkipped++
			continue
		}

		staged = append(staged, chunks...)
		result.DocumentsProcessed++
		s.logger.Info("staged reference document",
			"filename", entry.Filename,
			"chunks", len(chunks),
		)
	}

	// 規則サマリーはダウンロード不要の固定テキストから合成する
	regChunks := s.stageChunks(regulationsEntry(), RegulationsDocumentID, RegulationsSummary())
	staged = append(staged, regChunks...)

	records, err := s.embedChunks(ctx, staged)
	if err != nil {
		return nil, err
	}

	if err := s.upsertBatched(ctx, records); err != nil {
		return nil, err
	}

	result.ChunksIndexed = len(records)
	s.logger.Info("knowledge base populated",
		"documents", result.DocumentsProcessed,
		"chunks", result.ChunksIndexed,
		"skipped", result.DocumentsSkipped,
	)

	return result, nil
}

// stageChunks は1文書分のテキストを ReferenceChunk 列に変換する
func (s *Service) stageChunks(entry ManifestEntry, documentID, content string) []ReferenceChunk {
	texts := SplitWords(content, s.cfg.ChunkSize, s.cfg.ChunkOverlap)

	chunks := make([]ReferenceChunk, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, ReferenceChunk{
			Text:          text,
			DocumentID:    documentID,
			Filename:      entry.Filename,
			ContentType:   entry.ContentType,
			Category:      entry.Category,
			DocumentType:  entry.DocumentType,
			Source:        entry.Source,
			IsOfficial:    true,
			SequenceIndex: i,
		})
	}
	return chunks
}

// embedChunks は全チャンクのEmbeddingを生成し、IndexRecordに変換する
func (s *Service) embedChunks(ctx context.Context, chunks []ReferenceChunk) ([]index.Record, error) {
	batchSize := s.embedder.MaxBatchSize()
	if batchSize <= 0 || batchSize > DefaultUpsertBatchSize {
		batchSize = DefaultUpsertBatchSize
	}

	records := make([]index.Record, 0, len(chunks))
	for start := 0; start < len(chunks); start += batchSize {
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Text
		}

		vectors, err := s.embedder.BatchEmbed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunks: %w", err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(batch))
		}

		for i, chunk := range batch {
			records = append(records, index.Record{
				ID:     chunk.ID(),
				Vector: vectors[i],
				Metadata: index.ChunkMetadata{
					Content:      chunk.Text,
					Filename:     chunk.Filename,
					DocumentID:   chunk.DocumentID,
					ContentType:  chunk.ContentType,
					Category:     chunk.Category,
					DocumentType: chunk.DocumentType,
					Source:       chunk.Source,
					ChunkIndex:   chunk.SequenceIndex,
					IsOfficial:   chunk.IsOfficial,
				},
			})
		}
	}

	return records, nil
}

// upsertBatched はレコードを100件以下のバッチに分けて書き込む
func (s *Service) upsertBatched(ctx context.Context, records []index.Record) error {
	batchSize := s.cfg.UpsertBatchSize

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}

		if err := s.index.Upsert(ctx, records[start:end]); err != nil {
			return fmt.Errorf("failed to upsert batch starting at %d: %w", start, err)
		}
	}

	return nil
}
