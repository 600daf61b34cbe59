package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"github.com/jinford/adgm-agent/internal/core/index"
)

const (
	// DefaultTable は参照チャンクを格納するテーブル名
	DefaultTable = "reference_chunks"

	// upsertBatchSize は1回のラウンドトリップで書き込む最大レコード数
	upsertBatchSize = 100
)

// VectorIndex は pgvector を使用した index.Index 実装
// スコアはコサイン類似度（1 - コサイン距離）として返す
type VectorIndex struct {
	pool      *pgxpool.Pool
	table     string
	dimension int
	logger    *slog.Logger
}

type vectorIndexOptions struct {
	table     string
	dimension int
	logger    *slog.Logger
}

// VectorIndexOption は VectorIndex のオプション設定
type VectorIndexOption func(*vectorIndexOptions)

// WithTable はテーブル名を上書きする
func WithTable(table string) VectorIndexOption {
	return func(o *vectorIndexOptions) {
		o.table = table
	}
}

// WithDimension はベクトル次元を上書きする
func WithDimension(dimension int) VectorIndexOption {
	return func(o *vectorIndexOptions) {
		o.dimension = dimension
	}
}

// WithIndexLogger は VectorIndex にロガーを設定する
func WithIndexLogger(logger *slog.Logger) VectorIndexOption {
	return func(o *vectorIndexOptions) {
		o.logger = logger
	}
}

// NewVectorIndex は接続プールを作成して VectorIndex を返す
// 接続確認のため起動時に一度 Ping する
func NewVectorIndex(ctx context.Context, connString string, opts ...VectorIndexOption) (*VectorIndex, error) {
	options := vectorIndexOptions{
		table:     DefaultTable,
		dimension: 384,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	// vector 型をpgxの型システムに登録する
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &VectorIndex{
		pool:      pool,
		table:     options.table,
		dimension: options.dimension,
		logger:    options.logger,
	}, nil
}

// Close は接続プールを閉じる
func (v *VectorIndex) Close() {
	v.pool.Close()
}

// EnsureIndex はテーブルとHNSWインデックスを作成する（冪等）
func (v *VectorIndex) EnsureIndex(ctx context.Context) error {
	if _, err := v.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			embedding VECTOR(%d) NOT NULL,
			metadata JSONB NOT NULL
		)`, v.sanitizedTable(), v.dimension)
	if _, err := v.pool.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("failed to create table %s: %w", v.table, err)
	}

	createIndex := fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS %s ON %s USING hnsw (embedding vector_cosine_ops)",
		pgx.Identifier{v.table + "_embedding_idx"}.Sanitize(),
		v.sanitizedTable(),
	)
	if _, err := v.pool.Exec(ctx, createIndex); err != nil {
		return fmt.Errorf("failed to create vector index: %w", err)
	}

	return nil
}

// IsEmpty は格納ベクトル数がゼロかどうかを返す
func (v *VectorIndex) IsEmpty(ctx context.Context) (bool, error) {
	stats, err := v.Stats(ctx)
	if err != nil {
		return false, err
	}
	return stats.TotalVectorCount == 0, nil
}

// Upsert はレコードを書き込む。既存IDは上書きされる
// 内部で100件以下のバッチに分割して書き込む
func (v *VectorIndex) Upsert(ctx context.Context, records []index.Record) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, embedding, metadata) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			metadata = EXCLUDED.metadata`, v.sanitizedTable())

	for start := 0; start < len(records); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(records) {
			end = len(records)
		}

		batch := &pgx.Batch{}
		for _, record := range records[start:end] {
			metadata, err := json.Marshal(record.Metadata)
			if err != nil {
				return fmt.Errorf("failed to encode metadata for %s: %w", record.ID, err)
			}
			batch.Queue(query, record.ID, pgvector.NewVector(record.Vector), metadata)
		}

		if err := v.pool.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to upsert records: %w", err)
		}

		v.logger.Debug("upserted record batch", "count", end-start)
	}

	return nil
}

// Query はコサイン類似度による近傍検索を実行する
func (v *VectorIndex) Query(ctx context.Context, vector []float32, topK int, filter index.Filter) ([]index.Match, error) {
	query := fmt.Sprintf(`
		SELECT id, metadata, 1 - (embedding <=> $1) AS score
		FROM %s`, v.sanitizedTable())
	if filter.OfficialOnly {
		query += " WHERE (metadata->>'isOfficial')::boolean"
	}
	query += " ORDER BY embedding <=> $1 LIMIT $2"

	rows, err := v.pool.Query(ctx, query, pgvector.NewVector(vector), topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}
	defer rows.Close()

	var matches []index.Match
	for rows.Next() {
		var (
			match    index.Match
			metadata []byte
		)
		if err := rows.Scan(&match.ID, &metadata, &match.Score); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		if err := json.Unmarshal(metadata, &match.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata for %s: %w", match.ID, err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read matches: %w", err)
	}

	return matches, nil
}

// DeleteAll は全レコードを削除する
func (v *VectorIndex) DeleteAll(ctx context.Context) error {
	if _, err := v.pool.Exec(ctx, "DELETE FROM "+v.sanitizedTable()); err != nil {
		return fmt.Errorf("failed to delete records: %w", err)
	}
	return nil
}

// Stats はインデックスの統計情報を返す
func (v *VectorIndex) Stats(ctx context.Context) (index.Stats, error) {
	var count int
	row := v.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+v.sanitizedTable())
	if err := row.Scan(&count); err != nil {
		return index.Stats{}, fmt.Errorf("failed to count records: %w", err)
	}
	return index.Stats{TotalVectorCount: count}, nil
}

func (v *VectorIndex) sanitizedTable() string {
	return pgx.Identifier{v.table}.Sanitize()
}

// コンパイル時の型チェック
var _ index.Index = (*VectorIndex)(nil)
