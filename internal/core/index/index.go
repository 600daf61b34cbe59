package index

import "context"

// Record はベクトルインデックスに格納する1レコードを表す
// 取り込み時に1チャンクにつき1件作成され、以後更新されない
// （更新は全削除 + 再取り込みでのみ行う）
type Record struct {
	ID       string
	Vector   []float32
	Metadata ChunkMetadata
}

// ChunkMetadata はレコードに付随するチャンクメタデータを表す
type ChunkMetadata struct {
	Content      string `json:"content"`
	Filename     string `json:"filename"`
	DocumentID   string `json:"documentID"`
	ContentType  string `json:"contentType"`
	Category     string `json:"category"`
	DocumentType string `json:"documentType"`
	Source       string `json:"source"`
	ChunkIndex   int    `json:"chunkIndex"`
	IsOfficial   bool   `json:"isOfficial"`
}

// Match は近傍検索の結果1件を表す
// Score はコサイン類似度（1 - コサイン距離）
type Match struct {
	ID       string
	Score    float64
	Metadata ChunkMetadata
}

// Filter は検索時のメタデータフィルタを表す
type Filter struct {
	// OfficialOnly は公式コーパス由来のレコードのみに限定する
	OfficialOnly bool
}

// Stats はインデックスの統計情報を表す
type Stats struct {
	TotalVectorCount int
}

// Index はベクトルインデックスへのアクセスを抽象化するインターフェース
//
// 実装はリトライを内蔵しない。一時的な失敗は呼び出し側が処理する
// （生成クライアントとは対照的な方針）。
// また、取り込みと検索の同時実行はサポートしない。
type Index interface {
	// EnsureIndex はインデックスが存在しない場合に作成する（冪等）
	EnsureIndex(ctx context.Context) error

	// IsEmpty は格納ベクトル数がゼロかどうかを返す
	IsEmpty(ctx context.Context) (bool, error)

	// Upsert はレコードを書き込む
	// リクエストサイズを抑えるため、実装は100件以下のバッチに分割して書き込む
	Upsert(ctx context.Context, records []Record) error

	// Query はコサイン類似度による近傍検索を実行する
	Query(ctx context.Context, vector []float32, topK int, filter Filter) ([]Match, error)

	// DeleteAll は全レコードを削除する
	// バックエンドの削除は結果整合のため、呼び出し側は直後に検索してはならない
	DeleteAll(ctx context.Context) error

	// Stats はインデックスの統計情報を返す
	Stats(ctx context.Context) (Stats, error)
}
