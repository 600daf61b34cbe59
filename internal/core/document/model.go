package document

import "time"

// File はオフィス文書から抽出した生データを表す
// 文書オブジェクトモデル（段落・テーブル・コアプロパティ）の読み取りは
// infra 層のリーダーが担い、core 層はこの構造のみに依存する
type File struct {
	Paragraphs []RawParagraph
	Tables     [][][]string
	Properties CoreProperties
}

// RawParagraph はスタイル情報付きの段落を表す
type RawParagraph struct {
	Text  string
	Style string
}

// CoreProperties は文書のコアメタデータを表す
type CoreProperties struct {
	Title          string
	Author         string
	Subject        string
	Created        *time.Time
	Modified       *time.Time
	LastModifiedBy string
	Revision       string
}

// Document は解析済みの文書を表す
// パース完了後は読み取り専用として扱う
type Document struct {
	Filename   string     `json:"filename"`
	Type       string     `json:"documentType"`
	Content    string     `json:"-"`
	Paragraphs []Paragraph `json:"-"`
	Tables     []Table    `json:"-"`
	Metadata   Metadata   `json:"metadata"`
	Structure  Structure  `json:"structure"`
	WordCount  int        `json:"wordCount"`
}

// Paragraph は書式情報付きの段落を表す
type Paragraph struct {
	Index        int    `json:"index"`
	Text         string `json:"text"`
	Style        string `json:"style"`
	IsHeading    bool   `json:"isHeading"`
	HasNumbering bool   `json:"hasNumbering"`
}

// Table はテーブルの内容を表す
type Table struct {
	Index   int        `json:"index"`
	Rows    int        `json:"rows"`
	Columns int        `json:"columns"`
	Content [][]string `json:"content"`
}

// Heading は見出しを表す
type Heading struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Metadata は文書のメタデータを表す
type Metadata struct {
	Title          string     `json:"title"`
	Author         string     `json:"author"`
	Subject        string     `json:"subject"`
	Created        *time.Time `json:"created,omitempty"`
	Modified       *time.Time `json:"modified,omitempty"`
	LastModifiedBy string     `json:"lastModifiedBy"`
	Revision       string     `json:"revision"`
}

// Structure は文書の構造的特徴を表す
type Structure struct {
	TotalParagraphs     int       `json:"totalParagraphs"`
	TotalTables         int       `json:"totalTables"`
	Headings            []Heading `json:"headings"`
	HasSignatureSection bool      `json:"hasSignatureSection"`
	HasDateSection      bool      `json:"hasDateSection"`
}

// UnknownDocumentType は分類できなかった文書の種別ラベル
const UnknownDocumentType = "Unknown Document Type"
