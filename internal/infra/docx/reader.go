package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/jinford/adgm-agent/internal/core/document"
)

const (
	documentPart       = "word/document.xml"
	corePropertiesPart = "docProps/core.xml"
)

// Reader は docx (OOXML) ファイルの読み取りを提供する
// docx はZIPアーカイブであり、本文は word/document.xml、
// コアプロパティは docProps/core.xml に格納されている
type Reader struct{}

// NewReader は新しい Reader を作成する
func NewReader() *Reader {
	return &Reader{}
}

// ReadFile は docx ファイルから段落・テーブル・コアプロパティを読み取る
func (r *Reader) ReadFile(path string) (*document.File, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx archive: %w", err)
	}
	defer archive.Close()

	file := &document.File{}

	body, err := readPart(&archive.Reader, documentPart)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("docx archive has no %s part", documentPart)
	}

	var doc xmlDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document body: %w", err)
	}

	for _, para := range doc.Body.Paragraphs {
		file.Paragraphs = append(file.Paragraphs, document.RawParagraph{
			Text:  para.text(),
			Style: para.style(),
		})
	}

	for _, table := range doc.Body.Tables {
		var rows [][]string
		for _, row := range table.Rows {
			var cells []string
			for _, cell := range row.Cells {
				texts := make([]string, 0, len(cell.Paragraphs))
				for _, para := range cell.Paragraphs {
					texts = append(texts, para.text())
				}
				cells = append(cells, strings.Join(texts, "\n"))
			}
			rows = append(rows, cells)
		}
		file.Tables = append(file.Tables, rows)
	}

	// コアプロパティは存在しない文書もあるため読めなくてもエラーにしない
	if core, err := readPart(&archive.Reader, corePropertiesPart); err == nil && core != nil {
		var props xmlCoreProperties
		if err := xml.Unmarshal(core, &props); err == nil {
			file.Properties = document.CoreProperties{
				Title:          props.Title,
				Author:         props.Creator,
				Subject:        props.Subject,
				Created:        parseW3CDTF(props.Created),
				Modified:       parseW3CDTF(props.Modified),
				LastModifiedBy: props.LastModifiedBy,
				Revision:       props.Revision,
			}
		}
	}

	return file, nil
}

// ExtractText は docx ファイルから本文テキストのみを抽出する
func (r *Reader) ExtractText(path string) (string, error) {
	file, err := r.ReadFile(path)
	if err != nil {
		return "", err
	}

	doc := document.Analyze(filepath.Base(path), *file)
	return doc.Content, nil
}

func readPart(archive *zip.Reader, name string) ([]byte, error) {
	for _, f := range archive.File {
		if f.Name != name {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, nil
}

// parseW3CDTF は dcterms の W3CDTF 形式（RFC3339のサブセット）をパースする
func parseW3CDTF(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &t
}

// word/document.xml の読み取りに必要な最小限の構造
// 名前空間接頭辞は encoding/xml がローカル名で照合するため省略できる

type xmlDocument struct {
	Body xmlBody `xml:"body"`
}

type xmlBody struct {
	Paragraphs []xmlParagraph `xml:"p"`
	Tables     []xmlTable     `xml:"tbl"`
}

type xmlParagraph struct {
	Props *xmlParagraphProps `xml:"pPr"`
	Runs  []xmlRun           `xml:"r"`
}

func (p xmlParagraph) text() string {
	var sb strings.Builder
	for _, run := range p.Runs {
		for _, t := range run.Texts {
			sb.WriteString(t)
		}
	}
	return sb.String()
}

func (p xmlParagraph) style() string {
	if p.Props == nil || p.Props.Style == nil {
		return ""
	}
	return p.Props.Style.Val
}

type xmlParagraphProps struct {
	Style *xmlVal `xml:"pStyle"`
}

type xmlVal struct {
	Val string `xml:"val,attr"`
}

type xmlRun struct {
	Texts []string `xml:"t"`
}

type xmlTable struct {
	Rows []xmlTableRow `xml:"tr"`
}

type xmlTableRow struct {
	Cells []xmlTableCell `xml:"tc"`
}

type xmlTableCell struct {
	Paragraphs []xmlParagraph `xml:"p"`
}

type xmlCoreProperties struct {
	Title          string `xml:"title"`
	Subject        string `xml:"subject"`
	Creator        string `xml:"creator"`
	Created        string `xml:"created"`
	Modified       string `xml:"modified"`
	LastModifiedBy string `xml:"lastModifiedBy"`
	Revision       string `xml:"revision"`
}
