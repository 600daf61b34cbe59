package corpus

import "strings"

const (
	// DefaultChunkSize はチャンクあたりの単語数
	DefaultChunkSize = 1000
	// DefaultChunkOverlap は隣接チャンク間で重複させる単語数
	DefaultChunkOverlap = 200
)

// SplitWords はテキストを単語単位の重複付きチャンクに分割する
// ステップ幅は size - overlap。末尾チャンクは size より短くなりうる
// 空のチャンクは結果に含めない
func SplitWords(content string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
		if overlap >= size {
			overlap = size / 5
		}
	}

	words := strings.Fields(content)
	if len(words) == 0 {
		return nil
	}

	step := size - overlap
	var chunks []string
	for i := 0; i < len(words); i += step {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}

	return chunks
}
