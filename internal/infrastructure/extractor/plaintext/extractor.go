package plaintext

import (
	"fmt"
	"os"

	"github.com/opentutor/knowledge-service/internal/core/domain"
)

// Extract splits a text file into fixed-size chunks counted in code points,
// one page per chunk. A genuinely empty file still yields one empty page so
// the at-least-one-record contract holds for every file type; the degenerate
// case is reported as a warning instead of being dropped.
func Extract(path string, chunkRunes int) ([]domain.RawPage, []domain.BuildWarning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read text file: %w", err)
	}

	runes := []rune(string(raw))
	if len(runes) == 0 {
		return []domain.RawPage{{PageNum: 1, Text: ""}},
			[]domain.BuildWarning{{PageNum: 1, Kind: domain.WarnEmptyPage, Detail: "empty source file"}},
			nil
	}

	pages := make([]domain.RawPage, 0, len(runes)/chunkRunes+1)
	for start := 0; start < len(runes); start += chunkRunes {
		end := start + chunkRunes
		if end > len(runes) {
			end = len(runes)
		}
		pages = append(pages, domain.RawPage{
			PageNum: len(pages) + 1,
			Text:    string(runes[start:end]),
		})
	}
	return pages, nil, nil
}
