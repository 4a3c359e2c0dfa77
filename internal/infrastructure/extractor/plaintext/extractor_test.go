package plaintext

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opentutor/knowledge-service/internal/core/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestExtractChunksByRunes(t *testing.T) {
	// 5 code points per chunk; multibyte runes must count as one.
	content := strings.Repeat("é", 12)
	pages, warns, err := Extract(writeFile(t, content), 5)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	for i, p := range pages {
		if p.PageNum != i+1 {
			t.Fatalf("page %d has page_num %d", i, p.PageNum)
		}
	}
	if got := len([]rune(pages[0].Text)); got != 5 {
		t.Fatalf("first chunk has %d runes, want 5", got)
	}
	if got := len([]rune(pages[2].Text)); got != 2 {
		t.Fatalf("last chunk has %d runes, want 2", got)
	}
}

func TestExtractSingleChunk(t *testing.T) {
	pages, warns, err := Extract(writeFile(t, "short"), 2000)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(warns) != 0 || len(pages) != 1 || pages[0].Text != "short" {
		t.Fatalf("unexpected result: pages=%v warns=%v", pages, warns)
	}
}

func TestExtractEmptyFileYieldsPlaceholderPage(t *testing.T) {
	pages, warns, err := Extract(writeFile(t, ""), 2000)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(pages) != 1 || pages[0].PageNum != 1 || pages[0].Text != "" {
		t.Fatalf("expected one empty page, got %v", pages)
	}
	if len(warns) != 1 || warns[0].Kind != domain.WarnEmptyPage {
		t.Fatalf("expected empty_page warning, got %v", warns)
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, _, err := Extract(filepath.Join(t.TempDir(), "nope.txt"), 2000)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
