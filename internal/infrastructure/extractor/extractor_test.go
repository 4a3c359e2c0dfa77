package extractor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opentutor/knowledge-service/internal/core/domain"
)

func TestExtractPagesUnknownTypeYieldsImagePlaceholder(t *testing.T) {
	d := New(domain.IndexingParams{})
	pages, warns := d.ExtractPages(context.Background(), "/some/photo.png", domain.ParseFileType("png"))

	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if !pages[0].IsImage {
		t.Fatalf("expected is_image flag")
	}
	if pages[0].Text != imagePlaceholderText {
		t.Fatalf("unexpected placeholder text: %q", pages[0].Text)
	}
	if len(warns) != 1 || warns[0].Kind != domain.WarnImagePlaceholder {
		t.Fatalf("expected image_placeholder warning, got %v", warns)
	}
}

func TestExtractPagesCorruptPDFDegradesToErrorPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("definitely not a pdf"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	d := New(domain.IndexingParams{})
	pages, warns := d.ExtractPages(context.Background(), path, domain.FileTypePDF)

	if len(pages) != 1 || pages[0].PageNum != 1 {
		t.Fatalf("expected single degraded page, got %v", pages)
	}
	if !strings.HasPrefix(pages[0].Text, "[PDF extraction error:") {
		t.Fatalf("expected inline error marker, got %q", pages[0].Text)
	}
	if len(warns) != 1 || warns[0].Kind != domain.WarnExtractionFailed {
		t.Fatalf("expected extraction_failed warning, got %v", warns)
	}
}

func TestExtractPagesMissingTextFileDegrades(t *testing.T) {
	d := New(domain.IndexingParams{})
	pages, warns := d.ExtractPages(context.Background(), filepath.Join(t.TempDir(), "gone.txt"), domain.FileTypeText)

	if len(pages) != 1 || !strings.HasPrefix(pages[0].Text, "[Read error:") {
		t.Fatalf("expected read error page, got %v", pages)
	}
	if len(warns) != 1 || warns[0].Kind != domain.WarnExtractionFailed {
		t.Fatalf("expected extraction_failed warning, got %v", warns)
	}
}

func TestExtractPagesTextFileContiguousNumbering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte(strings.Repeat("abcde ", 1000)), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	d := New(domain.IndexingParams{TextChunkRunes: 1000})
	pages, warns := d.ExtractPages(context.Background(), path, domain.FileTypeText)

	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if len(pages) != 6 {
		t.Fatalf("expected 6 pages, got %d", len(pages))
	}
	for i, p := range pages {
		if p.PageNum != i+1 {
			t.Fatalf("page %d numbered %d", i, p.PageNum)
		}
	}
}
