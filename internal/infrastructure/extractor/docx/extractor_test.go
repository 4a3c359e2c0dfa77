package docx

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opentutor/knowledge-service/internal/core/domain"
)

func writeDocx(t *testing.T, paragraphs []string) string {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, p)
	}
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() + `</w:body></w:document>`

	path := filepath.Join(t.TempDir(), "doc.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	entry, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := entry.Write([]byte(document)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return path
}

func TestExtractGroupsParagraphsIntoPages(t *testing.T) {
	paragraphs := make([]string, 5)
	for i := range paragraphs {
		paragraphs[i] = fmt.Sprintf("paragraph %d", i+1)
	}

	pages, warns, err := Extract(writeDocx(t, paragraphs), 2)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if pages[0].Text != "paragraph 1\nparagraph 2" {
		t.Fatalf("unexpected first page: %q", pages[0].Text)
	}
	if pages[2].Text != "paragraph 5" {
		t.Fatalf("unexpected last page: %q", pages[2].Text)
	}
	for i, p := range pages {
		if p.PageNum != i+1 {
			t.Fatalf("page %d has page_num %d", i, p.PageNum)
		}
	}
}

func TestExtractSkipsEmptyParagraphs(t *testing.T) {
	pages, _, err := Extract(writeDocx(t, []string{"  ", "real text", ""}), 40)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(pages) != 1 || pages[0].Text != "real text" {
		t.Fatalf("unexpected pages: %v", pages)
	}
}

func TestExtractEmptyDocumentYieldsPlaceholder(t *testing.T) {
	pages, warns, err := Extract(writeDocx(t, nil), 40)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(pages) != 1 || pages[0].Text != emptyDocumentText {
		t.Fatalf("expected placeholder page, got %v", pages)
	}
	if len(warns) != 1 || warns[0].Kind != domain.WarnEmptyPage {
		t.Fatalf("expected empty_page warning, got %v", warns)
	}
}

func TestExtractRejectsNonZipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.docx")
	if err := os.WriteFile(path, []byte("plain text, no archive"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, _, err := Extract(path, 40); err == nil {
		t.Fatalf("expected error for non-zip input")
	}
}
