package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/opentutor/knowledge-service/internal/core/domain"
)

const emptyDocumentText = "[Empty document]"

// documentXML mirrors the parts of word/document.xml we read.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// Extract reads a DOCX archive and groups its non-empty paragraphs into
// synthetic pages. DOCX has no native page breaks, so the grouping size is
// the only notion of a "page" the index ever sees. An empty document yields
// exactly one placeholder page.
func Extract(path string, paragraphsPerPage int) ([]domain.RawPage, []domain.BuildWarning, error) {
	paragraphs, err := readParagraphs(path)
	if err != nil {
		return nil, nil, err
	}

	if len(paragraphs) == 0 {
		return []domain.RawPage{{PageNum: 1, Text: emptyDocumentText}},
			[]domain.BuildWarning{{PageNum: 1, Kind: domain.WarnEmptyPage, Detail: "document has no paragraphs"}},
			nil
	}

	pages := make([]domain.RawPage, 0, len(paragraphs)/paragraphsPerPage+1)
	for start := 0; start < len(paragraphs); start += paragraphsPerPage {
		end := start + paragraphsPerPage
		if end > len(paragraphs) {
			end = len(paragraphs)
		}
		pages = append(pages, domain.RawPage{
			PageNum: len(pages) + 1,
			Text:    strings.Join(paragraphs[start:end], "\n"),
		})
	}
	return pages, nil, nil
}

func readParagraphs(path string) ([]string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx archive: %w", err)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open document.xml: %w", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read document.xml: %w", err)
		}
		return parseParagraphs(content)
	}
	return nil, fmt.Errorf("word/document.xml not found in archive")
}

func parseParagraphs(content []byte) ([]string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse document.xml: %w", err)
	}

	out := make([]string, 0, len(doc.Body.Paragraphs))
	for _, para := range doc.Body.Paragraphs {
		var b strings.Builder
		for _, r := range para.Runs {
			for _, t := range r.Text {
				b.WriteString(t.Content)
			}
		}
		text := strings.TrimSpace(b.String())
		if text != "" {
			out = append(out, text)
		}
	}
	return out, nil
}
