// Package extractor dispatches page extraction on the declared file type and
// enforces the never-fail contract: every document, however broken, comes
// back as at least one page so the pipeline can persist a (possibly
// degenerate) index instead of aborting the upload workflow.
package extractor

import (
	"context"
	"fmt"

	"github.com/opentutor/knowledge-service/internal/core/domain"
	"github.com/opentutor/knowledge-service/internal/infrastructure/extractor/docx"
	"github.com/opentutor/knowledge-service/internal/infrastructure/extractor/pdf"
	"github.com/opentutor/knowledge-service/internal/infrastructure/extractor/plaintext"
)

const imagePlaceholderText = "[Image file — use vision model to describe]"

type Dispatcher struct {
	params domain.IndexingParams
}

func New(params domain.IndexingParams) *Dispatcher {
	return &Dispatcher{params: params.Normalize()}
}

// ExtractPages never returns an error. Whole-document failures degrade to a
// single page whose text carries an inline error marker, matched by an
// extraction_failed warning so callers are not reduced to sniffing the text.
func (d *Dispatcher) ExtractPages(_ context.Context, path string, ft domain.FileType) ([]domain.RawPage, []domain.BuildWarning) {
	switch ft {
	case domain.FileTypePDF:
		pages, warns, err := pdf.Extract(path)
		if err != nil {
			return degraded(fmt.Sprintf("[PDF extraction error: %v]", err), err)
		}
		return renumber(pages), warns
	case domain.FileTypeDOCX:
		pages, warns, err := docx.Extract(path, d.params.ParagraphsPerPage)
		if err != nil {
			return degraded(fmt.Sprintf("[DOCX extraction error: %v]", err), err)
		}
		return renumber(pages), warns
	case domain.FileTypeText:
		pages, warns, err := plaintext.Extract(path, d.params.TextChunkRunes)
		if err != nil {
			return degraded(fmt.Sprintf("[Read error: %v]", err), err)
		}
		return renumber(pages), warns
	default:
		// Raw images and anything unrecognized: a single placeholder page.
		// Visual description belongs to a vision-capable collaborator, not
		// the extractor.
		return []domain.RawPage{{PageNum: 1, Text: imagePlaceholderText, IsImage: true}},
			[]domain.BuildWarning{{PageNum: 1, Kind: domain.WarnImagePlaceholder, Detail: path}}
	}
}

func degraded(marker string, err error) ([]domain.RawPage, []domain.BuildWarning) {
	return []domain.RawPage{{PageNum: 1, Text: marker}},
		[]domain.BuildWarning{{PageNum: 1, Kind: domain.WarnExtractionFailed, Detail: err.Error()}}
}

// renumber guarantees contiguous 1-based page numbers whatever a handler
// produced.
func renumber(pages []domain.RawPage) []domain.RawPage {
	for i := range pages {
		pages[i].PageNum = i + 1
	}
	return pages
}
