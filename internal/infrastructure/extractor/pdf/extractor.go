package pdf

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/opentutor/knowledge-service/internal/core/domain"
)

// Extract returns one page record per physical PDF page, 1-indexed. A page
// whose text extraction fails still yields a record with empty text so the
// position survives into the index; the failure is reported as a warning.
func Extract(path string) ([]domain.RawPage, []domain.BuildWarning, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]domain.RawPage, 0, total)
	var warnings []domain.BuildWarning

	for num := 1; num <= total; num++ {
		text, pageErr := extractPageText(reader, num)
		if pageErr != nil {
			warnings = append(warnings, domain.BuildWarning{
				PageNum: num,
				Kind:    domain.WarnExtractionFailed,
				Detail:  pageErr.Error(),
			})
			text = ""
		}
		pages = append(pages, domain.RawPage{
			PageNum: num,
			Text:    strings.TrimSpace(text),
		})
	}
	return pages, warnings, nil
}

func extractPageText(reader *pdf.Reader, num int) (text string, err error) {
	// The pdf package panics on some malformed content streams; positions
	// must be preserved, so a panic degrades to an empty page.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d text: %v", num, r)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d missing", num)
	}
	return page.GetPlainText(nil)
}
