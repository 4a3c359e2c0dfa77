package domain

// WarningKind classifies a non-fatal defect observed while building an index.
type WarningKind string

const (
	WarnExtractionFailed WarningKind = "extraction_failed"
	WarnEmptyPage        WarningKind = "empty_page"
	WarnSummaryFallback  WarningKind = "summary_fallback"
	WarnImagePlaceholder WarningKind = "image_placeholder"
)

// BuildWarning records one degraded page. PageNum is zero when the warning
// applies to the whole document.
type BuildWarning struct {
	PageNum int         `json:"page_num,omitempty"`
	Kind    WarningKind `json:"kind"`
	Detail  string      `json:"detail,omitempty"`
}

// BuildReport carries the best-effort index together with a structured record
// of everything that degraded along the way. The pipeline never aborts on
// data-quality problems; the catalog uses the warnings to distinguish a clean
// index from one built over placeholders.
type BuildReport struct {
	Index    *PageIndex     `json:"index"`
	Warnings []BuildWarning `json:"warnings,omitempty"`
}

// Degraded reports whether any page was built from placeholder or fallback
// content.
func (r BuildReport) Degraded() bool {
	for _, w := range r.Warnings {
		switch w.Kind {
		case WarnExtractionFailed, WarnEmptyPage, WarnImagePlaceholder:
			return true
		}
	}
	return false
}

// SummaryFallbacks counts pages whose LLM summary silently fell back to
// truncated text.
func (r BuildReport) SummaryFallbacks() int {
	n := 0
	for _, w := range r.Warnings {
		if w.Kind == WarnSummaryFallback {
			n++
		}
	}
	return n
}
