package domain

import "time"

// IndexingParams groups the build and retrieval tunables into one immutable
// value threaded into the builder and retriever at construction.
type IndexingParams struct {
	// Extraction.
	TextChunkRunes    int // plain-text page size, counted in code points
	ParagraphsPerPage int // docx paragraphs grouped into one synthetic page

	// Summarization.
	SummaryInputMaxChars int
	SummaryMaxTokens     int
	SummaryTimeout       time.Duration
	SummaryFallbackChars int

	// Retrieval.
	TopN            int
	FallbackPages   int
	MaxCharsPerPage int
}

func DefaultIndexingParams() IndexingParams {
	return IndexingParams{
		TextChunkRunes:    2000,
		ParagraphsPerPage: 40,

		SummaryInputMaxChars: 3000,
		SummaryMaxTokens:     150,
		SummaryTimeout:       30 * time.Second,
		SummaryFallbackChars: 300,

		TopN:            4,
		FallbackPages:   2,
		MaxCharsPerPage: 1500,
	}
}

// Normalize replaces non-positive fields with defaults so a zero value is
// usable in tests.
func (p IndexingParams) Normalize() IndexingParams {
	def := DefaultIndexingParams()
	if p.TextChunkRunes <= 0 {
		p.TextChunkRunes = def.TextChunkRunes
	}
	if p.ParagraphsPerPage <= 0 {
		p.ParagraphsPerPage = def.ParagraphsPerPage
	}
	if p.SummaryInputMaxChars <= 0 {
		p.SummaryInputMaxChars = def.SummaryInputMaxChars
	}
	if p.SummaryMaxTokens <= 0 {
		p.SummaryMaxTokens = def.SummaryMaxTokens
	}
	if p.SummaryTimeout <= 0 {
		p.SummaryTimeout = def.SummaryTimeout
	}
	if p.SummaryFallbackChars <= 0 {
		p.SummaryFallbackChars = def.SummaryFallbackChars
	}
	if p.TopN <= 0 {
		p.TopN = def.TopN
	}
	if p.FallbackPages <= 0 {
		p.FallbackPages = def.FallbackPages
	}
	if p.MaxCharsPerPage <= 0 {
		p.MaxCharsPerPage = def.MaxCharsPerPage
	}
	return p
}
