package config

import (
	"testing"
	"time"
)

func TestLoadIndexingDefaults(t *testing.T) {
	t.Setenv("TEXT_CHUNK_RUNES", "")
	t.Setenv("PARAGRAPHS_PER_PAGE", "")
	t.Setenv("RETRIEVAL_TOP_N", "")
	t.Setenv("MAX_CHARS_PER_PAGE", "")
	t.Setenv("SUMMARY_TIMEOUT_SECONDS", "")

	cfg := Load()
	params := cfg.IndexingParams()
	if params.TextChunkRunes != 2000 {
		t.Fatalf("expected default text chunk 2000, got %d", params.TextChunkRunes)
	}
	if params.ParagraphsPerPage != 40 {
		t.Fatalf("expected default paragraphs per page 40, got %d", params.ParagraphsPerPage)
	}
	if params.TopN != 4 {
		t.Fatalf("expected default top n 4, got %d", params.TopN)
	}
	if params.MaxCharsPerPage != 1500 {
		t.Fatalf("expected default max chars 1500, got %d", params.MaxCharsPerPage)
	}
	if params.SummaryTimeout != 30*time.Second {
		t.Fatalf("expected default summary timeout 30s, got %s", params.SummaryTimeout)
	}
}

func TestLoadParsesIndexingOverrides(t *testing.T) {
	t.Setenv("TEXT_CHUNK_RUNES", "1000")
	t.Setenv("RETRIEVAL_TOP_N", "6")
	t.Setenv("MAX_CHARS_PER_PAGE", "800")
	t.Setenv("SUMMARY_TIMEOUT_SECONDS", "10")

	params := Load().IndexingParams()
	if params.TextChunkRunes != 1000 {
		t.Fatalf("expected text chunk 1000, got %d", params.TextChunkRunes)
	}
	if params.TopN != 6 {
		t.Fatalf("expected top n 6, got %d", params.TopN)
	}
	if params.MaxCharsPerPage != 800 {
		t.Fatalf("expected max chars 800, got %d", params.MaxCharsPerPage)
	}
	if params.SummaryTimeout != 10*time.Second {
		t.Fatalf("expected summary timeout 10s, got %s", params.SummaryTimeout)
	}
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("RETRIEVAL_TOP_N", "not-a-number")

	if got := Load().RetrievalTopN; got != 4 {
		t.Fatalf("expected fallback top n 4, got %d", got)
	}
}
