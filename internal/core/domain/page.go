package domain

import "time"

// Page is one unit of indexed content: a physical PDF page, a synthetic
// paragraph group for flow documents, a fixed-size text chunk, or an image
// placeholder.
type Page struct {
	PageNum int      `json:"page_num"`
	Text    string   `json:"text"`
	Summary string   `json:"summary,omitempty"`
	Tokens  []string `json:"tokens"`
	IsImage bool     `json:"is_image,omitempty"`
}

// RawPage is the extractor's output before tokenization and summarization.
type RawPage struct {
	PageNum int
	Text    string
	IsImage bool
}

// PageIndex is the durable retrieval artifact for one document version.
// It is immutable once built: replacing a document means building a new
// index and overwriting the old artifact.
type PageIndex struct {
	FilePath  string             `json:"file_path"`
	FileType  string             `json:"file_type"`
	CreatedAt time.Time          `json:"created_at"`
	PageCount int                `json:"page_count"`
	IDF       map[string]float64 `json:"idf"`
	Pages     []Page             `json:"pages"`
}

// Empty reports whether the index has no retrievable pages.
func (ix *PageIndex) Empty() bool {
	return ix == nil || len(ix.Pages) == 0
}
