package domain

// SelectedPage describes one page chosen by the retriever, before formatting.
type SelectedPage struct {
	PageNum int     `json:"page_num"`
	Summary string  `json:"summary,omitempty"`
	Score   float64 `json:"score"`
}

// Retrieval is the result of ranking an index against a query: the formatted
// context string ready for prompt injection, plus the pages it was built from
// in document order.
type Retrieval struct {
	Context string         `json:"context"`
	Pages   []SelectedPage `json:"pages,omitempty"`
}
