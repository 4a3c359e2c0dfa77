package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/opentutor/knowledge-service/internal/core/domain"
	"github.com/opentutor/knowledge-service/internal/core/ports"
	"github.com/opentutor/knowledge-service/internal/infrastructure/lexical"
)

const pageSeparator = "\n\n---\n\n"

// RetrieveContextUseCase ranks an indexed document's pages against a query
// and formats the winners as an injectable context block.
type RetrieveContextUseCase struct {
	repo   ports.DocumentRepository
	store  ports.IndexStore
	params domain.IndexingParams
}

func NewRetrieveContextUseCase(
	repo ports.DocumentRepository,
	store ports.IndexStore,
	params domain.IndexingParams,
) *RetrieveContextUseCase {
	return &RetrieveContextUseCase{
		repo:   repo,
		store:  store,
		params: params.Normalize(),
	}
}

// Retrieve returns an empty context — never an error — when no usable index
// exists for the document: the chat turn proceeds without augmentation
// rather than failing.
func (uc *RetrieveContextUseCase) Retrieve(
	ctx context.Context,
	documentID, query string,
	topN, maxCharsPerPage int,
) (*domain.Retrieval, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}

	index := uc.store.Load(ctx, doc.IndexPath)
	if index.Empty() {
		return &domain.Retrieval{}, nil
	}

	if topN <= 0 {
		topN = uc.params.TopN
	}
	if maxCharsPerPage <= 0 {
		maxCharsPerPage = uc.params.MaxCharsPerPage
	}

	selected := rankPages(index, query, topN, uc.params.FallbackPages)

	// Selected pages go back into document order so injected context reads
	// in narrative order regardless of score order.
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].page.PageNum < selected[j].page.PageNum
	})

	blocks := make([]string, 0, len(selected))
	pages := make([]domain.SelectedPage, 0, len(selected))
	for _, sp := range selected {
		blocks = append(blocks, fmt.Sprintf("[Page %d]\n%s", sp.page.PageNum, truncateRunes(sp.page.Text, maxCharsPerPage)))
		pages = append(pages, domain.SelectedPage{
			PageNum: sp.page.PageNum,
			Summary: sp.page.Summary,
			Score:   sp.score,
		})
	}

	return &domain.Retrieval{
		Context: strings.Join(blocks, pageSeparator),
		Pages:   pages,
	}, nil
}

type scoredPage struct {
	page  domain.Page
	score float64
}

// rankPages scores every page with the TF-IDF dot product and keeps the topN
// strictly positive scorers. When the query shares no vocabulary with the
// document, the first fallbackPages pages in document order stand in, so an
// existing index always yields some context.
func rankPages(index *domain.PageIndex, query string, topN, fallbackPages int) []scoredPage {
	queryTokens := lexical.Tokenize(query)

	scored := make([]scoredPage, 0, len(index.Pages))
	for _, page := range index.Pages {
		scored = append(scored, scoredPage{
			page:  page,
			score: lexical.Score(queryTokens, page.Tokens, index.IDF),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	selected := make([]scoredPage, 0, topN)
	for _, sp := range scored {
		if len(selected) == topN {
			break
		}
		if sp.score > 0 {
			selected = append(selected, sp)
		}
	}
	if len(selected) > 0 {
		return selected
	}

	if fallbackPages > len(index.Pages) {
		fallbackPages = len(index.Pages)
	}
	for _, page := range index.Pages[:fallbackPages] {
		selected = append(selected, scoredPage{page: page})
	}
	return selected
}
