package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/opentutor/knowledge-service/internal/core/domain"
	"github.com/opentutor/knowledge-service/internal/core/ports"
	"github.com/opentutor/knowledge-service/internal/infrastructure/lexical"
)

// BuildIndexUseCase turns a stored document into a persisted PageIndex.
// Data-quality problems never abort the build: they degrade to placeholder
// content and surface in the BuildReport, so a broken upload still becomes a
// searchable (if low-quality) catalog entry instead of blocking the teacher's
// workflow.
type BuildIndexUseCase struct {
	repo       ports.DocumentRepository
	storage    ports.ObjectStorage
	extractor  ports.PageExtractor
	summarizer ports.Summarizer // optional
	store      ports.IndexStore
	params     domain.IndexingParams
}

func NewBuildIndexUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	extractor ports.PageExtractor,
	summarizer ports.Summarizer,
	store ports.IndexStore,
	params domain.IndexingParams,
) *BuildIndexUseCase {
	return &BuildIndexUseCase{
		repo:       repo,
		storage:    storage,
		extractor:  extractor,
		summarizer: summarizer,
		store:      store,
		params:     params.Normalize(),
	}
}

func (uc *BuildIndexUseCase) BuildByID(ctx context.Context, documentID string) (*domain.BuildReport, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusIndexing, ""); err != nil {
		return nil, fmt.Errorf("set status=indexing: %w", err)
	}

	report := uc.build(ctx, doc)

	artifactPath, err := uc.store.Save(ctx, documentID, report.Index)
	if err != nil {
		saveErr := fmt.Errorf("persist index: %w", err)
		if failErr := uc.repo.UpdateStatus(ctx, documentID, domain.StatusFailed, saveErr.Error()); failErr != nil {
			return nil, fmt.Errorf("%w; mark failed status: %v", saveErr, failErr)
		}
		return nil, saveErr
	}

	status := domain.StatusIndexed
	if len(report.Warnings) > 0 {
		status = domain.StatusIndexedWarnings
	}
	if err := uc.repo.SaveIndexResult(ctx, documentID, status, artifactPath, report.Warnings); err != nil {
		return nil, fmt.Errorf("record index result: %w", err)
	}
	return report, nil
}

// build runs extract → tokenize → summarize → IDF sequentially. Pages are
// summarized one at a time; build latency grows linearly with page count when
// a summarizer is configured.
func (uc *BuildIndexUseCase) build(ctx context.Context, doc *domain.Document) *domain.BuildReport {
	sourcePath := uc.storage.Path(doc.StoragePath)
	rawPages, warnings := uc.extractor.ExtractPages(ctx, sourcePath, doc.FileType)

	pages := make([]domain.Page, 0, len(rawPages))
	pageTokens := make([][]string, 0, len(rawPages))
	for _, raw := range rawPages {
		tokens := lexical.Tokenize(raw.Text)
		summary, warn := uc.summarize(ctx, raw)
		if warn != nil {
			warnings = append(warnings, *warn)
		}
		pages = append(pages, domain.Page{
			PageNum: raw.PageNum,
			Text:    raw.Text,
			Summary: summary,
			Tokens:  tokens,
			IsImage: raw.IsImage,
		})
		pageTokens = append(pageTokens, tokens)
	}

	return &domain.BuildReport{
		Index: &domain.PageIndex{
			FilePath:  sourcePath,
			FileType:  doc.FileType.String(),
			CreatedAt: time.Now().UTC(),
			PageCount: len(pages),
			IDF:       lexical.ComputeIDF(pageTokens),
			Pages:     pages,
		},
		Warnings: warnings,
	}
}

// summarize asks the optional summarizer for a short synopsis and falls back
// silently to truncated page text on any failure. Image placeholders and
// empty pages are never sent to the model.
func (uc *BuildIndexUseCase) summarize(ctx context.Context, raw domain.RawPage) (string, *domain.BuildWarning) {
	fallback := fallbackSummary(raw.Text, uc.params.SummaryFallbackChars)
	if uc.summarizer == nil || raw.IsImage || raw.Text == "" {
		return fallback, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.params.SummaryTimeout)
	defer cancel()

	summary, err := uc.summarizer.Summarize(callCtx, truncateRunes(raw.Text, uc.params.SummaryInputMaxChars))
	if err != nil {
		return fallback, &domain.BuildWarning{
			PageNum: raw.PageNum,
			Kind:    domain.WarnSummaryFallback,
			Detail:  err.Error(),
		}
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return fallback, &domain.BuildWarning{
			PageNum: raw.PageNum,
			Kind:    domain.WarnSummaryFallback,
			Detail:  "empty summarizer response",
		}
	}
	return summary, nil
}

func fallbackSummary(text string, maxChars int) string {
	truncated := truncateRunes(text, maxChars)
	truncated = strings.ReplaceAll(truncated, "\n", " ")
	if len([]rune(text)) > maxChars {
		truncated += "..."
	}
	return truncated
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
