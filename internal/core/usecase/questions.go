package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/opentutor/knowledge-service/internal/core/domain"
	"github.com/opentutor/knowledge-service/internal/core/ports"
)

// overviewQuery is the fixed retrieval query used to pull a representative
// cross-section of a document for question generation.
const overviewQuery = "overview of document"

const overviewTopN = 5

type GenerateQuestionsUseCase struct {
	repo      ports.DocumentRepository
	questions ports.QuestionRepository
	retriever ports.ContextRetriever
	generator ports.QuestionGenerator
}

func NewGenerateQuestionsUseCase(
	repo ports.DocumentRepository,
	questions ports.QuestionRepository,
	retriever ports.ContextRetriever,
	generator ports.QuestionGenerator,
) *GenerateQuestionsUseCase {
	return &GenerateQuestionsUseCase{
		repo:      repo,
		questions: questions,
		retriever: retriever,
		generator: generator,
	}
}

func (uc *GenerateQuestionsUseCase) Generate(
	ctx context.Context,
	documentID string,
	types []domain.QuestionType,
	assignedTo string,
) (*domain.GeneratedQuestions, error) {
	if len(types) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "generate questions", fmt.Errorf("no question types requested"))
	}

	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	switch doc.IndexStatus {
	case domain.StatusIndexed, domain.StatusIndexedWarnings:
	default:
		return nil, domain.WrapError(domain.ErrNotIndexed, "generate questions", fmt.Errorf("document status is %s", doc.IndexStatus))
	}

	retrieval, err := uc.retriever.Retrieve(ctx, documentID, overviewQuery, overviewTopN, 0)
	if err != nil {
		return nil, fmt.Errorf("retrieve document overview: %w", err)
	}

	content, err := uc.generator.GenerateQuestions(ctx, retrieval.Context, types)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	record := &domain.GeneratedQuestions{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Types:      types,
		Content:    content,
		AssignedTo: assignedTo,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.questions.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("store generated questions: %w", err)
	}
	return record, nil
}

func (uc *GenerateQuestionsUseCase) ListByDocument(ctx context.Context, documentID string) ([]domain.GeneratedQuestions, error) {
	if _, err := uc.repo.GetByID(ctx, documentID); err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	out, err := uc.questions.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("list generated questions: %w", err)
	}
	return out, nil
}
