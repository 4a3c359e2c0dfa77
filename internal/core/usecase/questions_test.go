package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/opentutor/knowledge-service/internal/core/domain"
)

type questionRepoFake struct {
	created *domain.GeneratedQuestions
	listed  []domain.GeneratedQuestions
}

func (f *questionRepoFake) Create(_ context.Context, q *domain.GeneratedQuestions) error {
	f.created = q
	return nil
}

func (f *questionRepoFake) ListByDocument(context.Context, string) ([]domain.GeneratedQuestions, error) {
	return f.listed, nil
}

type retrieverFake struct {
	retrieval *domain.Retrieval
	err       error

	gotQuery string
	gotTopN  int
}

func (f *retrieverFake) Retrieve(_ context.Context, _, query string, topN, _ int) (*domain.Retrieval, error) {
	f.gotQuery = query
	f.gotTopN = topN
	if f.err != nil {
		return nil, f.err
	}
	return f.retrieval, nil
}

type generatorFake struct {
	content  string
	err      error
	gotCtx   string
	gotTypes []domain.QuestionType
}

func (f *generatorFake) GenerateQuestions(_ context.Context, docContext string, types []domain.QuestionType) (string, error) {
	f.gotCtx = docContext
	f.gotTypes = types
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func TestGenerateStoresQuestions(t *testing.T) {
	doc := indexedDoc()
	questions := &questionRepoFake{}
	retriever := &retrieverFake{retrieval: &domain.Retrieval{Context: "[Page 1]\ncells divide"}}
	generator := &generatorFake{content: "1. What is mitosis?"}
	uc := NewGenerateQuestionsUseCase(&buildRepoFake{doc: doc}, questions, retriever, generator)

	types := []domain.QuestionType{domain.QuestionMultipleChoice, domain.QuestionShortAnswer}
	got, err := uc.Generate(context.Background(), "doc-1", types, "student-9")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if retriever.gotQuery != "overview of document" || retriever.gotTopN != 5 {
		t.Fatalf("overview retrieval used query=%q topN=%d", retriever.gotQuery, retriever.gotTopN)
	}
	if generator.gotCtx != "[Page 1]\ncells divide" {
		t.Fatalf("generator context = %q", generator.gotCtx)
	}
	if len(generator.gotTypes) != 2 {
		t.Fatalf("generator types = %v", generator.gotTypes)
	}

	if questions.created == nil {
		t.Fatalf("questions were not stored")
	}
	if got.ID == "" || got.DocumentID != "doc-1" || got.AssignedTo != "student-9" {
		t.Fatalf("stored record = %+v", got)
	}
	if got.Content != "1. What is mitosis?" {
		t.Fatalf("content = %q", got.Content)
	}
}

func TestGenerateAcceptsWarningStatus(t *testing.T) {
	doc := indexedDoc()
	doc.IndexStatus = domain.StatusIndexedWarnings
	uc := NewGenerateQuestionsUseCase(
		&buildRepoFake{doc: doc},
		&questionRepoFake{},
		&retrieverFake{retrieval: &domain.Retrieval{Context: "x"}},
		&generatorFake{content: "q"},
	)

	if _, err := uc.Generate(context.Background(), "doc-1", []domain.QuestionType{domain.QuestionTrueFalse}, ""); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
}

func TestGenerateRejectsUnindexedDocument(t *testing.T) {
	uc := NewGenerateQuestionsUseCase(
		&buildRepoFake{doc: textDoc()},
		&questionRepoFake{},
		&retrieverFake{},
		&generatorFake{},
	)

	_, err := uc.Generate(context.Background(), "doc-1", []domain.QuestionType{domain.QuestionShortAnswer}, "")
	if !domain.IsKind(err, domain.ErrNotIndexed) {
		t.Fatalf("expected not-indexed kind, got %v", err)
	}
}

func TestGenerateRejectsEmptyTypeList(t *testing.T) {
	uc := NewGenerateQuestionsUseCase(
		&buildRepoFake{doc: indexedDoc()},
		&questionRepoFake{},
		&retrieverFake{},
		&generatorFake{},
	)

	if _, err := uc.Generate(context.Background(), "doc-1", nil, ""); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid-input kind, got %v", err)
	}
}

func TestGenerateGeneratorFailure(t *testing.T) {
	uc := NewGenerateQuestionsUseCase(
		&buildRepoFake{doc: indexedDoc()},
		&questionRepoFake{},
		&retrieverFake{retrieval: &domain.Retrieval{}},
		&generatorFake{err: errors.New("model unreachable")},
	)

	if _, err := uc.Generate(context.Background(), "doc-1", []domain.QuestionType{domain.QuestionFillInBlank}, ""); err == nil {
		t.Fatalf("expected generation error")
	}
}
