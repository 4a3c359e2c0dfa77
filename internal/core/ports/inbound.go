package ports

import (
	"context"
	"io"

	"github.com/opentutor/knowledge-service/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, name, fileTypeTag, subject, uploadedBy string, body io.Reader) (*domain.Document, error)
	Reindex(ctx context.Context, documentID string) error
	Delete(ctx context.Context, documentID string) error
}

// IndexBuilder is the inbound contract for asynchronous index construction.
type IndexBuilder interface {
	BuildByID(ctx context.Context, documentID string) (*domain.BuildReport, error)
}

// ContextRetriever ranks an indexed document against a free-text query.
type ContextRetriever interface {
	Retrieve(ctx context.Context, documentID, query string, topN, maxCharsPerPage int) (*domain.Retrieval, error)
}

// QuestionService generates and stores practice questions for a document.
type QuestionService interface {
	Generate(ctx context.Context, documentID string, types []domain.QuestionType, assignedTo string) (*domain.GeneratedQuestions, error)
	ListByDocument(ctx context.Context, documentID string) ([]domain.GeneratedQuestions, error)
}

// DocumentReader is the inbound read model for catalog metadata.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, subject string) ([]domain.Document, error)
}
