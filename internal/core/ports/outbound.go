package ports

import (
	"context"
	"io"

	"github.com/opentutor/knowledge-service/internal/core/domain"
)

// DocumentRepository persists and reads catalog state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, subject string) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.IndexStatus, errMessage string) error
	SaveIndexResult(ctx context.Context, id string, status domain.IndexStatus, indexPath string, warnings []domain.BuildWarning) error
	Delete(ctx context.Context, id string) error
}

// QuestionRepository persists practice-question generation runs.
type QuestionRepository interface {
	Create(ctx context.Context, q *domain.GeneratedQuestions) error
	ListByDocument(ctx context.Context, documentID string) ([]domain.GeneratedQuestions, error)
}

// ObjectStorage stores source document bytes.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Path(key string) string
}

// MessageQueue publishes/consumes index-build requests.
type MessageQueue interface {
	PublishIndexRequested(ctx context.Context, documentID string) error
	SubscribeIndexRequested(ctx context.Context, handler func(context.Context, string) error) error
}

// PageExtractor converts a stored document into an ordered page sequence.
// It never fails: whole-document errors degrade to a single placeholder page
// described by the returned warnings.
type PageExtractor interface {
	ExtractPages(ctx context.Context, path string, ft domain.FileType) ([]domain.RawPage, []domain.BuildWarning)
}

// Summarizer produces a short per-page synopsis. Failures are swallowed by
// the builder, which falls back to truncated page text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// IndexStore round-trips PageIndex artifacts addressed by document id.
// Load returns nil (never an error) for missing or corrupt artifacts.
type IndexStore interface {
	Save(ctx context.Context, documentID string, index *domain.PageIndex) (string, error)
	Load(ctx context.Context, path string) *domain.PageIndex
	Remove(ctx context.Context, path string) error
}

// QuestionGenerator turns a retrieval context into practice questions.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, docContext string, types []domain.QuestionType) (string, error)
}
