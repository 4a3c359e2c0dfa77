package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opentutor/knowledge-service/internal/core/domain"
	"github.com/opentutor/knowledge-service/internal/core/ports"
)

type IngestDocumentUseCase struct {
	repo    ports.DocumentRepository
	storage ports.ObjectStorage
	store   ports.IndexStore
	queue   ports.MessageQueue
}

func NewIngestDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	store ports.IndexStore,
	queue ports.MessageQueue,
) *IngestDocumentUseCase {
	return &IngestDocumentUseCase{
		repo:    repo,
		storage: storage,
		store:   store,
		queue:   queue,
	}
}

// Upload stores the document bytes, registers a pending catalog entry and
// requests an index build. The file type comes from the caller-supplied tag,
// falling back to the filename extension; it is never sniffed from content.
func (uc *IngestDocumentUseCase) Upload(
	ctx context.Context,
	name, fileTypeTag, subject, uploadedBy string,
	body io.Reader,
) (*domain.Document, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload", fmt.Errorf("empty document name"))
	}
	if fileTypeTag == "" {
		fileTypeTag = strings.TrimPrefix(filepath.Ext(name), ".")
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(name))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	doc := &domain.Document{
		ID:          id,
		Name:        name,
		StoragePath: storageKey,
		FileType:    domain.ParseFileType(fileTypeTag),
		Subject:     subject,
		UploadedBy:  uploadedBy,
		IndexStatus: domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create catalog entry: %w", err)
	}

	if err := uc.queue.PublishIndexRequested(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("publish index request: %w", err)
	}

	return doc, nil
}

// Reindex requests a fresh build for an existing document. The replacement is
// build-then-overwrite: the old artifact stays readable until the worker
// publishes the new one.
func (uc *IngestDocumentUseCase) Reindex(ctx context.Context, documentID string) error {
	if _, err := uc.repo.GetByID(ctx, documentID); err != nil {
		return fmt.Errorf("fetch document: %w", err)
	}
	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusPending, ""); err != nil {
		return fmt.Errorf("reset index status: %w", err)
	}
	if err := uc.queue.PublishIndexRequested(ctx, documentID); err != nil {
		return fmt.Errorf("publish index request: %w", err)
	}
	return nil
}

// Delete removes the catalog row together with the stored bytes and the
// index artifact. Artifact and file removal tolerate already-missing targets
// so a retried delete converges.
func (uc *IngestDocumentUseCase) Delete(ctx context.Context, documentID string) error {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("fetch document: %w", err)
	}
	if err := uc.store.Remove(ctx, doc.IndexPath); err != nil {
		return fmt.Errorf("remove index artifact: %w", err)
	}
	if err := uc.storage.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("remove stored document: %w", err)
	}
	if err := uc.repo.Delete(ctx, documentID); err != nil {
		return fmt.Errorf("delete catalog entry: %w", err)
	}
	return nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
