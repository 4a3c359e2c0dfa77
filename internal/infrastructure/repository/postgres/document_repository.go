package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/opentutor/knowledge-service/internal/core/domain"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082901)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	file_type TEXT NOT NULL,
	subject TEXT,
	uploaded_by TEXT,
	index_status TEXT NOT NULL,
	index_path TEXT,
	warnings JSONB NOT NULL DEFAULT '[]'::jsonb,
	error_message TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_index_status ON documents(index_status);
CREATE INDEX IF NOT EXISTS idx_documents_subject ON documents(subject);
CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at DESC);

CREATE TABLE IF NOT EXISTS generated_questions (
	id TEXT PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	question_types JSONB NOT NULL DEFAULT '[]'::jsonb,
	content TEXT NOT NULL,
	assigned_to TEXT,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_generated_questions_document ON generated_questions(document_id);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	warningsJSON, err := marshalWarnings(doc.Warnings)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO documents (
	id, name, storage_path, file_type, subject, uploaded_by, index_status, index_path, warnings, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
`,
		doc.ID, doc.Name, doc.StoragePath, doc.FileType.String(), doc.Subject, doc.UploadedBy,
		string(doc.IndexStatus), doc.IndexPath, warningsJSON, doc.Error, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, storage_path, file_type, subject, uploaded_by, index_status, index_path, warnings, error_message, created_at, updated_at
FROM documents
WHERE id = $1
`, id)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return doc, nil
}

func (r *DocumentRepository) List(ctx context.Context, subject string) ([]domain.Document, error) {
	query := `
SELECT id, name, storage_path, file_type, subject, uploaded_by, index_status, index_path, warnings, error_message, created_at, updated_at
FROM documents
`
	args := []any{}
	if subject != "" {
		query += "WHERE subject = $1\n"
		args = append(args, subject)
	}
	query += "ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id string, status domain.IndexStatus, errMessage string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET index_status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update index status: %w", err)
	}
	return requireRowAffected(result, "update index status", id)
}

func (r *DocumentRepository) SaveIndexResult(ctx context.Context, id string, status domain.IndexStatus, indexPath string, warnings []domain.BuildWarning) error {
	warningsJSON, err := marshalWarnings(warnings)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET index_status = $2, index_path = $3, warnings = $4, error_message = '', updated_at = $5
WHERE id = $1
`, id, string(status), indexPath, warningsJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save index result: %w", err)
	}
	return requireRowAffected(result, "save index result", id)
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return requireRowAffected(result, "delete document", id)
}

type documentScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row documentScanner) (*domain.Document, error) {
	var doc domain.Document
	var fileType, status string
	var warningsRaw []byte

	err := row.Scan(
		&doc.ID, &doc.Name, &doc.StoragePath, &fileType, &doc.Subject, &doc.UploadedBy,
		&status, &doc.IndexPath, &warningsRaw, &doc.Error, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(warningsRaw, &doc.Warnings); err != nil {
		return nil, fmt.Errorf("unmarshal warnings: %w", err)
	}
	doc.FileType = domain.ParseFileType(fileType)
	doc.IndexStatus = domain.IndexStatus(status)
	return &doc, nil
}

func marshalWarnings(warnings []domain.BuildWarning) ([]byte, error) {
	if warnings == nil {
		warnings = []domain.BuildWarning{}
	}
	out, err := json.Marshal(warnings)
	if err != nil {
		return nil, fmt.Errorf("marshal warnings: %w", err)
	}
	return out, nil
}

func requireRowAffected(result sql.Result, operation, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, operation, fmt.Errorf("id=%s", id))
	}
	return nil
}
