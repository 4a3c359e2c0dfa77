package domain

import "time"

type IndexStatus string

const (
	StatusPending         IndexStatus = "pending"
	StatusIndexing        IndexStatus = "indexing"
	StatusIndexed         IndexStatus = "indexed"
	StatusIndexedWarnings IndexStatus = "indexed_with_warnings"
	StatusFailed          IndexStatus = "failed"
)

// Document is one catalog entry in the knowledge base. IndexPath points at the
// persisted PageIndex artifact once the worker has built it.
type Document struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	StoragePath string         `json:"storage_path"`
	FileType    FileType       `json:"file_type"`
	Subject     string         `json:"subject,omitempty"`
	UploadedBy  string         `json:"uploaded_by,omitempty"`
	IndexStatus IndexStatus    `json:"index_status"`
	IndexPath   string         `json:"index_path,omitempty"`
	Warnings    []BuildWarning `json:"warnings,omitempty"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
