package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/opentutor/knowledge-service/internal/core/domain"
)

type ingestorFake struct {
	doc       *domain.Document
	uploadErr error
	reindexed []string
	deleted   []string
	deleteErr error
}

func (f *ingestorFake) Upload(_ context.Context, name, fileTypeTag, subject, uploadedBy string, _ io.Reader) (*domain.Document, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	if f.doc != nil {
		return f.doc, nil
	}
	return &domain.Document{
		ID:          "doc-1",
		Name:        name,
		FileType:    domain.ParseFileType(fileTypeTag),
		Subject:     subject,
		UploadedBy:  uploadedBy,
		IndexStatus: domain.StatusPending,
	}, nil
}

func (f *ingestorFake) Reindex(_ context.Context, documentID string) error {
	f.reindexed = append(f.reindexed, documentID)
	return nil
}

func (f *ingestorFake) Delete(_ context.Context, documentID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, documentID)
	return nil
}

type readerFake struct {
	doc    *domain.Document
	docs   []domain.Document
	getErr error
}

func (f *readerFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.doc, nil
}

func (f *readerFake) List(context.Context, string) ([]domain.Document, error) {
	return f.docs, nil
}

type contextRetrieverFake struct {
	retrieval *domain.Retrieval
	err       error
}

func (f *contextRetrieverFake) Retrieve(context.Context, string, string, int, int) (*domain.Retrieval, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.retrieval, nil
}

type questionServiceFake struct {
	record   *domain.GeneratedQuestions
	err      error
	gotTypes []domain.QuestionType
}

func (f *questionServiceFake) Generate(_ context.Context, _ string, types []domain.QuestionType, _ string) (*domain.GeneratedQuestions, error) {
	f.gotTypes = types
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func (f *questionServiceFake) ListByDocument(context.Context, string) ([]domain.GeneratedQuestions, error) {
	return nil, nil
}

func newTestRouter(ingest *ingestorFake, reader *readerFake, retriever *contextRetrieverFake, questions *questionServiceFake, options RouterOptions) http.Handler {
	if ingest == nil {
		ingest = &ingestorFake{}
	}
	if reader == nil {
		reader = &readerFake{}
	}
	if retriever == nil {
		retriever = &contextRetrieverFake{retrieval: &domain.Retrieval{}}
	}
	if questions == nil {
		questions = &questionServiceFake{}
	}
	return NewRouter(ingest, reader, retriever, questions, options).Handler()
}

func multipartUpload(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "notes.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestUploadDocumentAccepted(t *testing.T) {
	handler := newTestRouter(nil, nil, nil, nil, RouterOptions{})

	body, contentType := multipartUpload(t, map[string]string{"subject": "biology", "uploaded_by": "teacher-7"})
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", res.Code, res.Body.String())
	}
	var doc domain.Document
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if doc.Name != "notes.pdf" || doc.Subject != "biology" || doc.IndexStatus != domain.StatusPending {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if res.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestUploadRequiresFileField(t *testing.T) {
	handler := newTestRouter(nil, nil, nil, nil, RouterOptions{})

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", strings.NewReader("not multipart"))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.Code)
	}
}

func TestGetDocumentNotFoundMapsTo404(t *testing.T) {
	reader := &readerFake{getErr: domain.WrapError(domain.ErrDocumentNotFound, "get document", errors.New("id=missing"))}
	handler := newTestRouter(nil, reader, nil, nil, RouterOptions{})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.Code)
	}
}

func TestReindexAccepted(t *testing.T) {
	ingest := &ingestorFake{}
	handler := newTestRouter(ingest, nil, nil, nil, RouterOptions{})

	req := httptest.NewRequest(http.MethodPost, "/v1/documents/doc-1/reindex", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", res.Code)
	}
	if len(ingest.reindexed) != 1 || ingest.reindexed[0] != "doc-1" {
		t.Fatalf("reindexed = %v", ingest.reindexed)
	}
}

func TestDeleteDocumentReturnsNoContent(t *testing.T) {
	ingest := &ingestorFake{}
	handler := newTestRouter(ingest, nil, nil, nil, RouterOptions{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/documents/doc-1", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", res.Code)
	}
	if len(ingest.deleted) != 1 || ingest.deleted[0] != "doc-1" {
		t.Fatalf("deleted = %v", ingest.deleted)
	}
}

func TestDeleteUnknownDocumentMapsTo404(t *testing.T) {
	ingest := &ingestorFake{deleteErr: domain.WrapError(domain.ErrDocumentNotFound, "get document", errors.New("no rows"))}
	handler := newTestRouter(ingest, nil, nil, nil, RouterOptions{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/documents/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.Code)
	}
}

func TestRetrieveReturnsContext(t *testing.T) {
	retriever := &contextRetrieverFake{retrieval: &domain.Retrieval{
		Context: "[Page 1]\ncat dog",
		Pages:   []domain.SelectedPage{{PageNum: 1, Score: 0.42}},
	}}
	handler := newTestRouter(nil, nil, retriever, nil, RouterOptions{})

	payload := `{"document_id":"doc-1","query":"cat","top_n":2}`
	req := httptest.NewRequest(http.MethodPost, "/v1/retrieve", strings.NewReader(payload))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", res.Code, res.Body.String())
	}
	var got domain.Retrieval
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Context != "[Page 1]\ncat dog" || len(got.Pages) != 1 {
		t.Fatalf("unexpected retrieval: %+v", got)
	}
}

func TestRetrieveRequiresDocumentID(t *testing.T) {
	handler := newTestRouter(nil, nil, nil, nil, RouterOptions{})

	req := httptest.NewRequest(http.MethodPost, "/v1/retrieve", strings.NewReader(`{"query":"cat"}`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.Code)
	}
}

func TestGenerateQuestionsParsesTypes(t *testing.T) {
	questions := &questionServiceFake{record: &domain.GeneratedQuestions{ID: "q-1", DocumentID: "doc-1"}}
	handler := newTestRouter(nil, nil, nil, questions, RouterOptions{})

	payload := `{"document_id":"doc-1","types":["Multiple Choice","true_false"]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/questions", strings.NewReader(payload))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", res.Code, res.Body.String())
	}
	if len(questions.gotTypes) != 2 || questions.gotTypes[0] != domain.QuestionMultipleChoice || questions.gotTypes[1] != domain.QuestionTrueFalse {
		t.Fatalf("types = %v", questions.gotTypes)
	}
}

func TestGenerateQuestionsRejectsUnknownType(t *testing.T) {
	handler := newTestRouter(nil, nil, nil, nil, RouterOptions{})

	payload := `{"document_id":"doc-1","types":["essay"]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/questions", strings.NewReader(payload))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.Code)
	}
}

func TestGenerateQuestionsUnindexedMapsTo409(t *testing.T) {
	questions := &questionServiceFake{err: domain.WrapError(domain.ErrNotIndexed, "generate questions", errors.New("document status is pending"))}
	handler := newTestRouter(nil, nil, nil, questions, RouterOptions{})

	payload := `{"document_id":"doc-1","types":["short_answer"]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/questions", strings.NewReader(payload))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", res.Code)
	}
}
