package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/opentutor/knowledge-service/internal/core/domain"
	"github.com/opentutor/knowledge-service/internal/core/ports"
	"github.com/opentutor/knowledge-service/internal/observability/metrics"
)

// maxUploadBytes caps multipart uploads; anything bigger than a textbook
// scan is rejected before it reaches storage.
const maxUploadBytes = 64 << 20

type Router struct {
	ingest    ports.DocumentIngestor
	reader    ports.DocumentReader
	retriever ports.ContextRetriever
	questions ports.QuestionService
	metrics   *metrics.HTTPServerMetrics

	rateLimitRPS   float64
	rateLimitBurst int
	maxInFlight    int
	overloadWait   time.Duration
}

type RouterOptions struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MaxInFlight    int
	OverloadWait   time.Duration
	Metrics        *metrics.HTTPServerMetrics
}

func NewRouter(
	ingest ports.DocumentIngestor,
	reader ports.DocumentReader,
	retriever ports.ContextRetriever,
	questions ports.QuestionService,
	options RouterOptions,
) *Router {
	return &Router{
		ingest:         ingest,
		reader:         reader,
		retriever:      retriever,
		questions:      questions,
		metrics:        options.Metrics,
		rateLimitRPS:   options.RateLimitRPS,
		rateLimitBurst: options.RateLimitBurst,
		maxInFlight:    options.MaxInFlight,
		overloadWait:   options.OverloadWait,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.documents)
	mux.HandleFunc("/v1/documents/", rt.documentByID)
	mux.HandleFunc("/v1/retrieve", rt.retrieve)
	mux.HandleFunc("/v1/questions", rt.questionsEndpoint)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware("api", handler)
	}
	if rt.maxInFlight > 0 {
		handler = backpressureMiddleware(handler, rt.maxInFlight, rt.overloadWait)
	}
	if rt.rateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) documents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadDocument(w, r)
	case http.MethodGet:
		rt.listDocuments(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	doc, err := rt.ingest.Upload(
		r.Context(),
		fileHeader.Filename,
		r.FormValue("file_type"),
		r.FormValue("subject"),
		r.FormValue("uploaded_by"),
		file,
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := rt.reader.List(r.Context(), r.URL.Query().Get("subject"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (rt *Router) documentByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "document id is required")
		return
	}

	if id, ok := strings.CutSuffix(rest, "/reindex"); ok {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		rt.reindexDocument(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		doc, err := rt.reader.GetByID(r.Context(), rest)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	case http.MethodDelete:
		if err := rt.ingest.Delete(r.Context(), rest); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (rt *Router) reindexDocument(w http.ResponseWriter, r *http.Request, id string) {
	if err := rt.ingest.Reindex(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"document_id": id, "index_status": string(domain.StatusPending)})
}

func (rt *Router) retrieve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		DocumentID      string `json:"document_id"`
		Query           string `json:"query"`
		TopN            int    `json:"top_n"`
		MaxCharsPerPage int    `json:"max_chars_per_page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.DocumentID) == "" {
		writeError(w, http.StatusBadRequest, "document_id is required")
		return
	}

	start := time.Now()
	retrieval, err := rt.retriever.Retrieve(r.Context(), req.DocumentID, req.Query, req.TopN, req.MaxCharsPerPage)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordRetrieval("api", "/v1/retrieve", len(retrieval.Pages), time.Since(start))
	}

	writeJSON(w, http.StatusOK, retrieval)
}

func (rt *Router) questionsEndpoint(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.generateQuestions(w, r)
	case http.MethodGet:
		rt.listQuestions(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (rt *Router) generateQuestions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocumentID string   `json:"document_id"`
		Types      []string `json:"types"`
		AssignedTo string   `json:"assigned_to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.DocumentID) == "" {
		writeError(w, http.StatusBadRequest, "document_id is required")
		return
	}

	types := make([]domain.QuestionType, 0, len(req.Types))
	for _, tag := range req.Types {
		qt, ok := domain.ParseQuestionType(tag)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown question type: "+tag)
			return
		}
		types = append(types, qt)
	}

	record, err := rt.questions.Generate(r.Context(), req.DocumentID, types, req.AssignedTo)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (rt *Router) listQuestions(w http.ResponseWriter, r *http.Request) {
	documentID := r.URL.Query().Get("document_id")
	if documentID == "" {
		writeError(w, http.StatusBadRequest, "document_id is required")
		return
	}

	records, err := rt.questions.ListByDocument(r.Context(), documentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": records})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, mapErrorToHTTPStatus(err), err.Error())
}
