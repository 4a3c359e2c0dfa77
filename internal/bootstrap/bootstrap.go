package bootstrap

import (
	"context"
	"fmt"

	"github.com/opentutor/knowledge-service/internal/config"
	"github.com/opentutor/knowledge-service/internal/core/ports"
	"github.com/opentutor/knowledge-service/internal/core/usecase"
	"github.com/opentutor/knowledge-service/internal/infrastructure/extractor"
	indexfs "github.com/opentutor/knowledge-service/internal/infrastructure/indexstore/localfs"
	"github.com/opentutor/knowledge-service/internal/infrastructure/llm/ollama"
	"github.com/opentutor/knowledge-service/internal/infrastructure/queue/nats"
	"github.com/opentutor/knowledge-service/internal/infrastructure/repository/postgres"
	"github.com/opentutor/knowledge-service/internal/infrastructure/resilience"
	"github.com/opentutor/knowledge-service/internal/infrastructure/storage/localfs"
)

// App wires the shared dependency graph for both binaries. The api serves
// the catalog and retrieval surface; the worker consumes index requests off
// the queue. Both share this wiring so builds triggered from either side
// behave identically.
type App struct {
	Config config.Config

	Queue  ports.MessageQueue
	Repo   ports.DocumentRepository
	Reader ports.DocumentReader

	IngestUC    ports.DocumentIngestor
	BuildUC     ports.IndexBuilder
	RetrieveUC  ports.ContextRetriever
	QuestionsUC ports.QuestionService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	questionRepo := postgres.NewQuestionRepository(db)

	storage, err := localfs.New(cfg.DocumentStoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}
	indexStore, err := indexfs.New(cfg.IndexStoragePath)
	if err != nil {
		return nil, fmt.Errorf("init index store: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	params := cfg.IndexingParams()

	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaModel)
	var summarizer ports.Summarizer
	if cfg.SummarizerEnabled {
		summarizer = ollama.NewSummarizer(ollamaClient, executor, params.SummaryMaxTokens)
	}
	questionGen := ollama.NewQuestionGenerator(ollamaClient, executor)

	pages := extractor.New(params)

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, indexStore, queue)
	buildUC := usecase.NewBuildIndexUseCase(repo, storage, pages, summarizer, indexStore, params)
	retrieveUC := usecase.NewRetrieveContextUseCase(repo, indexStore, params)
	questionsUC := usecase.NewGenerateQuestionsUseCase(repo, questionRepo, retrieveUC, questionGen)

	return &App{
		Config: cfg,

		Queue:  queue,
		Repo:   repo,
		Reader: repo,

		IngestUC:    ingestUC,
		BuildUC:     buildUC,
		RetrieveUC:  retrieveUC,
		QuestionsUC: questionsUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
