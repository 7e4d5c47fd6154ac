package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	attrmemory "github.com/verdantlabs/lorebase/internal/adapters/driven/attribution/memory"
	configfile "github.com/verdantlabs/lorebase/internal/adapters/driven/config/file"
	embedopenai "github.com/verdantlabs/lorebase/internal/adapters/driven/embedding/openai"
	librarysqlite "github.com/verdantlabs/lorebase/internal/adapters/driven/library/sqlite"
	llmopenai "github.com/verdantlabs/lorebase/internal/adapters/driven/llm/openai"
	vectormemory "github.com/verdantlabs/lorebase/internal/adapters/driven/vectorstore/memory"
	vectorpg "github.com/verdantlabs/lorebase/internal/adapters/driven/vectorstore/pgvector"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
	"github.com/verdantlabs/lorebase/internal/core/services"
	"github.com/verdantlabs/lorebase/internal/extractors"
)

var (
	appOnce sync.Once
	appErr  error
)

// ensureApp wires the full adapter and service graph on first use.
// Commands that only print build info never trigger it.
func ensureApp() error {
	appOnce.Do(buildApp)
	return appErr
}

// buildApp composes config, driven adapters and core services. The
// OpenAI key comes from the environment first, then the config file.
func buildApp() {
	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		appErr = fmt.Errorf("open config: %w", err)
		return
	}
	configStore = cfg

	prompts, err := configfile.NewPromptStore("")
	if err != nil {
		appErr = fmt.Errorf("open prompt store: %w", err)
		return
	}
	promptStore = prompts

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = cfg.GetString("openai.api_key")
	}
	if apiKey == "" {
		appErr = fmt.Errorf("OpenAI API key not set (export OPENAI_API_KEY or set openai.api_key in %s)", cfg.Path())
		return
	}

	embedding, err := embedopenai.NewEmbeddingService(embedopenai.Config{
		APIKey:  apiKey,
		BaseURL: cfg.GetString("openai.base_url"),
		Model:   cfg.GetString("openai.embedding_model"),
	})
	if err != nil {
		appErr = fmt.Errorf("embedding service: %w", err)
		return
	}

	llm, err := llmopenai.NewLLMService(llmopenai.LLMConfig{
		APIKey:  apiKey,
		BaseURL: cfg.GetString("openai.base_url"),
		Model:   cfg.GetString("openai.llm_model"),
	})
	if err != nil {
		appErr = fmt.Errorf("llm service: %w", err)
		return
	}

	store, err := newVectorStore(cfg.GetString("store.postgres_dsn"), embedding.Dimensions(), os.Stderr)
	if err != nil {
		appErr = fmt.Errorf("vector store: %w", err)
		return
	}
	vectorStore = store

	lib, err := librarysqlite.NewStore("")
	if err != nil {
		appErr = fmt.Errorf("library store: %w", err)
		return
	}
	library = lib

	registry := extractors.Defaults(nil)
	summarizer := services.NewSummarizer(llm, prompts)

	var ingestOpts []services.IngestOption
	if budget := cfg.GetInt("ingest.embed_token_budget"); budget > 0 {
		ingestOpts = append(ingestOpts, services.WithEmbedTokenBudget(budget))
	}
	ingestor = services.NewIngestService(registry, summarizer, embedding, vectorStore, llm, prompts, ingestOpts...)

	var retrieverOpts []services.RetrieverOption
	if k := cfg.GetInt("retrieval.top_k"); k > 0 {
		retrieverOpts = append(retrieverOpts, services.WithTopK(k))
	}
	if budget := cfg.GetInt("retrieval.question_token_budget"); budget > 0 {
		retrieverOpts = append(retrieverOpts, services.WithQuestionTokenBudget(budget))
	}
	retriever := services.NewRetriever(vectorStore, embedding, retrieverOpts...)

	policy := services.NewPolicyFilter(cfg.GetStringSlice("policy.disallowed_keywords"))
	sink := attrmemory.New()
	attribution = sink

	var answerOpts []services.AnswerOption
	if budget := cfg.GetInt("answer.context_token_budget"); budget > 0 {
		answerOpts = append(answerOpts, services.WithContextTokenBudget(budget))
	}
	answerer = services.NewAnswerService(retriever, llm, prompts, policy, sink, answerOpts...)
}

// newVectorStore selects the vector store for the run. A Postgres DSN
// selects the persistent pgvector store; without one the in-memory
// store is used and a warning goes to warnTo regardless of verbosity,
// since ingested content silently vanishing on exit is too surprising
// to hide behind --verbose.
func newVectorStore(dsn string, dimensions int, warnTo io.Writer) (driven.VectorStore, error) {
	if dsn != "" {
		return vectorpg.New(dsn, dimensions)
	}
	fmt.Fprintln(warnTo, "Warning: store.postgres_dsn is not configured; using the in-memory vector store, ingested content is lost when this command exits")
	return vectormemory.New(), nil
}

// requireServices guards commands that need the wired app.
func requireServices(deps ...any) error {
	if err := ensureApp(); err != nil {
		return err
	}
	for _, dep := range deps {
		if dep == nil {
			return fmt.Errorf("service not configured")
		}
	}
	return nil
}

// closeApp releases adapter resources. Best effort; called on exit.
func closeApp() {
	if vectorStore != nil {
		_ = vectorStore.Close()
	}
	if library != nil {
		_ = library.Close()
	}
}

func init() {
	cobra.OnFinalize(closeApp)
}
