// Command portfolio-chat serves the conversational retrieval API for the
// portfolio site. On startup it loads and indexes the local content files,
// then answers chat requests by retrieving relevant chunks and streaming a
// model-generated response.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dwern/portfolio-chat/internal/adapters/contentloader"
	"github.com/dwern/portfolio-chat/internal/adapters/contentwatch"
	"github.com/dwern/portfolio-chat/internal/adapters/docstore"
	"github.com/dwern/portfolio-chat/internal/adapters/embedding"
	"github.com/dwern/portfolio-chat/internal/adapters/llm"
	"github.com/dwern/portfolio-chat/internal/config"
	"github.com/dwern/portfolio-chat/internal/domain/ports"
	"github.com/dwern/portfolio-chat/internal/domain/usecases"
	httpserver "github.com/dwern/portfolio-chat/internal/infrastructure/http"
	"github.com/dwern/portfolio-chat/internal/observability"
)

func main() {
	if err := run(); err != nil {
		observability.Logger().Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := slog.LevelInfo
	if cfg.Environment == "development" {
		level = slog.LevelDebug
	}
	observability.SetLogger(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
	log := observability.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	embedder, err := newEmbedder(cfg.Embedding)
	if err != nil {
		return err
	}
	generator, err := newLLM(cfg.LLM)
	if err != nil {
		return err
	}
	store, closeStore, err := newStore(cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	indexer := usecases.NewIndexUseCase(embedder, store)

	// The postgres backend is populated by the site's own publishing flow;
	// only the local backends index the content directory here.
	if cfg.Store.Backend != "postgres" {
		if err := indexContent(ctx, cfg.Content.Dir, indexer); err != nil {
			return err
		}
		if cfg.Content.Watch {
			if err := watchContent(ctx, cfg.Content.Dir, indexer); err != nil {
				log.Warn("content watch disabled", "error", err)
			}
		}
	}

	chat := usecases.NewChatUseCase(
		embedder, store, generator,
		cfg.Retrieval.TopK, cfg.Retrieval.MinScore,
		cfg.Embedding.Timeout, cfg.LLM.Timeout,
	)

	return httpserver.NewServer(chat, cfg).Start(ctx)
}

func newEmbedder(mc config.ModelConfig) (ports.EmbeddingService, error) {
	switch mc.Provider {
	case "gemini":
		return embedding.NewGeminiAdapter(mc.BaseURL, mc.Model, mc.APIKey), nil
	case "openai":
		return embedding.NewOpenAIAdapter(mc.BaseURL, mc.Model, mc.APIKey), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", mc.Provider)
	}
}

func newLLM(mc config.ModelConfig) (ports.LLMService, error) {
	switch mc.Provider {
	case "gemini":
		return llm.NewGeminiAdapter(mc.BaseURL, mc.Model, mc.APIKey), nil
	case "openai":
		return llm.NewOpenAIAdapter(mc.BaseURL, mc.Model, mc.APIKey), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", mc.Provider)
	}
}

func newStore(sc config.StoreConfig) (ports.DocumentStore, func(), error) {
	switch sc.Backend {
	case "memory":
		return docstore.NewInMemoryStore(), func() {}, nil
	case "sqlite":
		s, err := docstore.NewSQLiteStore(sc.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return s, func() { s.Close() }, nil
	case "postgres":
		s, err := docstore.NewPostgresStore(sc.DSN, sc.Dimensions)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return s, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", sc.Backend)
	}
}

func indexContent(ctx context.Context, dir string, indexer *usecases.IndexUseCase) error {
	docs, err := contentloader.NewLoader(dir).Load(ctx)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	if err := indexer.Reindex(ctx, docs); err != nil {
		return fmt.Errorf("indexing content: %w", err)
	}
	observability.Logger().Info("content indexed", "documents", len(docs), "dir", dir)
	return nil
}

// watchContent reindexes the whole content set when any file changes. The
// content is small enough that full reindexing beats tracking per-file diffs.
func watchContent(ctx context.Context, dir string, indexer *usecases.IndexUseCase) error {
	watcher, err := contentwatch.NewFSNotifyWatcher(nil)
	if err != nil {
		return err
	}
	events, err := watcher.Watch(ctx, dir)
	if err != nil {
		watcher.Stop()
		return err
	}

	go func() {
		defer watcher.Stop()
		log := observability.Logger()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				log.Info("content changed, reindexing", "path", ev.Path)
				if err := indexContent(ctx, dir, indexer); err != nil {
					log.Error("reindex failed", "error", err)
				}
			}
		}
	}()
	return nil
}
