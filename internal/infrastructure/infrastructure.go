// Package infrastructure provides core service initialization for application
// startup. It assembles the collaborators every domain system requires:
// lifecycle coordination, logging, the Drive storage client, the LLM client,
// and the classification rubric. Systems are constructed once and injected
// explicitly into the domain modules that need them.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jtrogers/goose-gdrive-classifier/internal/config"
	"github.com/jtrogers/goose-gdrive-classifier/internal/rubric"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/drive"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/lifecycle"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/llm"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Drive     drive.System
	LLM       llm.Client
	Rubric    *rubric.Store
}

// New creates an Infrastructure from the application configuration. All
// collaborators are constructed here; failures (missing token, missing
// rubric, bad credentials) are fatal to startup.
func New(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	driveSys, err := drive.New(ctx, &cfg.Drive, logger)
	if err != nil {
		return nil, fmt.Errorf("drive init failed: %w", err)
	}

	policy := llm.RetryPolicy{
		MaxRetries: uint64(cfg.Processing.MaxRetries),
		Backoff:    cfg.Processing.RetryBackoffDuration(),
	}

	client, err := llm.New(ctx, &cfg.LLM, policy, logger)
	if err != nil {
		return nil, fmt.Errorf("llm init failed: %w", err)
	}

	store, err := rubric.Load(cfg.Rubric.Path)
	if err != nil {
		return nil, fmt.Errorf("rubric load failed: %w", err)
	}

	logger.Info(
		"infrastructure initialized",
		"rubric_categories", len(store.Categories()),
		"model", cfg.LLM.Model,
	)

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Drive:     driveSys,
		LLM:       client,
		Rubric:    store,
	}, nil
}

// Start registers infrastructure systems with the lifecycle coordinator.
// The LLM client is closed on shutdown.
func (i *Infrastructure) Start() error {
	i.Lifecycle.OnShutdown(func() {
		<-i.Lifecycle.Context().Done()
		if err := i.LLM.Close(); err != nil {
			i.Logger.Error("llm client close failed", "error", err)
		}
	})
	return nil
}
