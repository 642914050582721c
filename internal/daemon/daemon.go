package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskomat/taskomat/internal/api"
	"github.com/taskomat/taskomat/internal/app/pipeline"
	"github.com/taskomat/taskomat/internal/domain"
	_ "github.com/taskomat/taskomat/internal/infra/metrics" // Register Prometheus metrics
	"github.com/taskomat/taskomat/internal/infra/sqlite"
	"github.com/taskomat/taskomat/internal/infra/todoist"
	"github.com/taskomat/taskomat/internal/nlp"
	"github.com/taskomat/taskomat/internal/nlp/dates"
)

// Daemon is the taskomat runtime. It wires the pipeline, the Todoist client,
// the history store, and the HTTP server together.
type Daemon struct {
	Config   Config
	DB       *sqlite.DB
	Todoist  *todoist.Client
	Pipeline *pipeline.Pipeline
	Server   *api.Server
	cancel   context.CancelFunc
}

// New creates and initializes a Daemon from the on-disk configuration.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	vocab := nlp.DefaultVocabulary()
	if cfg.Parser.VocabFile != "" {
		v, err := nlp.LoadVocabulary(cfg.Parser.VocabFile)
		if err != nil {
			return nil, fmt.Errorf("load vocabulary: %w", err)
		}
		vocab = v
	}

	resolver := dates.New(cfg.Parser.Locale, cfg.Parser.PreferFuture)

	client := todoist.NewClient(todoist.Config{
		Token:   cfg.Todoist.Token,
		BaseURL: cfg.Todoist.BaseURL,
	})

	d := &Daemon{
		Config:  cfg,
		Todoist: client,
	}

	var history pipeline.History
	if cfg.History.Enabled {
		db, err := sqlite.Open(taskomatHome())
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		d.DB = db
		history = db
	}

	d.Pipeline = pipeline.New(vocab, resolver, client, client, history)

	srv := api.NewServer(d.Pipeline, client)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	if d.DB != nil {
		srv.SetHistory(d.DB)
	}
	d.Server = srv

	return d, nil
}

// AddTasks runs one command through the pipeline. Used by the CLI.
func (d *Daemon) AddTasks(ctx context.Context, command string) ([]domain.SubmissionResult, error) {
	return d.Pipeline.Run(ctx, command)
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[daemon] shutdown: %v", err)
		}
		if d.DB != nil {
			_ = d.DB.Close()
		}
	}()

	fmt.Printf("taskomat serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
