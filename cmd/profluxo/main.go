package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/renato-web/Profluxo/internal/cli"
	"github.com/renato-web/Profluxo/internal/config"
	"github.com/renato-web/Profluxo/internal/db"
	"github.com/renato-web/Profluxo/internal/llm"
	"github.com/renato-web/Profluxo/internal/repository"
	"github.com/renato-web/Profluxo/internal/service"
	"github.com/renato-web/Profluxo/internal/session"
	"github.com/renato-web/Profluxo/internal/summary"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)
	if cfg.DefaultManagerPassword {
		slog.Warn("using the default management password; set PROFLUXO_MANAGER_PASSWORD_HASH")
	}

	app := &cli.App{
		RepairSQL: db.RepairSQL,
		In:        os.Stdin,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	// Wire the row store
	store, closer, err := openStore(ctx, cfg, app)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctrl := service.NewController(store, session.NewFileStore(cfg.Home), cfg.ManagerPasswordHash,
		service.WithObserver(service.NewLogUseCaseObserver(logger)))
	if err := ctrl.Restore(); err != nil {
		return err
	}
	app.Controller = ctrl

	// Wire the narrative summary. A provider that cannot be built leaves the
	// service answering with its fallback text.
	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		observer = llm.NewLogObserver(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}
	client, err := llm.NewClient(ctx, cfg.LLM, observer)
	if err != nil {
		slog.Warn("narrative summary unavailable", "error", err)
		client = nil
	}
	app.Summary = summary.NewService(client)

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// openStore opens the configured backend. The returned closer releases the
// connection; it is a no-op for the REST store.
func openStore(ctx context.Context, cfg config.Config, app *cli.App) (repository.RowStore, io.Closer, error) {
	switch cfg.Store {
	case config.StorePostgres:
		pg, err := db.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		app.ApplyRepair = func(ctx context.Context) error { return db.ApplyRepairSQL(ctx, pg) }
		return repository.NewPostgresTaskLogRepo(pg, cfg.Table), pg, nil

	case config.StoreREST:
		return repository.NewRESTTaskLogRepo(cfg.RESTURL, cfg.RESTKey, cfg.Table, nil), io.NopCloser(nil), nil

	default:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return repository.NewSQLiteTaskLogRepo(database), database, nil
	}
}
