package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"

	cqrs "github.com/paulvitic/cqrs-go"
	"github.com/paulvitic/cqrs-go/config"
	"github.com/paulvitic/cqrs-go/example/inventory"
	"github.com/paulvitic/cqrs-go/example/inventory/adapter"
	"github.com/paulvitic/cqrs-go/example/inventory/domain"
	cqrshttp "github.com/paulvitic/cqrs-go/http"
	"github.com/paulvitic/cqrs-go/telemetry"
)

const instrumentationName = "github.com/paulvitic/cqrs-go/example"

type Properties struct {
	Addr       string           `json:"addr" env:"INVENTORY_ADDR"`
	Store      string           `json:"store" env:"INVENTORY_STORE"`
	SQLitePath string           `json:"sqlitePath" env:"INVENTORY_SQLITE_PATH"`
	Debug      bool             `json:"debug" env:"INVENTORY_DEBUG"`
	Telemetry  telemetry.Config `json:"telemetry"`
}

func main() {
	dir := flag.String("config", ".", "directory holding properties files")
	profile := flag.String("profile", "", "properties profile, e.g. dev")
	flag.Parse()

	logger := cqrs.NewLogger("Inventory")
	if err := run(context.Background(), *dir, *profile, logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dir, profile string, logger *cqrs.Logger) error {
	props, err := config.Load[Properties](dir, profile)
	if err != nil {
		return fmt.Errorf("load properties: %w", err)
	}
	if props.Addr == "" {
		props.Addr = ":8080"
	}
	logger.SetDebug(props.Debug)

	shutdown, err := telemetry.Setup(ctx, props.Telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown: %v", err)
		}
	}()

	repo, closeRepo, err := openRepository(ctx, props)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRepo.Close(); err != nil {
			logger.Warn("close repository: %v", err)
		}
	}()

	metrics, err := telemetry.Metrics(otel.Meter(instrumentationName))
	if err != nil {
		return fmt.Errorf("setup metrics: %w", err)
	}
	inv, err := inventory.NewContext(repo,
		cqrs.WithLogger(logger),
		cqrs.WithMiddleware(
			telemetry.Tracing(otel.Tracer(instrumentationName)),
			metrics,
			cqrs.Logging(logger),
		),
	)
	if err != nil {
		return fmt.Errorf("register handlers: %w", err)
	}

	srv := cqrshttp.NewServer(props.Addr)
	srv.RegisterEndpoint(inv.Endpoints(cqrshttp.WithLogger(logger))...)

	errs := make(chan error, 1)
	go func() {
		errs <- srv.Start()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case err := <-errs:
		return err
	case sig := <-signals:
		logger.Info("Received %s, shutting down", sig)
		return srv.Stop()
	}
}

func openRepository(ctx context.Context, props *Properties) (domain.Repository, io.Closer, error) {
	switch props.Store {
	case "", "memory":
		return adapter.MemoryRepo(), nopCloser{}, nil
	case "sqlite":
		path := props.SQLitePath
		if path == "" {
			path = "inventory.db"
		}
		repo, err := adapter.OpenSQLite(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", props.Store)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
