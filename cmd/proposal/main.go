package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/proposal/internal/api"
	"github.com/alexanderramin/proposal/internal/cache"
	"github.com/alexanderramin/proposal/internal/cli"
	"github.com/alexanderramin/proposal/internal/config"
	"github.com/alexanderramin/proposal/internal/db"
	"github.com/alexanderramin/proposal/internal/llm"
	"github.com/alexanderramin/proposal/internal/logging"
	"github.com/alexanderramin/proposal/internal/repository"
	"github.com/alexanderramin/proposal/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	serving := len(os.Args) > 1 && os.Args[1] == "serve"
	logger, err := logging.New(os.Stderr, logLevel(cfg.LogLevel, serving), cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sessionRepo := repository.NewSQLiteProposalSessionRepo(database)
	messageRepo := repository.NewSQLiteChatMessageRepo(database)
	sectionRepo := repository.NewSQLiteSectionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Optional document cache
	var docCache cache.DocumentCache = cache.Noop{}
	var cachePinger api.Pinger
	if cfg.CacheEnabled() {
		redisCache, err := cache.NewRedisCacheFromURL(cfg.RedisURL, cfg.DocumentCacheTTL)
		if err != nil {
			return err
		}
		defer redisCache.Close()
		docCache, cachePinger = redisCache, redisCache
	}

	// Wire services
	intake := service.NewIntakeService(service.IntakeDeps{
		Sessions: sessionRepo,
		Messages: messageRepo,
		UoW:      uow,
		LLM:      newLLMClient(ctx, logger),
		Cache:    docCache,
		Logger:   logger,
	}, service.NewLogUseCaseObserver(logger))
	sessions := service.NewSessionService(sessionRepo, messageRepo, sectionRepo, docCache)

	app := &cli.App{
		Intake:   intake,
		Sessions: sessions,
		Serve: func(ctx context.Context) error {
			router := api.NewRouter(
				api.NewHandler(intake, sessions, logger),
				api.NewHealthHandler(sessions, cachePinger),
				cfg.CORSOrigins,
			)
			return api.NewServer(cfg.HTTPAddr, router, cfg.ShutdownTimeout, logger).Serve(ctx)
		},
		IsInteractive: func() bool {
			return isTerminal(os.Stdin) && isTerminal(os.Stdout)
		},
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.SilenceErrors = true
	return rootCmd.ExecuteContext(ctx)
}

// newLLMClient builds the configured provider client. When the provider
// cannot be configured the CLI still starts, and model calls fail with
// llm.ErrProviderUnavailable.
func newLLMClient(ctx context.Context, logger *slog.Logger) llm.LLMClient {
	cfg, err := llm.LoadConfig()
	if err == nil {
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LogCalls {
			observer = llm.NewSlogObserver(logger)
		}
		var client llm.LLMClient
		if client, err = llm.NewClient(ctx, cfg, observer); err == nil {
			return client
		}
	}
	logger.Info("llm provider not configured; model calls will fail", "error", err)
	return llm.Unavailable{Err: err}
}

// logLevel keeps interactive commands quiet below warn so log lines do not
// interleave with the conversation.
func logLevel(configured string, serving bool) string {
	if serving {
		return configured
	}
	if lvl, err := logging.ParseLevel(configured); err == nil && lvl < slog.LevelWarn {
		return "warn"
	}
	return configured
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
