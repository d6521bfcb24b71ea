package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"golang.org/x/sync/errgroup"

	amqpadapter "github.com/ericfisherdev/budgetbot/internal/adapter/driven/amqp"
	sqliteadapter "github.com/ericfisherdev/budgetbot/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/budgetbot/internal/adapter/driving/http"
	"github.com/ericfisherdev/budgetbot/internal/adapter/driving/telegram"
	"github.com/ericfisherdev/budgetbot/internal/application"
	"github.com/ericfisherdev/budgetbot/internal/config"
	"github.com/ericfisherdev/budgetbot/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, config.ErrMissingToken) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on a missing bot token).
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	slog.Info("config loaded",
		"db_path", cfg.DBPath,
		"listen_addr", cfg.ListenAddr,
		"poll_timeout", cfg.PollTimeout,
		"amqp_enabled", cfg.HasAMQP(),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database and ensure the schema exists.
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("database ready", "path", cfg.DBPath)

	// 4. Wire adapters.
	categoryStore := sqliteadapter.NewCategoryRepo(db)
	expenseStore := sqliteadapter.NewExpenseRepo(db)

	var events driven.EventPublisher = amqpadapter.NopPublisher{}
	if cfg.HasAMQP() {
		publisher, err := amqpadapter.Dial(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := publisher.Close(); closeErr != nil {
				slog.Error("error closing amqp publisher", "error", closeErr)
			}
		}()
		events = publisher
		slog.Info("ledger events enabled", "exchange", cfg.AMQPExchange)
	}

	router := application.NewRouter(categoryStore, expenseStore, events, logger)

	// 5. Connect to Telegram.
	if err := telegram.UseLogger(logger); err != nil {
		return err
	}
	api, err := telegram.NewAPI(cfg.TelegramToken)
	if err != nil {
		return err
	}
	slog.Info("telegram authorized", "bot", api.Self.UserName)

	bot := telegram.NewBot(api, router, cfg.PollTimeout, logger)

	// 6. Run the bot and the HTTP surface until shutdown.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return bot.Run(gctx)
	})

	if cfg.HasHTTP() {
		apiHandler := httphandler.NewHandler(categoryStore, expenseStore, router.Commands(), logger)
		srv := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           httphandler.NewServeMux(apiHandler, logger),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		g.Go(func() error {
			slog.Info("http server starting", "addr", cfg.ListenAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Error("http server shutdown error", "error", err)
			}
			return nil
		})
	}

	slog.Info("budgetbot started", "commands", len(router.Commands()))

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("shutdown complete")
	return nil
}
