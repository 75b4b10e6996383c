package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockledger/internal/config"
	"github.com/mamadbah2/stockledger/internal/domain/ledger"
	"github.com/mamadbah2/stockledger/internal/repository/mongodb"
	"github.com/mamadbah2/stockledger/internal/repository/sheets"
	"github.com/mamadbah2/stockledger/internal/scheduler"
	"github.com/mamadbah2/stockledger/internal/server/handlers"
	"github.com/mamadbah2/stockledger/internal/server/router"
	commandsvc "github.com/mamadbah2/stockledger/internal/service/commands"
	"github.com/mamadbah2/stockledger/internal/service/inventory"
	reportingsvc "github.com/mamadbah2/stockledger/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/stockledger/internal/service/whatsapp"
	"github.com/mamadbah2/stockledger/pkg/clients/anthropic"
	whatsappclient "github.com/mamadbah2/stockledger/pkg/clients/whatsapp"
	"github.com/mamadbah2/stockledger/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)
	gin.SetMode(gin.ReleaseMode)

	ctx := context.Background()

	var (
		sheetsRepo  *sheets.GoogleSheetRepository
		sheetWriter reportingsvc.RowWriter
		archive     reportingsvc.ReportRepository
	)

	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetWriter = sheetsRepo
	} else {
		baseLogger.Warn("google sheets not configured, seeding from environment and skipping sheet reports")
	}

	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		archive = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, daily reports will not be archived")
	}

	var stockLedger *ledger.StockLedger
	if sheetsRepo != nil {
		stockLedger, err = inventory.NewLedgerFromSheet(ctx, sheetsRepo, cfg.Sheets.SeedRange)
	} else {
		stockLedger, err = inventory.NewLedgerFromConfig(cfg.Ledger)
	}
	if err != nil {
		baseLogger.Fatal("failed to seed stock ledger", zap.Error(err))
	}

	inventorySvc := inventory.NewService(stockLedger, cfg.Ledger.SKU, nil, baseLogger.Named("svc.inventory"))
	baseLogger.Info("stock ledger ready",
		zap.String("sku", cfg.Ledger.SKU),
		zap.Int64("stock", stockLedger.Stock()),
		zap.Int64("reserved", stockLedger.Reserved()),
		zap.Int64("max_capacity", stockLedger.MaxCapacity()))

	var (
		notifier       scheduler.Notifier
		webhookHandler *handlers.WebhookHandler
	)

	if cfg.WhatsApp.Enabled() {
		var aiClient anthropic.Client
		if cfg.AI.AnthropicKey != "" {
			aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
			baseLogger.Info("anthropic ai client enabled")
		} else {
			baseLogger.Warn("anthropic api key missing, natural language commands disabled")
		}

		dispatcher := commandsvc.NewService(inventorySvc, baseLogger.Named("svc.commands"))
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, aiClient, dispatcher, baseLogger.Named("svc.whatsapp"))

		inventorySvc.SetAlerter(messagingSvc)
		notifier = messagingSvc
		webhookHandler = handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp"))
	} else {
		baseLogger.Warn("whatsapp not configured, webhook and notifications disabled")
	}

	reportingSvc := reportingsvc.NewService(inventorySvc, archive, sheetWriter, cfg.Sheets.ReportRange, baseLogger.Named("svc.reporting"))

	sched, err := scheduler.NewScheduler(*cfg, reportingSvc, inventorySvc, notifier, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	stockHandler := handlers.NewStockHandler(inventorySvc, baseLogger.Named("handlers.stock"))
	engine := router.New(stockHandler, webhookHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-sigCtx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
