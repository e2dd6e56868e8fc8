package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang-investment-alert/internal/alert/config"
	"golang-investment-alert/internal/alert/repository"
	"golang-investment-alert/internal/alert/service"
	"golang-investment-alert/pkg/logger"
	"golang-investment-alert/pkg/telegram"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the alert batch once for every configured ticker",
	Run:   runOnce,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the alert batch on a cron schedule",
	Run:   runServe,
}

func initService(cfg *config.Config, appLogger *logger.Logger) (service.AlertService, error) {
	chatIDs := telegram.ParseChatIDs(cfg.Telegram.ChatIDs, appLogger)
	notifier, err := telegram.NewClient(cfg.Telegram.BotToken, chatIDs, appLogger)
	if err != nil {
		return nil, err
	}

	yahooRepo := repository.NewYahooFinanceRepository(cfg, appLogger)
	edgarRepo := repository.NewEdgarRepository(cfg, appLogger)
	newsRepo := repository.NewNewsRepository(cfg, appLogger)

	return service.NewAlertService(cfg, appLogger, yahooRepo, edgarRepo, newsRepo, notifier), nil
}

func runOnce(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting investment alert batch", zap.String("name", cfg.App.Name))

	svc, err := initService(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Telegram notifier", zap.Error(err))
	}

	reports, err := svc.RunAll(context.Background())
	if err != nil {
		appLogger.Error("Alert batch interrupted", zap.Error(err))
	}

	for _, report := range reports {
		appLogger.Info("Run complete",
			zap.String("ticker", report.Ticker),
			zap.Int("score", report.Score),
		)
	}
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting investment alert scheduler", zap.String("name", cfg.App.Name))

	svc, err := initService(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Telegram notifier", zap.Error(err))
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.Scheduler.Cron, func() {
		if _, err := svc.RunAll(ctx); err != nil {
			appLogger.Error("Alert batch interrupted", zap.Error(err))
		}
	}); err != nil {
		appLogger.Fatal("Invalid cron expression", zap.Error(err), zap.String("cron", cfg.Scheduler.Cron))
	}
	c.Start()

	appLogger.Info("Scheduler started. Waiting for next run...", zap.String("cron", cfg.Scheduler.Cron))

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down scheduler...")
	cancel()
	<-c.Stop().Done()
	appLogger.Info("Scheduler stopped.")
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "investment-alert",
		Short: "A CLI for the stock opportunity alert bot",
		Long:  `Investment Alert fetches price moves, SEC filings and news for a ticker list, scores each ticker and sends Telegram notifications.`,
	}

	runCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(runCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing investment-alert CLI: %s\n", err)
		os.Exit(1)
	}
}
