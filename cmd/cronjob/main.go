package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"trooptreasury-engine/internal/config"
	"trooptreasury-engine/internal/jobs"
	"trooptreasury-engine/internal/ledger"
	"trooptreasury-engine/internal/logger"
	"trooptreasury-engine/internal/repository/postgres"
	"trooptreasury-engine/internal/scheduler"
	"trooptreasury-engine/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ('audit-ledgers', 'preview-distributions', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Troop Treasury Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := postgres.Open(cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	reportPolicy := ledger.ApprovedOnly
	if cfg.Reports.IncludeUnapproved {
		reportPolicy = ledger.AllStatuses
	}
	svcs := service.Services{
		Treasury: service.NewTreasuryService(store.TroopRepository, store.TransactionRepository, store.ScoutRepository),
		Reports:  service.NewReportService(store.TroopRepository, store.TransactionRepository, store.ScoutRepository, reportPolicy),
		Fundraising: service.NewFundraisingService(
			store.TroopRepository,
			store.CampaignRepository,
			store,
			cfg.MinimumDeposit(),
		),
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store.TroopRepository, svcs, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if err := jobRunner.Run(*runOnce); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			fmt.Fprintf(os.Stderr, "Available jobs:\n  - %s\n  - %s\n  - all\n", jobs.JobAuditLedgers, jobs.JobPreviewDistributions)
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		logger.Error("Failed to register jobs", "error", err)
		log.Fatalf("Failed to register jobs: %v", err)
	}

	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}
