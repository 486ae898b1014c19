package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "car-rental-backend/internal/api/http"
	"car-rental-backend/internal/config"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository/postgres"
	"car-rental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Car Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	vehicleSvc := service.NewVehicleService(store.VehicleRepository, cfg.Rules)
	customerSvc := service.NewCustomerService(store.CustomerRepository, store.RentalRepository, cfg.Rules)
	rentalSvc := service.NewRentalService(
		store,
		store.RentalRepository,
		store.VehicleRepository,
		store.CustomerRepository,
		nil,
		cfg.Rules,
	)
	reportSvc := service.NewReportService(store.ReportRepository)

	// Initialize HTTP handlers
	vehicleHandler := httpapi.NewVehicleHandler(vehicleSvc)
	customerHandler := httpapi.NewCustomerHandler(customerSvc)
	rentalHandler := httpapi.NewRentalHandler(rentalSvc)
	reportHandler := httpapi.NewReportHandler(reportSvc)

	router := httpapi.NewRouter(vehicleHandler, customerHandler, rentalHandler, reportHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
