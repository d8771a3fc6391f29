package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/cmd"
	httpadapter "github.com/Tenten1007/MenuCoffee-v2-sub000/internal/adapters/in/http"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/adapters/out/eventbus"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/adapters/out/postgres/menurepo"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/adapters/out/postgres/orderrepo"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := mustOpenDB(configs)

	app := cmd.NewCompositionRoot(configs, db, logger)

	jobManager := mustStartJobs(&app, configs, logger)
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	config := cmd.Config{
		HTTPPort:         envOrDefault("HTTP_PORT", "8080"),
		DBHost:           envOrDefault("DB_HOST", "localhost"),
		DBPort:           envOrDefault("DB_PORT", "5432"),
		DBUser:           envOrDefault("DB_USER", "postgres"),
		DBPassword:       envOrDefault("DB_PASSWORD", "postgres"),
		DBName:           envOrDefault("DB_NAME", "coffee"),
		DBSslMode:        envOrDefault("DB_SSLMODE", "disable"),
		EventBufferSize:  envIntOrDefault("EVENT_BUFFER_SIZE", eventbus.DefaultBufferSize),
		ArchivalSchedule: envOrDefault("ARCHIVAL_SCHEDULE", "0 4 * * *"),
	}
	return config
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid %s value %q: %v", key, value, err)
	}
	return parsed
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.OrderHistoryDTO{},
		&orderrepo.OrderHistoryItemDTO{},
		&menurepo.MenuItemDTO{},
		&menurepo.MenuOptionDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func mustStartJobs(app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) *jobs.JobManager {
	archiveHandler, err := app.CreateArchiveStaleOrdersCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create archival handler: %v", err)
	}

	jobManager := jobs.NewJobManager(archiveHandler, configs.ArchivalSchedule, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	return jobManager
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	createOrderHandler, err := app.CreateCreateOrderCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create order handler: %v", err)
	}
	updateStatusHandler, err := app.CreateUpdateOrderStatusCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create status handler: %v", err)
	}
	archiveOrderHandler, err := app.CreateArchiveOrderCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create archive handler: %v", err)
	}

	server := httpadapter.NewServer(
		createOrderHandler,
		updateStatusHandler,
		archiveOrderHandler,
		app.CreateGetOrdersQueryHandler(),
		app.CreateGetOrderQueryHandler(),
		app.ConnectionRegistry(),
	)

	e := echo.New()
	e.Use(middleware.Recover())
	server.RegisterRoutes(e)

	defer app.ConnectionRegistry().CloseAll()
	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
