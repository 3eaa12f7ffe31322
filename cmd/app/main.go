package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	pgadapter "fulfillment/internal/adapters/out/postgres"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	if err := configs.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))
	slog.SetDefault(logger)

	var gormDB *gorm.DB
	if configs.StorageDriver == cmd.StorageDriverPostgres {
		gormDB = mustGormOpen(configs)
	}

	doc, err := httpin.LoadOpenAPI(context.Background())
	if err != nil {
		log.Fatalf("load openapi document: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager, err := app.StartJobs()
	if err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}

	startWebServer(app, doc, configs.HTTPPort, logger)

	jobManager.StopAll()
	closeApp(app, logger)
}

// closeApp flushes the timeline publisher once nothing produces entries.
func closeApp(app *cmd.CompositionRoot, logger *slog.Logger) {
	if err := app.Close(); err != nil {
		logger.Error("failed to close timeline publisher", "error", err)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	return cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT", "8080"),
		DBHost:             goDotEnvVariable("DB_HOST", ""),
		DBPort:             goDotEnvVariable("DB_PORT", "5432"),
		DBUser:             goDotEnvVariable("DB_USER", ""),
		DBPassword:         goDotEnvVariable("DB_PASSWORD", ""),
		DBName:             goDotEnvVariable("DB_NAME", ""),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE", "disable"),
		StorageDriver:      goDotEnvVariable("STORAGE_DRIVER", cmd.StorageDriverPostgres),
		KafkaHost:          goDotEnvVariable("KAFKA_HOST", ""),
		KafkaTimelineTopic: goDotEnvVariable("KAFKA_TIMELINE_TOPIC", "fulfillment.timeline"),
		LogLevel:           goDotEnvVariable("LOG_LEVEL", "info"),
		MetricsNamespace:   goDotEnvVariable("METRICS_NAMESPACE", "fulfillment"),
		UrgencyWindowDays:  intVariable("URGENCY_WINDOW_DAYS", 3),
		UrgencySchedule:    goDotEnvVariable("URGENCY_SCHEDULE", "0 */15 * * * *"),
		AutoAssignHeads:    boolVariable("AUTO_ASSIGN_HEADS", false),
		HeadSchedule:       goDotEnvVariable("HEAD_SCHEDULE", "*/30 * * * * *"),
	}
}

func goDotEnvVariable(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func intVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s must be an integer: %v", key, err)
	}
	return v
}

func boolVariable(key string, fallback bool) bool {
	raw := goDotEnvVariable(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("%s must be a boolean: %v", key, err)
	}
	return v
}

func mustGormOpen(cfg cmd.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connection to postgres through gorm: %v", err)
	}
	if err = pgadapter.Migrate(db); err != nil {
		log.Fatalf("%v", err)
	}
	return db
}

func startWebServer(app *cmd.CompositionRoot, doc *httpin.OpenAPI, port string, logger *slog.Logger) {
	e := httpin.NewRouter(app.CreateServer(), app.Metrics(), doc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "error", err)
	}
}
