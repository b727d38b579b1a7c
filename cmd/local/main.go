// Command local runs the food tracker API as a plain HTTP server for
// development, with a JWT authenticator standing in for API Gateway and a
// hot-reloading config file.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"sync/atomic"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/mcgigglepop/react-native-macro-tracker/internal/config"
	"github.com/mcgigglepop/react-native-macro-tracker/internal/handlers"
	"github.com/mcgigglepop/react-native-macro-tracker/internal/middleware"
	"github.com/mcgigglepop/react-native-macro-tracker/internal/repository"
	"github.com/mcgigglepop/react-native-macro-tracker/internal/repository/ddb"
	"github.com/mcgigglepop/react-native-macro-tracker/internal/service/tracker"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file to overlay and hot reload")
	flag.Parse()

	cfg := config.New()
	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			log.Fatalf("unable to load config file: %v", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("unable to create logger: %v", err)
	}
	defer logger.Sync()

	// The current config lives behind an atomic pointer so the watcher can
	// swap it while requests read the JWT secret.
	var current atomic.Pointer[config.Config]
	current.Store(cfg)

	if *configPath != "" {
		watcher, err := config.NewWatcher(*configPath, cfg, logger)
		if err != nil {
			logger.Fatal("unable to watch config file", zap.Error(err))
		}
		defer watcher.Stop()
		watcher.OnChange(func(updated *config.Config) {
			current.Store(updated)
		})
	}

	if current.Load().JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set for the local server")
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.TODO(), awsConfig.WithRegion(cfg.Region))
	if err != nil {
		logger.Fatal("unable to load SDK config", zap.Error(err))
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := repository.NewBreakerStore(ddb.NewRecordStore(dbClient, cfg.TableName), logger)
	trackerService := tracker.NewService(store, logger)

	secret := func() string { return current.Load().JWTSecret }

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(chimiddleware.Recoverer)

	handlers.Routes(r, handlers.NewFoodHandler(trackerService, logger), middleware.JWTAuthenticator(secret, logger))

	addr := ":" + cfg.Port
	logger.Info("Local server listening",
		zap.String("addr", addr),
		zap.String("table", cfg.TableName),
	)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "DEBUG" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
