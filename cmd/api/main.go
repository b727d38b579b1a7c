package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
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

var chiLambda *chiadapter.ChiLambdaV2

func init() {
	cfg := config.New()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("unable to create logger: %v", err)
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.TODO(), awsConfig.WithRegion(cfg.Region))
	if err != nil {
		log.Fatalf("unable to load SDK config: %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := repository.NewBreakerStore(ddb.NewRecordStore(dbClient, cfg.TableName), logger)
	trackerService := tracker.NewService(store, logger)

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

	handlers.Routes(r, handlers.NewFoodHandler(trackerService, logger), middleware.LambdaAuthenticator(logger))

	chiLambda = chiadapter.NewV2(r)

	logger.Info("Service initialized successfully", zap.String("table", cfg.TableName))
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "DEBUG" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return chiLambda.ProxyWithContextV2(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
