package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/techtitanians/sentiboard/config"
	"github.com/techtitanians/sentiboard/internal/analysis"
	"github.com/techtitanians/sentiboard/internal/clients"
	"github.com/techtitanians/sentiboard/internal/clients/kafka_client"
	"github.com/techtitanians/sentiboard/internal/consumers"
	"github.com/techtitanians/sentiboard/internal/db"
	"github.com/techtitanians/sentiboard/internal/envdetect"
	"github.com/techtitanians/sentiboard/internal/heuristic"
	"github.com/techtitanians/sentiboard/internal/logging"
	"github.com/techtitanians/sentiboard/internal/modelhub"
	"github.com/techtitanians/sentiboard/internal/models"
	"github.com/techtitanians/sentiboard/internal/pipeline"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	settings := config.FromEnv()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	clients.InitValkey()
	defer clients.CloseValkey()
	db.InitDynamoDB()

	cfg := kafka_client.GetKafkaConfig()
	for {
		err := kafka_client.InitKafkaProducer(cfg)
		if err == nil {
			break
		}

		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer kafka_client.CloseKafkaProducer()

	hub := modelhub.New()
	provider := modelhub.NewHugotProvider(settings, hub)
	defer provider.Close()

	analyzers := map[models.ProcessingTier]pipeline.ChunkAnalyzer{
		models.TierFull:        analysis.NewFullAnalyzer(settings, hub),
		models.TierLightweight: heuristic.New(heuristic.Lightweight, settings.KeywordTopN),
		models.TierEmergency:   heuristic.New(heuristic.Emergency, settings.KeywordTopN),
	}
	runner := pipeline.NewRunner(settings, envdetect.New(settings.ForceConstrainedAt), analyzers)

	analysisConsumer := consumers.NewAnalysisConsumer(runner)
	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_ANALYSIS_REQUESTS, analysisConsumer.Start)

	if err := kafka_client.StartConsumer(ctx); err != nil {
		slog.Error("[Main] Failed to start consumer",
			slog.String("error", err.Error()))
	}
}
