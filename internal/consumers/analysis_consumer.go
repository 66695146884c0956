// Package consumers holds the Kafka message loops that drive the analysis
// core from the stream side.
package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/techtitanians/sentiboard/internal/clients"
	"github.com/techtitanians/sentiboard/internal/clients/kafka_client"
	kafkautils "github.com/techtitanians/sentiboard/internal/clients/kafka_client/utils"
	"github.com/techtitanians/sentiboard/internal/db"
	"github.com/techtitanians/sentiboard/internal/models"
	"github.com/techtitanians/sentiboard/internal/pipeline"
	"github.com/techtitanians/sentiboard/internal/utils"
)

// AnalysisConsumer reads analysis requests off Kafka, runs them through the
// tier-fallback runner and publishes the results. Batch IDs already marked
// processed in Valkey are committed and skipped so redeliveries do not run
// twice.
type AnalysisConsumer struct {
	runner        *pipeline.Runner
	resultsBuffer *utils.BatchBuffer[models.AnalysisResultsEnvelope]
}

func NewAnalysisConsumer(runner *pipeline.Runner) *AnalysisConsumer {
	return &AnalysisConsumer{
		runner:        runner,
		resultsBuffer: utils.NewBatchBuffer[models.AnalysisResultsEnvelope](),
	}
}

// Start runs the consume loop until ctx is cancelled.
func (c *AnalysisConsumer) Start(ctx context.Context, consumer *kafka.Consumer) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[AnalysisConsumer] Consumer shutting down...")
			return
		default:
			msg, err := iterator.Next()
			if err != nil {
				kafkautils.HandleConsumerError(err)
				continue
			}

			var request models.AnalysisRequest
			if err := kafkautils.DeserializeFromJSON(msg.Value, &request); err != nil {
				kafkautils.HandleConsumerError(err)
				continue
			}

			if request.BatchID == "" || len(request.Texts) == 0 {
				slog.Warn("[AnalysisConsumer] Skipping malformed request",
					slog.String("batch_id", request.BatchID),
					slog.Int("texts", len(request.Texts)))
				if err := committer.Commit(msg); err != nil {
					slog.Warn("[AnalysisConsumer] Failed to commit malformed message",
						slog.String("error", err.Error()))
				}
				continue
			}

			if clients.GetValkeyClient().IsBatchProcessed(ctx, request.BatchID) {
				slog.Info("[AnalysisConsumer] Batch already processed, skipping",
					slog.String("batch_id", request.BatchID))
				if err := committer.Commit(msg); err != nil {
					slog.Warn("[AnalysisConsumer] Failed to commit duplicate message",
						slog.String("error", err.Error()))
				}
				continue
			}

			kafkautils.TrackMessage(request.BatchID, msg)

			results, report, err := c.runner.Analyze(ctx, request.Texts, nil)
			if err != nil {
				slog.Error("[AnalysisConsumer] Batch analysis failed",
					slog.String("batch_id", request.BatchID),
					slog.String("error", err.Error()))
				continue
			}

			c.resultsBuffer.Add(models.AnalysisResultsEnvelope{
				BatchID:   request.BatchID,
				Report:    report,
				Results:   results,
				Timestamp: time.Now().UTC(),
			})
			c.flushResults(ctx, committer)
		}
	}
}

// flushResults publishes buffered envelopes, persists their rows, then
// commits the offsets of the messages they came from. Nothing is committed
// for an envelope that failed to publish, so the request is redelivered.
func (c *AnalysisConsumer) flushResults(ctx context.Context, committer *kafka_client.KafkaCommitHandler) {
	batch := c.resultsBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	for _, envelope := range batch {
		var publishErr error
		for i := 0; i < 3; i++ {
			publishErr = kafka_client.PublishToKafka(kafka_client.KAFKA_TOPIC_ANALYSIS_RESULTS, envelope.BatchID, envelope)
			if publishErr == nil {
				break
			}
			slog.Warn("[AnalysisConsumer] Result publishing failed",
				slog.String("batch_id", envelope.BatchID),
				slog.Int("attempt", i+1),
				slog.String("error", publishErr.Error()))
			time.Sleep(2 * time.Second)
		}
		if publishErr != nil {
			continue
		}

		if err := db.BatchInsertResults(ctx, envelope.BatchID, envelope.Report.Tier, envelope.Results); err != nil {
			slog.Error("[AnalysisConsumer] Failed to store batch results",
				slog.String("batch_id", envelope.BatchID),
				slog.String("error", err.Error()))
		}

		if err := clients.GetValkeyClient().MarkBatchProcessed(ctx, envelope.BatchID); err != nil {
			slog.Warn("[AnalysisConsumer] Failed to mark batch as processed",
				slog.String("batch_id", envelope.BatchID),
				slog.String("error", err.Error()))
		}

		if trackedMsg, found := kafkautils.GetMessageForBatch(envelope.BatchID); found {
			if err := committer.Commit(trackedMsg); err != nil {
				slog.Warn("[AnalysisConsumer] Failed to commit offset",
					slog.String("batch_id", envelope.BatchID),
					slog.String("error", err.Error()))
			}
		}
	}
}
