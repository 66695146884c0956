package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/techtitanians/sentiboard/internal/clients"
	"github.com/techtitanians/sentiboard/internal/models"
)

const ANALYSIS_RESULTS_TABLE_NAME = "AnalysisResults"

// resultTTL is how long stored rows stay queryable before DynamoDB expires
// them.
const resultTTL = 7 * 24 * time.Hour

var dbClient *dynamodb.Client

func InitDynamoDB() {
	dbClient = clients.GetDynamoDBClient()
}

// storedResult is the persisted shape of one result row. The composite key
// is batch_id (partition) and item_index (sort) so a whole batch reads back
// in input order with a single query.
type storedResult struct {
	BatchID    string   `dynamodbav:"batch_id"`
	ItemIndex  int      `dynamodbav:"item_index"`
	Text       string   `dynamodbav:"text"`
	Sentiment  string   `dynamodbav:"sentiment"`
	Confidence float64  `dynamodbav:"confidence"`
	RawScore   int      `dynamodbav:"raw_score"`
	Keywords   []string `dynamodbav:"keywords"`
	UseCase    string   `dynamodbav:"use_case"`
	Tier       string   `dynamodbav:"tier"`
	CreatedAt  int64    `dynamodbav:"created_at"`
	ExpiresAt  int64    `dynamodbav:"expires_at"`
}

// BatchInsertResults persists every row of a finished batch. Writes go out
// in groups of 25 (the BatchWriteItem ceiling) with a bounded retry for
// unprocessed items.
func BatchInsertResults(ctx context.Context, batchID string, tier models.ProcessingTier, results []models.AnalysisResult) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	now := time.Now()
	expiresAt := now.Add(resultTTL).Unix()

	const maxBatchSize = 25
	for i := 0; i < len(results); i += maxBatchSize {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
		}

		end := i + maxBatchSize
		if end > len(results) {
			end = len(results)
		}

		writeRequests := make([]types.WriteRequest, 0, maxBatchSize)
		for j, result := range results[i:end] {
			item, err := attributevalue.MarshalMap(storedResult{
				BatchID:    batchID,
				ItemIndex:  i + j,
				Text:       result.Text,
				Sentiment:  result.Sentiment.String(),
				Confidence: result.Confidence,
				RawScore:   result.RawScore,
				Keywords:   result.Keywords,
				UseCase:    result.UseCase,
				Tier:       tier.String(),
				CreatedAt:  now.Unix(),
				ExpiresAt:  expiresAt,
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to marshal result row: %w", err)
			}
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		out, err := dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				ANALYSIS_RESULTS_TABLE_NAME: writeRequests,
			},
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Failed to batch write results: %w", err)
		}

		retryCount := 0
		backoff := 500 * time.Millisecond
		for len(out.UnprocessedItems) > 0 && retryCount < 3 {
			time.Sleep(backoff)
			backoff *= 2
			slog.Warn("[DynamoDB] Retrying unprocessed result items...",
				slog.Int("attempt", retryCount+1),
				slog.Int("remaining", len(out.UnprocessedItems[ANALYSIS_RESULTS_TABLE_NAME])))

			out, err = dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: out.UnprocessedItems,
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Retry error %w", err)
			}
			retryCount++
		}

		if len(out.UnprocessedItems) > 0 {
			slog.Error("[DynamoDB] Some result items failed after retries",
				slog.Int("remaining", len(out.UnprocessedItems[ANALYSIS_RESULTS_TABLE_NAME])))
		}
	}

	slog.Info("[DynamoDB] Successfully stored batch results",
		slog.String("batch_id", batchID),
		slog.Int("count", len(results)))
	return nil
}

// GetBatchResults reads back every stored row of a batch in item order.
func GetBatchResults(ctx context.Context, batchID string) ([]models.AnalysisResult, error) {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(ANALYSIS_RESULTS_TABLE_NAME),
		KeyConditionExpression: aws.String("batch_id = :batch_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":batch_id": &types.AttributeValueMemberS{Value: batchID},
		},
	}

	var stored []storedResult
	paginator := dynamodb.NewQueryPaginator(dbClient, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Query for batch results failed: %w", err)
		}
		var page []storedResult
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal result page", slog.String("error", err.Error()))
			return nil, err
		}
		stored = append(stored, page...)
	}

	results := make([]models.AnalysisResult, 0, len(stored))
	for _, s := range stored {
		sentiment, err := models.ParseSentiment(s.Sentiment)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Stored row has unknown sentiment: %w", err)
		}
		results = append(results, models.AnalysisResult{
			Text:       s.Text,
			Sentiment:  sentiment,
			Confidence: s.Confidence,
			RawScore:   s.RawScore,
			Keywords:   s.Keywords,
			UseCase:    s.UseCase,
		})
	}

	slog.Info("[DynamoDB] Successfully retrieved batch results",
		slog.String("batch_id", batchID),
		slog.Int("count", len(results)))
	return results, nil
}
