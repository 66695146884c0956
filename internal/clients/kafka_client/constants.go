package kafka_client

import "time"

const (
	KAFKA_TOPIC_ANALYSIS_REQUESTS = "analysis-requests" // batched texts submitted for analysis
	KAFKA_TOPIC_ANALYSIS_RESULTS  = "analysis-results"  // batched results from analysis
)

const (
	MAX_RETRIES = 5
	RETRY_DELAY = 2 * time.Second
)
