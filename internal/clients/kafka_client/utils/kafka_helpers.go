// Package utils holds the JSON codec helpers and per-batch message tracking
// shared by the Kafka producer and consumers.
package utils

import (
	"encoding/json"
	"log/slog"
)

// SerializeToJSON marshals a payload for publishing, logging failures at
// the call site's level of detail is the caller's job.
func SerializeToJSON(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("[KafkaUtils] Failed to serialize JSON",
			slog.String("error", err.Error()))
		return nil, err
	}
	return data, nil
}

// DeserializeFromJSON unmarshals an incoming message value into v.
func DeserializeFromJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("[KafkaUtils] Failed to deserialize JSON",
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// HandleConsumerError logs a consume-loop error; the loop itself decides
// whether to continue.
func HandleConsumerError(err error) {
	if err == nil {
		return
	}
	slog.Error("[KafkaUtils] Kafka Consumer Error",
		slog.String("error", err.Error()))
}
