package utils

import (
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var messageMap sync.Map

// TrackMessage remembers the Kafka message a batch arrived in so its offset
// can be committed after the batch finishes processing.
func TrackMessage(batchID string, msg *kafka.Message) {
	messageMap.Store(batchID, msg)
}

func GetMessageForBatch(batchID string) (*kafka.Message, bool) {
	msg, ok := messageMap.Load(batchID)
	if !ok {
		return nil, false
	}
	messageMap.Delete(batchID)
	return msg.(*kafka.Message), true
}
