package utils

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/draftbook/clinic-management-backend/config"
)

var kafkaWriter *kafka.Writer

// InitKafka sets up the notification event writer. Kafka is optional;
// with no brokers configured events are dropped with a log line.
func InitKafka(cfg *config.Config) {
	if cfg.KafkaBrokers == "" {
		log.Println("ℹ️ Kafka disabled (no brokers configured)")
		return
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
	log.Printf("✅ Kafka writer ready (topic %s)", cfg.KafkaTopic)
}

// PublishEvent emits a notification event. Best effort: failures are
// logged and never surfaced to the request that triggered them.
func PublishEvent(eventType string, payload interface{}) {
	if kafkaWriter == nil {
		return
	}

	value, err := json.Marshal(payload)
	if err != nil {
		log.Printf("⚠️ Kafka payload marshal failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		log.Printf("⚠️ Kafka publish failed for %s: %v", eventType, err)
	}
}

// CloseKafka flushes pending messages on shutdown.
func CloseKafka() {
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			log.Printf("⚠️ Kafka close: %v", err)
		}
	}
}
