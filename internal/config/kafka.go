package config

import (
	"os"
	"strings"

	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter returns a writer for the given topic, or nil when no
// brokers are configured. A nil writer disables event publishing so the
// service runs standalone against its flat-file store.
func NewKafkaWriter(topic string) *kafka.Writer {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{}, // Balancer for selecting partition
		AllowAutoTopicCreation: true,
	}
}
