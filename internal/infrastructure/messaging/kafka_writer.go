package messaging

import (
	"time"

	"atelier_lag/internal/infrastructure/config"

	"github.com/segmentio/kafka-go"
)

// NewStatusWriter returns a writer for the status-changed topic, or nil when
// no broker is configured.
func NewStatusWriter(cfg config.Config) *kafka.Writer {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaStatusTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}
}
