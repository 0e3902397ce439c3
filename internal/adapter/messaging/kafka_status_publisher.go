package messaging

import (
	"context"
	"encoding/json"

	"atelier_lag/internal/domain/entities"
	"atelier_lag/internal/usecase/interfaces"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

const eventTypeStatusChanged = "order.status_changed"

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaStatusPublisher publishes StatusChanged events keyed by order id, so
// that the events of one order stay ordered within a partition.
type KafkaStatusPublisher struct {
	writer MessageWriter
}

var _ interfaces.IStatusEventPublisher = (*KafkaStatusPublisher)(nil)

func NewKafkaStatusPublisher(writer MessageWriter) *KafkaStatusPublisher {
	return &KafkaStatusPublisher{writer: writer}
}

func (p *KafkaStatusPublisher) PublishStatusChanged(ctx context.Context, evt entities.StatusChanged) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return errors.Wrap(err, "marshal status event")
	}

	msg := kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventTypeStatusChanged)},
		},
	}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{msg: &msg})

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrapf(err, "publish status event for order %s", evt.OrderID)
	}
	return nil
}

// headerCarrier lets the otel propagator write trace context into Kafka
// message headers.
type headerCarrier struct {
	msg *kafka.Message
}

func (c headerCarrier) Get(key string) string {
	for _, h := range c.msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Set(key, value string) {
	for i, h := range c.msg.Headers {
		if h.Key == key {
			c.msg.Headers[i].Value = []byte(value)
			return
		}
	}
	c.msg.Headers = append(c.msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.msg.Headers))
	for _, h := range c.msg.Headers {
		keys = append(keys, h.Key)
	}
	return keys
}

// NoopStatusPublisher drops events. It is used when no broker is configured.
type NoopStatusPublisher struct{}

var _ interfaces.IStatusEventPublisher = NoopStatusPublisher{}

func (NoopStatusPublisher) PublishStatusChanged(context.Context, entities.StatusChanged) error {
	return nil
}
