package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const TopicAppointmentCreated = "appointment.created"

// KafkaSender keys messages by appointment id so events of one
// appointment stay ordered within a partition.
type KafkaSender struct {
	writer *kafka.Writer
}

func NewKafkaSender(brokers []string, topic string) *KafkaSender {
	if topic == "" {
		topic = TopicAppointmentCreated
	}
	return &KafkaSender{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers:  brokers,
			Topic:    topic,
			Balancer: &kafka.Hash{},
		}),
	}
}

func (k *KafkaSender) Name() string { return "kafka" }

func (k *KafkaSender) Send(ctx context.Context, ev Event) error {
	msg, err := kafkaMessage(ev)
	if err != nil {
		return err
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (k *KafkaSender) Close() error {
	return k.writer.Close()
}

func kafkaMessage(ev Event) (kafka.Message, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(ev.Key()),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Event)},
			{Key: "message_id", Value: []byte(uuid.NewString())},
		},
	}, nil
}

// SplitBrokers parses a comma separated broker list.
func SplitBrokers(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
