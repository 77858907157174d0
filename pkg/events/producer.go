// Package events publishes pass-resolution audit events. Publishing is
// best-effort: the read path never fails because the broker is down.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"frontdesk/pkg/logger"
	"frontdesk/pkg/model"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

// PassResolved is emitted once per successful pass resolution.
type PassResolved struct {
	RequestID  string    `json:"request_id,omitempty"`
	PersonType string    `json:"person_type"`
	PersonID   int64     `json:"person_id"`
	Source     string    `json:"source"`
	Resource   string    `json:"resource,omitempty"`
	Matches    int       `json:"matches,omitempty"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// Producer wraps a kafka-go writer. A nil Producer is valid and publishes
// nothing, which is how deployments without a broker run.
type Producer struct {
	writer *kafka.Writer
	log    *logger.Logger
}

func NewProducer(brokers []string, topic string, log *logger.Logger) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Compression:  compress.Snappy,
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("Kafka writer error", "detail", fmt.Sprintf(msg, args...))
		}),
	}

	return &Producer{writer: writer, log: log}, nil
}

// PublishPassResolved emits the event, keyed by person so per-person order
// is preserved across partitions. Failures are logged and swallowed.
func (p *Producer) PublishPassResolved(ctx context.Context, ev PassResolved) {
	if p == nil {
		return
	}

	value, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("Failed to encode pass-resolved event", "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%s:%d", ev.PersonType, ev.PersonID)),
		Value: value,
		Time:  ev.ResolvedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Failed to publish pass-resolved event",
			"error", err,
			"person_type", ev.PersonType,
			"person_id", ev.PersonID,
		)
	}
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}

// EventFromPass builds the audit payload for a completed resolution.
func EventFromPass(requestID string, kind model.PersonKind, ref model.PersonRef, pass *model.Pass, matches int, at time.Time) PassResolved {
	ev := PassResolved{
		RequestID:  requestID,
		PersonType: string(kind),
		PersonID:   ref.ID,
		Source:     model.SourceNone,
		Matches:    matches,
		ResolvedAt: at,
	}
	if pass != nil {
		ev.Source = pass.Source
		ev.Resource = pass.Resource
	}
	return ev
}
