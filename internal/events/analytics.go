package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

const publishTimeout = 2 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Analytics publishes game events to Kafka. A nil *Analytics is valid and
// drops everything.
type Analytics struct {
	writer messageWriter
}

// NewAnalytics returns nil when no brokers are configured.
func NewAnalytics(brokers []string, topic string) *Analytics {
	if len(brokers) == 0 {
		return nil
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	log.Printf("[ANALYTICS] Publishing to %s on %v", topic, brokers)
	return &Analytics{writer: w}
}

// Publish writes payload plus "event" and "ts" as one message, leaving the
// caller's map untouched. The message is keyed by game_id when present so
// a game's events stay on one partition.
func (a *Analytics) Publish(ctx context.Context, event string, payload map[string]interface{}) error {
	if a == nil || a.writer == nil {
		return nil
	}
	msgBody := make(map[string]interface{}, len(payload)+2)
	for k, v := range payload {
		msgBody[k] = v
	}
	msgBody["event"] = event
	msgBody["ts"] = time.Now().UTC()

	b, err := json.Marshal(msgBody)
	if err != nil {
		return errors.Wrapf(err, "encode %s event", event)
	}

	msg := kafka.Message{Value: b}
	if id, ok := payload["game_id"]; ok {
		msg.Key = []byte(fmt.Sprint(id))
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := a.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrapf(err, "publish %s event", event)
	}
	return nil
}

func (a *Analytics) Close() error {
	if a == nil || a.writer == nil {
		return nil
	}
	return a.writer.Close()
}
