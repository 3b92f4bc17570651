package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/Tarunsai01/ARIA/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventHandler processes one delivered event. A returned error Naks the
// message so JetStream redelivers it.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber attaches durable consumers to the EVENTS stream.
type Subscriber struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewSubscriber(url string) (*Subscriber, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}

	return &Subscriber{nc: nc, js: js}, nil
}

// Subscribe binds handler to every subject matching the pattern. The durable
// name pins consumer progress across restarts, so redeploys do not lose events.
func (s *Subscriber) Subscribe(subject string, durableName string, handler EventHandler) error {
	consumer, err := s.js.CreateOrUpdateConsumer(context.Background(), streamName, jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	if _, err := consumer.Consume(s.dispatch(handler)); err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	log.Printf("Subscribed to %s with durable %s", subject, durableName)
	return nil
}

// dispatch adapts an EventHandler to the JetStream callback shape and owns
// the ack decision.
func (s *Subscriber) dispatch(handler EventHandler) func(jetstream.Msg) {
	return func(msg jetstream.Msg) {
		var payload map[string]interface{}
		if err := json.Unmarshal(msg.Data(), &payload); err != nil {
			log.Printf("Error unmarshalling event data: %v", err)
			msg.Nak()
			return
		}

		// Publishers address events.<TYPE_CODE>. Hand consumers the bare code
		// so EventType survives the round trip through the bus.
		event := events.New(strings.TrimPrefix(msg.Subject(), subjectPrefix), payload)

		if err := handler(context.Background(), event); err != nil {
			log.Printf("Handler failed for event %s: %v", msg.Subject(), err)
			msg.Nak()
			return
		}

		msg.Ack()
	}
}

// Close closes the connection.
func (s *Subscriber) Close() {
	if s.nc != nil {
		s.nc.Close()
	}
}
