package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrTopicRequired is returned when the topic/subject is empty.
	ErrTopicRequired = errors.New("messaging: topic is required")
	// ErrHandlerRequired is returned when Consume is called with a nil handler.
	ErrHandlerRequired = errors.New("messaging: handler is required")
	// ErrClosed is returned when the client has already been closed.
	ErrClosed = errors.New("messaging: client is closed")
)

// Messaging is a broker client that can publish and consume messages.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, msg OutgoingMessage) error
}

// Consumer consumes messages from a topic.
type Consumer interface {
	// Consume blocks delivering messages to handler until ctx is canceled or
	// the client is closed.
	Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes a received message. A non-nil error asks the broker for
// redelivery when the broker supports it.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a message to be published.
type OutgoingMessage struct {
	Body []byte
	// Headers are carried natively by NATS and dropped by NSQ.
	Headers map[string]string
}

// Message is a received message.
type Message struct {
	ID         string
	Topic      string
	Body       []byte
	Headers    map[string]string
	Attempts   int
	ReceivedAt time.Time
}
