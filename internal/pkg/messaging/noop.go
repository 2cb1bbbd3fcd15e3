package messaging

import "context"

// Noop discards published messages and never delivers any.
type Noop struct{}

// NewNoop returns a Messaging that does nothing.
func NewNoop() *Noop {
	return &Noop{}
}

// Publish validates the topic and drops the message.
func (*Noop) Publish(ctx context.Context, topic string, _ OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}
	return nil
}

// Consume blocks until ctx is canceled.
func (*Noop) Consume(ctx context.Context, topic string, handler Handler, _ ...ConsumeOption) error {
	if topic == "" {
		return ErrTopicRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}
	<-ctx.Done()
	return ctx.Err()
}

// Close implements io.Closer.
func (*Noop) Close() error {
	return nil
}
