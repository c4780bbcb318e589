package broker

import "context"

// Publisher sends one keyed message to the configured destination.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher that drops every message.
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, string, []byte) error { return nil }
func (nopPublisher) Close() error                                 { return nil }
