// Package messaging publishes and consumes broker messages behind a small
// interface so use cases do not depend on a particular broker.
//
// NATS and NSQ are supported; the noop driver discards everything and is used
// when no broker is configured.
package messaging
