// Package messaging publishes and consumes events through a configurable
// broker: NATS, NSQ, Kafka, Google Pub/Sub or an in-process memory bus.
package messaging
