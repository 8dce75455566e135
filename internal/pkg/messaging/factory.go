package messaging

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	DriverNSQ          = "nsq"
	DriverNATS         = "nats"
	DriverKafka        = "kafka"
	DriverGooglePubSub = "google-pubsub"
	// DriverMemory keeps messages in process. Meant for local runs and tests.
	DriverMemory = "memory"
)

// ErrUnknownDriver is returned for a driver name with no registered broker.
var ErrUnknownDriver = errors.New("messaging: unknown driver")

// FactoryOptions carries the settings of every broker; only the selected
// driver's block is read.
type FactoryOptions struct {
	NSQ    NSQConfig
	Kafka  KafkaConfig
	NATS   NATSConfig
	PubSub PubSubConfig
}

var drivers = map[string]func(context.Context, FactoryOptions) (Messaging, error){
	DriverNSQ: func(_ context.Context, o FactoryOptions) (Messaging, error) {
		return NewNSQ(o.NSQ)
	},
	DriverKafka: func(_ context.Context, o FactoryOptions) (Messaging, error) {
		return NewKafka(o.Kafka)
	},
	DriverNATS: func(_ context.Context, o FactoryOptions) (Messaging, error) {
		return NewNATS(o.NATS)
	},
	DriverGooglePubSub: func(ctx context.Context, o FactoryOptions) (Messaging, error) {
		return NewPubSub(ctx, o.PubSub)
	},
	DriverMemory: func(context.Context, FactoryOptions) (Messaging, error) {
		return NewMemory(), nil
	},
}

// Drivers lists the accepted driver names in sorted order.
func Drivers() []string {
	return slices.Sorted(maps.Keys(drivers))
}

// NewFromDriver connects to the broker named by driver.
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Messaging, error) {
	build, ok := drivers[strings.ToLower(strings.TrimSpace(driver))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownDriver, driver, strings.Join(Drivers(), ", "))
	}
	return build(ctx, opts)
}
