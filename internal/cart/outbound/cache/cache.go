// Package cache keeps carts in Redis, one list per customer.
package cache

import (
	"context"

	"github.com/pkaramon/book-store-sub000/internal/cart/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyPrefix = "cart:"

type Cache struct {
	client redis.Cmdable
	ins    instrument.Instrumentation
}

func New(client redis.Cmdable, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

// CartFor returns the customer's cart. A customer without a stored list gets
// an empty cart.
func (c *Cache) CartFor(ctx context.Context, customerID string) (_ *entity.Cart, err error) {
	ctx, span := c.startSpan(ctx, "CartFor", customerID)
	defer func() { endSpan(span, err) }()

	items, err := c.client.LRange(ctx, keyPrefix+customerID, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return entity.NewCart(customerID, items...), nil
}

// SaveCart replaces the stored list in one MULTI/EXEC.
func (c *Cache) SaveCart(ctx context.Context, cart *entity.Cart) (err error) {
	ctx, span := c.startSpan(ctx, "SaveCart", cart.CustomerID)
	defer func() { endSpan(span, err) }()

	key := keyPrefix + cart.CustomerID
	items := cart.GetAll()

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(items) > 0 {
			values := make([]any, len(items))
			for i, id := range items {
				values[i] = id
			}
			pipe.RPush(ctx, key, values...)
		}
		return nil
	})
	return err
}

func (c *Cache) startSpan(ctx context.Context, name, customerID string) (context.Context, trace.Span) {
	return c.ins.Tracer("cart.outbound.cache").Start(ctx, name,
		trace.WithAttributes(attribute.String("cart.customer_id", customerID)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
