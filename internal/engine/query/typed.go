package query

import (
	"context"
	"fmt"

	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/zerr"
)

// Read is the typed form of Coordinator.Read.
func Read[T any](
	ctx context.Context,
	c *Coordinator,
	key domain.QueryKey,
	fetch func(ctx context.Context) (T, error),
	opts ...ReadOption,
) (T, error) {
	v, err := c.Read(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](key.String(), v)
}

// Mutate is the typed form of Coordinator.Mutate.
func Mutate[T any](
	ctx context.Context,
	c *Coordinator,
	desc domain.MutationDescriptor,
	fetch func(ctx context.Context) (T, error),
) (T, error) {
	v, err := c.Mutate(ctx, desc, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](desc.Name, v)
}

func cast[T any](name string, v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrCacheTypeMismatch, "typed read failed"), "query", name)
		return zero, zerr.With(err, "type", fmt.Sprintf("%T", v))
	}
	return t, nil
}
