// Package reqid tags a context with an invocation id so paired start/finish
// events can be correlated.
package reqid

import (
	"context"
	"sync/atomic"
)

type key struct{}

var counter atomic.Int64

// NewContext returns a copy of parent carrying a fresh id.
func NewContext(parent context.Context) (context.Context, int64) {
	id := counter.Add(1)
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the id from ctx.
func FromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(key{}).(int64)
	return id, ok
}

// Ensure returns ctx unchanged when it already carries an id, otherwise a
// copy with a fresh one.
func Ensure(ctx context.Context) (context.Context, int64) {
	if id, ok := FromContext(ctx); ok {
		return ctx, id
	}
	return NewContext(ctx)
}
