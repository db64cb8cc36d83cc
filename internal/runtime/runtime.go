// Package runtime binds a resolver map to an execution engine.
//
// The engine owns parsing, validation and completion. It calls back into a
// Runtime for each field, keyed by parent type and field name:
//   - objectType is the GraphQL type name (e.g. "User"), the root type name for
//     root fields.
//   - source is the parent value, nil for root fields. For subscription root
//     fields it is the event payload produced by the stream.
//   - args holds the already-coerced arguments. The Runtime never mutates
//     source or args.
//
// Fields without a resolver fall back to a property lookup on map sources.
package runtime

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/aexol-studio/axolotl-sub001/internal/resolver"
)

var (
	// ErrNoResolver is returned by Subscribe when the field has no resolver.
	ErrNoResolver = errors.New("no resolver")
	// ErrNotSubscription is returned by Subscribe for field resolvers.
	ErrNotSubscription = errors.New("resolver is not a subscription")
)

// TypenameKey is the property ResolveType reads from map values.
const TypenameKey = "__typename"

// Task is one field to resolve in a batch.
type Task struct {
	ObjectType string
	Field      string
	Source     any
	Args       map[string]any
}

// Result is the outcome of one Task. Error is specific to this element.
type Result struct {
	Value any
	Error error
}

// Runtime dispatches field calls to a resolver map. It is safe for concurrent
// use as long as the map is not modified.
type Runtime struct {
	resolvers   resolver.Map
	concurrency int
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithConcurrency bounds the number of tasks BatchResolve runs at once. Zero
// or negative means unbounded.
func WithConcurrency(n int) Option {
	return func(r *Runtime) { r.concurrency = n }
}

// New creates a Runtime over m, typically the output of federation.Merge.
func New(m resolver.Map, opts ...Option) *Runtime {
	r := &Runtime{resolvers: m}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve resolves one field value.
func (r *Runtime) Resolve(ctx context.Context, objectType, field string, source any, args map[string]any) (any, error) {
	res, ok := r.resolvers.Lookup(objectType, field)
	if !ok {
		return defaultResolve(source, field), nil
	}
	switch res := res.(type) {
	case resolver.FieldFunc:
		return res(ctx, resolver.Input{Source: source, Args: args})
	case *resolver.Subscription:
		return source, nil
	default:
		return nil, fmt.Errorf("%s.%s: unsupported resolver %T", objectType, field, res)
	}
}

// Subscribe opens the event stream of a subscription field.
func (r *Runtime) Subscribe(ctx context.Context, objectType, field string, source any, args map[string]any) (resolver.Stream, error) {
	res, ok := r.resolvers.Lookup(objectType, field)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", objectType, field, ErrNoResolver)
	}
	sub, ok := res.(*resolver.Subscription)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", objectType, field, ErrNotSubscription)
	}
	return sub.Invoke(ctx, resolver.Input{Source: source, Args: args}), nil
}

// BatchResolve resolves tasks concurrently.
//
// Requirements:
// - len(results) == len(tasks), and results[i] corresponds to tasks[i].
// - A failing task does not affect the others.
func (r *Runtime) BatchResolve(ctx context.Context, tasks []Task) []Result {
	results := make([]Result, len(tasks))
	var g errgroup.Group
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}
	for i, task := range tasks {
		g.Go(func() error {
			v, err := r.Resolve(ctx, task.ObjectType, task.Field, task.Source, task.Args)
			results[i] = Result{Value: v, Error: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// ResolveType returns the concrete type name of a value of an abstract type.
// Map values name their type under TypenameKey.
func (r *Runtime) ResolveType(_ context.Context, abstractType string, value any) (string, error) {
	if obj, ok := value.(map[string]any); ok {
		if name, ok := obj[TypenameKey].(string); ok && name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("cannot resolve concrete type of %s from %T", abstractType, value)
}

func defaultResolve(source any, field string) any {
	if obj, ok := source.(map[string]any); ok {
		return obj[field]
	}
	return nil
}
