// Package resolver defines the unit of composition: a map from GraphQL type
// name to field name to Resolver.
//
// A Resolver is either a FieldFunc, called once per field instance, or a
// *Subscription, whose handler produces a stream of events. The variant is
// chosen by the author when the map is built, so adapters can route a field
// to an engine's resolve or subscribe hook with a type switch.
package resolver

import (
	"context"
	"iter"
)

// Input carries the parent value and the coerced field arguments.
type Input struct {
	Source any
	Args   map[string]any
}

// Arg returns the named argument or nil.
func (in Input) Arg(name string) any {
	if in.Args == nil {
		return nil
	}
	return in.Args[name]
}

// Kind discriminates the two Resolver variants.
type Kind int

const (
	KindField Kind = iota
	KindSubscription
)

func (k Kind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindSubscription:
		return "subscription"
	default:
		return "unknown"
	}
}

// Resolver is implemented by FieldFunc and *Subscription only.
type Resolver interface {
	Kind() Kind
	sealed()
}

// FieldFunc resolves a query or mutation field, or any object field.
type FieldFunc func(ctx context.Context, in Input) (any, error)

func (FieldFunc) Kind() Kind { return KindField }
func (FieldFunc) sealed()    {}

// Resolve calls f.
func (f FieldFunc) Resolve(ctx context.Context, in Input) (any, error) {
	return f(ctx, in)
}

// Field adapts a plain function into a FieldFunc.
func Field(fn func(ctx context.Context, in Input) (any, error)) FieldFunc {
	return FieldFunc(fn)
}

// Stream is a pull-based sequence of subscription events. The consumer stops
// the stream by breaking out of its range loop.
type Stream = iter.Seq2[any, error]

// SubscribeFunc produces the event stream for one subscription.
type SubscribeFunc func(ctx context.Context, in Input) Stream

// Subscription tags a handler as a streaming resolver.
type Subscription struct {
	handler SubscribeFunc
}

// Subscribe tags h as a subscription resolver.
func Subscribe(h SubscribeFunc) *Subscription {
	if h == nil {
		panic("resolver: nil subscription handler")
	}
	return &Subscription{handler: h}
}

// SubscribeOf tags a typed handler, erasing its element type.
func SubscribeOf[T any](h func(ctx context.Context, in Input) iter.Seq2[T, error]) *Subscription {
	if h == nil {
		panic("resolver: nil subscription handler")
	}
	return Subscribe(func(ctx context.Context, in Input) Stream {
		return func(yield func(any, error) bool) {
			for v, err := range h(ctx, in) {
				if !yield(v, err) {
					return
				}
			}
		}
	})
}

func (*Subscription) Kind() Kind { return KindSubscription }
func (*Subscription) sealed()    {}

// Invoke forwards to the wrapped handler.
func (s *Subscription) Invoke(ctx context.Context, in Input) Stream {
	return s.handler(ctx, in)
}

// IsSubscription reports whether x is a tagged subscription resolver.
func IsSubscription(x any) bool {
	s, ok := x.(*Subscription)
	return ok && s != nil
}
