// Package axolotl federates GraphQL resolver maps and SDL fragments.
//
// Resolver authors build a Map per module, tag streaming fields with
// Subscribe, and merge the maps with Merge:
//
//	users := axolotl.Map{}
//	users.Set("Query", "me", axolotl.Field(func(ctx context.Context, in axolotl.Input) (any, error) {
//		return map[string]any{"id": "1", "name": "Ada"}, nil
//	}))
//	supergraph := axolotl.Merge(users, reviews)
//
// Schemas written per module are merged with Compose, and Inspect lists the
// schema fields the merged map leaves unresolved.
package axolotl

import (
	"context"

	"github.com/aexol-studio/axolotl-sub001/internal/compose"
	"github.com/aexol-studio/axolotl-sub001/internal/coverage"
	"github.com/aexol-studio/axolotl-sub001/internal/federation"
	"github.com/aexol-studio/axolotl-sub001/internal/resolver"
	"github.com/aexol-studio/axolotl-sub001/internal/runtime"
	"github.com/aexol-studio/axolotl-sub001/internal/typeref"
)

type (
	Input         = resolver.Input
	Resolver      = resolver.Resolver
	FieldFunc     = resolver.FieldFunc
	Subscription  = resolver.Subscription
	SubscribeFunc = resolver.SubscribeFunc
	Stream        = resolver.Stream
	Fields        = resolver.Fields
	Map           = resolver.Map
	SubgraphError = federation.SubgraphError
	Conflict      = compose.Conflict
	ConflictError = compose.ConflictError
	TypeRef       = typeref.TypeRef
	Name          = typeref.Name
	Required      = typeref.Required
	List          = typeref.List
	Runtime       = runtime.Runtime
	RuntimeOption = runtime.Option
	Task          = runtime.Task
	Result        = runtime.Result
)

// Merge combines resolver maps; see federation.Merge.
func Merge(maps ...Map) Map { return federation.Merge(maps...) }

// Field tags fn as a field resolver.
func Field(fn func(ctx context.Context, in Input) (any, error)) FieldFunc {
	return resolver.Field(fn)
}

// Subscribe tags h as a subscription resolver.
func Subscribe(h SubscribeFunc) *Subscription { return resolver.Subscribe(h) }

// IsSubscription reports whether x is a subscription resolver.
func IsSubscription(x any) bool { return resolver.IsSubscription(x) }

// Compose merges SDL documents in order.
func Compose(sdl ...string) (string, error) { return compose.Compose(sdl...) }

// Project renders ref as a TypeScript type expression with base at the leaf.
func Project(base string, ref TypeRef) string { return typeref.Project(base, ref) }

// Inspect lists "Type.field" pairs of schemaText that m does not resolve.
func Inspect(m Map, schemaText string) ([]string, error) { return coverage.Inspect(m, schemaText) }

// NewRuntime binds m to an execution engine.
func NewRuntime(m Map, opts ...RuntimeOption) *Runtime { return runtime.New(m, opts...) }

// WithConcurrency bounds Runtime.BatchResolve.
func WithConcurrency(n int) RuntimeOption { return runtime.WithConcurrency(n) }
