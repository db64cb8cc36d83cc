// Package federation merges independently authored resolver maps into one
// supergraph.
//
// Every (type, field) key present in any input map gets exactly one resolver
// in the output. A key implemented by a single map keeps that map's resolver
// as is. A key implemented by several maps gets a composite FieldFunc that
// calls every implementation concurrently with the same input and deep-merges
// the results in input order: nested objects accumulate keys from all
// subgraphs, every other value is taken from the last subgraph providing it.
// If any subgraph fails, the field fails; there are no partial results.
//
// Conflicting scalar values are not rejected. Each replacement is published as
// an events.ValueReplaced so it can be traced or logged.
package federation

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/aexol-studio/axolotl-sub001/internal/eventbus"
	"github.com/aexol-studio/axolotl-sub001/internal/events"
	"github.com/aexol-studio/axolotl-sub001/internal/reqid"
	"github.com/aexol-studio/axolotl-sub001/internal/resolver"
	"github.com/aexol-studio/axolotl-sub001/internal/value"
)

// Key identifies a field of a type.
type Key struct {
	Type  string
	Field string
}

func (k Key) String() string { return k.Type + "." + k.Field }

// SubgraphList holds the resolvers contributed for one key, in the order the
// maps were passed to Merge.
type SubgraphList []resolver.Resolver

// SubgraphError reports the subgraph whose resolver failed a merged field.
type SubgraphError struct {
	Type  string
	Field string
	// Index is the position of the failing map in the Merge arguments.
	Index int
	Err   error
}

func (e *SubgraphError) Error() string {
	return fmt.Sprintf("%s.%s: subgraph %d: %v", e.Type, e.Field, e.Index, e.Err)
}

func (e *SubgraphError) Unwrap() error { return e.Err }

// Subgraphs groups the resolvers of maps by key.
func Subgraphs(maps ...resolver.Map) map[Key]SubgraphList {
	lists := make(map[Key]SubgraphList)
	for k, entries := range collect(maps) {
		lists[k] = lo.Map(entries, func(e entry, _ int) resolver.Resolver { return e.r })
	}
	return lists
}

// entry remembers which input map a resolver came from.
type entry struct {
	index int
	r     resolver.Resolver
}

func collect(maps []resolver.Map) map[Key][]entry {
	out := make(map[Key][]entry)
	for i, m := range maps {
		for typ, fields := range m {
			for field, r := range fields {
				if r == nil {
					continue
				}
				k := Key{Type: typ, Field: field}
				out[k] = append(out[k], entry{index: i, r: r})
			}
		}
	}
	return out
}

// Merge combines maps into one. The inputs are not modified and a merged map
// may be merged again.
func Merge(maps ...resolver.Map) resolver.Map {
	out := make(resolver.Map)
	for k, entries := range collect(maps) {
		out.Set(k.Type, k.Field, combine(k, entries))
	}
	return out
}

func combine(k Key, entries []entry) resolver.Resolver {
	if len(entries) == 1 {
		return entries[0].r
	}

	// A stream cannot be merged; the subscription from the latest map wins.
	winner := -1
	for i, e := range entries {
		if resolver.IsSubscription(e.r) {
			winner = i
		}
	}
	if winner >= 0 {
		w := entries[winner]
		eventbus.Emit(context.Background(), events.ResolverShadowed{
			Type:   k.Type,
			Field:  k.Field,
			Winner: w.index,
			Shadowed: lo.FilterMap(entries, func(e entry, _ int) (int, bool) {
				return e.index, e.index != w.index
			}),
		})
		return w.r
	}

	fns := make([]subgraph, len(entries))
	for i, e := range entries {
		fns[i] = subgraph{index: e.index, fn: e.r.(resolver.FieldFunc)}
	}
	return fanOut(k, fns)
}

type subgraph struct {
	index int
	fn    resolver.FieldFunc
}

// fanOut calls every subgraph concurrently and merges the results in order.
// The first error cancels the remaining calls.
func fanOut(k Key, subgraphs []subgraph) resolver.FieldFunc {
	return func(ctx context.Context, in resolver.Input) (any, error) {
		ctx, _ = reqid.NewContext(ctx)
		start := time.Now()
		eventbus.Emit(ctx, events.FieldStart{Type: k.Type, Field: k.Field, Subgraphs: len(subgraphs)})

		results := make([]any, len(subgraphs))
		g, gctx := errgroup.WithContext(ctx)
		for i, sg := range subgraphs {
			g.Go(func() error {
				v, err := call(gctx, k, sg, in)
				if err != nil {
					return &SubgraphError{Type: k.Type, Field: k.Field, Index: sg.index, Err: err}
				}
				results[i] = v
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			eventbus.Emit(ctx, events.FieldFinish{Type: k.Type, Field: k.Field, Err: err, Duration: time.Since(start)})
			return nil, err
		}

		m := value.Merger{OnReplace: func(p value.Path) {
			eventbus.Emit(ctx, events.ValueReplaced{Type: k.Type, Field: k.Field, Path: p.String()})
		}}
		merged := m.Merge(results...)
		eventbus.Emit(ctx, events.FieldFinish{Type: k.Type, Field: k.Field, Duration: time.Since(start)})
		return merged, nil
	}
}

func call(ctx context.Context, k Key, sg subgraph, in resolver.Input) (v any, err error) {
	start := time.Now()
	eventbus.Emit(ctx, events.SubgraphStart{Type: k.Type, Field: k.Field, Index: sg.index})
	defer func() {
		eventbus.Emit(ctx, events.SubgraphFinish{
			Type:     k.Type,
			Field:    k.Field,
			Index:    sg.index,
			Err:      err,
			Duration: time.Since(start),
		})
	}()
	return sg.fn(ctx, in)
}
