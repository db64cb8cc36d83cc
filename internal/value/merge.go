// Package value merges resolver results. A map[string]any is the only value
// merged key by key; slices, scalars, structs and nil are replaced wholesale
// by a later source.
package value

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Path addresses a key inside a merged object.
type Path []string

func (p Path) String() string { return strings.Join(p, ".") }

// Merger overlays results in order. OnReplace, when set, is called each time
// a later source replaces a value an earlier source already provided.
type Merger struct {
	OnReplace func(path Path)
}

// Merge overlays sources with a zero Merger.
func Merge(sources ...any) any {
	var m Merger
	return m.Merge(sources...)
}

// Merge starts from an empty object and overlays every non-nil source in
// order. Inputs are never mutated.
func (m Merger) Merge(sources ...any) any {
	var acc any = map[string]any{}
	for _, src := range sources {
		if src == nil {
			continue
		}
		obj, isObj := src.(map[string]any)
		dst, dstIsObj := acc.(map[string]any)
		switch {
		case isObj && dstIsObj:
			m.overlay(dst, obj, nil)
		case isObj:
			acc = clone(obj)
		default:
			acc = src
		}
	}
	return acc
}

func (m Merger) overlay(dst, src map[string]any, path Path) {
	keys := lo.Keys(src)
	sort.Strings(keys)
	for _, k := range keys {
		v := src[k]
		prev, exists := dst[k]
		if vObj, ok := v.(map[string]any); ok {
			if prevObj, ok := prev.(map[string]any); ok {
				m.overlay(prevObj, vObj, append(path[:len(path):len(path)], k))
				continue
			}
			v = clone(vObj)
		}
		if exists && m.OnReplace != nil {
			m.OnReplace(append(path[:len(path):len(path)], k))
		}
		dst[k] = v
	}
}

// clone copies nested objects so the accumulator never aliases a source.
func clone(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		if obj, ok := v.(map[string]any); ok {
			out[k] = clone(obj)
			continue
		}
		out[k] = v
	}
	return out
}
