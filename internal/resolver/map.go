package resolver

import (
	"sort"

	"github.com/samber/lo"
)

// Fields maps field names to resolvers for one type.
type Fields map[string]Resolver

// Map maps type names to their field resolvers.
type Map map[string]Fields

// Lookup returns the resolver registered for typ.field.
func (m Map) Lookup(typ, field string) (Resolver, bool) {
	fields, ok := m[typ]
	if !ok {
		return nil, false
	}
	r, ok := fields[field]
	return r, ok && r != nil
}

// Set registers r for typ.field and returns m for chaining.
func (m Map) Set(typ, field string, r Resolver) Map {
	if m[typ] == nil {
		m[typ] = make(Fields)
	}
	m[typ][field] = r
	return m
}

// Types returns the type names of m in lexical order.
func (m Map) Types() []string {
	names := lo.Keys(m)
	sort.Strings(names)
	return names
}

// Len counts the registered type/field pairs.
func (m Map) Len() int {
	n := 0
	for _, fields := range m {
		n += len(fields)
	}
	return n
}

// Names returns the field names of f in lexical order.
func (f Fields) Names() []string {
	names := lo.Keys(f)
	sort.Strings(names)
	return names
}
