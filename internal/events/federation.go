package events

import "time"

// FieldStart is emitted when a merged field fans out to its subgraphs.
type FieldStart struct {
	Type      string
	Field     string
	Subgraphs int
}

// FieldFinish is emitted once every subgraph call returned or one failed.
type FieldFinish struct {
	Type     string
	Field    string
	Err      error
	Duration time.Duration
}

// SubgraphStart is emitted before one subgraph resolver is called.
type SubgraphStart struct {
	Type  string
	Field string
	Index int
}

// SubgraphFinish is emitted after one subgraph resolver returned.
type SubgraphFinish struct {
	Type     string
	Field    string
	Index    int
	Err      error
	Duration time.Duration
}

// ValueReplaced is emitted when a later subgraph overwrites a value that an
// earlier subgraph returned for the same field. Path is dot separated.
type ValueReplaced struct {
	Type  string
	Field string
	Path  string
}

// ResolverShadowed is emitted at merge time when a subscription resolver
// hides other resolvers registered for the same field.
type ResolverShadowed struct {
	Type     string
	Field    string
	Winner   int
	Shadowed []int
}
