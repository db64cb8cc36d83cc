package coverage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aexol-studio/axolotl-sub001/internal/resolver"
)

const schema = `
type Query {
	me: User
	users: [User!]!
}

type User {
	id: ID!
	name: String
}

interface Node {
	id: ID!
}

input Filter {
	limit: Int
}

type __Hidden {
	x: Int
}

extend type Query {
	node(id: ID!): Node
	me: User
}
`

func noop(context.Context, resolver.Input) (any, error) { return nil, nil }

func TestInspect(t *testing.T) {
	m := resolver.Map{}
	m.Set("Query", "me", resolver.Field(noop))
	m.Set("User", "name", resolver.Field(noop))
	m.Set("Extra", "ignored", resolver.Field(noop))

	gaps, err := Inspect(m, schema)
	require.NoError(t, err)
	assert.Equal(t, []string{"Query.users", "User.id", "Query.node"}, gaps)
}

func TestInspectComplete(t *testing.T) {
	m := resolver.Map{}
	m.Set("Query", "hello", resolver.Field(noop))

	gaps, err := Inspect(m, `type Query { hello: String }`)
	require.NoError(t, err)
	assert.Empty(t, gaps)
}

func TestInspectSubscriptionCounts(t *testing.T) {
	m := resolver.Map{}
	m.Set("Subscription", "ticks", resolver.Subscribe(func(context.Context, resolver.Input) resolver.Stream {
		return func(func(any, error) bool) {}
	}))

	gaps, err := Inspect(m, `type Subscription { ticks: Int ping: String }`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Subscription.ping"}, gaps)
}

func TestInspectParseError(t *testing.T) {
	_, err := Inspect(resolver.Map{}, `type Query {`)
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	Report(zap.New(core), []string{"Query.users", "User.id"})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "field has no resolver", entries[0].Message)
	assert.Equal(t, "Query.users", entries[0].ContextMap()["field"])
	assert.Equal(t, "User.id", entries[1].ContextMap()["field"])
}
