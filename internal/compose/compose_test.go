package compose

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aexol-studio/axolotl-sub001/internal/eventbus"
	"github.com/aexol-studio/axolotl-sub001/internal/events"
	"github.com/aexol-studio/axolotl-sub001/internal/language"
)

// canonical prints sdl the way Compose does so expectations can be written
// as plain SDL.
func canonical(t *testing.T, sdl string) string {
	t.Helper()
	doc, err := language.ParseSchema("want", sdl)
	require.NoError(t, err)
	return language.FormatSchema(doc)
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name string
		docs []string
		want string
	}{
		{
			name: "fields of the same type are unioned",
			docs: []string{
				`type Query { a: String }`,
				`type Query { b: Int }`,
			},
			want: `type Query { a: String b: Int }`,
		},
		{
			name: "identical fields are kept once",
			docs: []string{
				`type User { id: ID! name(upper: Boolean = false): String }`,
				`type User { name(upper: Boolean = false): String id: ID! }`,
			},
			want: `type User { id: ID! name(upper: Boolean = false): String }`,
		},
		{
			name: "disjoint definitions keep document order",
			docs: []string{
				`type Query { me: User }`,
				`type User { id: ID! }`,
				`scalar Time`,
			},
			want: `type Query { me: User } type User { id: ID! } scalar Time`,
		},
		{
			name: "interfaces and directives are unioned",
			docs: []string{
				`type User implements Node @key(fields: "id") { id: ID! }`,
				`type User implements Entity @key(fields: "id") @shareable { id: ID! }`,
			},
			want: `type User implements Node & Entity @key(fields: "id") @shareable { id: ID! }`,
		},
		{
			name: "enum values are unioned",
			docs: []string{
				`enum Role { ADMIN USER }`,
				`enum Role { USER GUEST }`,
			},
			want: `enum Role { ADMIN USER GUEST }`,
		},
		{
			name: "union members are unioned",
			docs: []string{
				`union Result = User | Post`,
				`union Result = Post | Comment`,
			},
			want: `union Result = User | Post | Comment`,
		},
		{
			name: "scalars are deduplicated",
			docs: []string{`scalar Time`, `scalar Time`},
			want: `scalar Time`,
		},
		{
			name: "input fields are unioned",
			docs: []string{
				`input Filter { limit: Int = 10 }`,
				`input Filter { offset: Int }`,
			},
			want: `input Filter { limit: Int = 10 offset: Int }`,
		},
		{
			name: "differing descriptions are joined",
			docs: []string{
				`"Users of the shop." type User { id: ID! }`,
				`"Also authors." type User { id: ID! }`,
			},
			want: `"""
Users of the shop.

Also authors.
"""
type User { id: ID! }`,
		},
		{
			name: "extension is folded into its base",
			docs: []string{
				`type Query { a: String }`,
				`extend type Query { b: Int }`,
			},
			want: `type Query { a: String b: Int }`,
		},
		{
			name: "extension before its base is folded once the base appears",
			docs: []string{
				`extend type User { email: String }`,
				`type User { id: ID! }`,
			},
			want: `type User { id: ID! email: String }`,
		},
		{
			name: "extension without base is carried forward",
			docs: []string{
				`type Query { a: String }`,
				`extend type User { email: String }`,
			},
			want: `type Query { a: String } extend type User { email: String }`,
		},
		{
			name: "schema operation types are merged",
			docs: []string{
				`schema { query: Root } type Root { a: Int }`,
				`schema { mutation: Change } type Change { b: Int }`,
			},
			want: `schema { query: Root mutation: Change } type Root { a: Int } type Change { b: Int }`,
		},
		{
			name: "identical directive definitions are kept once",
			docs: []string{
				`directive @key(fields: String!) repeatable on OBJECT | INTERFACE`,
				`directive @key(fields: String!) repeatable on INTERFACE | OBJECT`,
			},
			want: `directive @key(fields: String!) repeatable on OBJECT | INTERFACE`,
		},
		{
			name: "single document is normalized",
			docs: []string{`type Query { a: String } extend type Query { b: Int }`},
			want: `type Query { a: String b: Int }`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compose(tt.docs...)
			require.NoError(t, err)
			if diff := cmp.Diff(canonical(t, tt.want), got); diff != "" {
				t.Errorf("composed schema mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComposeConflicts(t *testing.T) {
	tests := []struct {
		name    string
		docs    []string
		want    []Conflict
		message string
	}{
		{
			name:    "field type mismatch",
			docs:    []string{`type Foo { a: String }`, `type Foo { a: Int }`},
			want:    []Conflict{{Type: "Foo", Field: "a"}},
			message: "conflicting definitions: Foo.a",
		},
		{
			name: "every conflict of the failing merge is reported",
			docs: []string{
				`type Foo { a: String } type Bar { b: Int }`,
				`type Foo { a: Int } type Bar { b: String }`,
			},
			want:    []Conflict{{Type: "Foo", Field: "a"}, {Type: "Bar", Field: "b"}},
			message: "conflicting definitions: Foo.a, Bar.b",
		},
		{
			name: "only the first failing merge is reported",
			docs: []string{
				`type Foo { a: String } type Bar { b: Int }`,
				`type Foo { a: Int }`,
				`type Bar { b: String }`,
			},
			want:    []Conflict{{Type: "Foo", Field: "a"}},
			message: "conflicting definitions: Foo.a",
		},
		{
			name:    "argument mismatch",
			docs:    []string{`type Query { user(id: ID): String }`, `type Query { user(id: ID!): String }`},
			want:    []Conflict{{Type: "Query", Field: "user"}},
			message: "conflicting definitions: Query.user",
		},
		{
			name:    "kind mismatch",
			docs:    []string{`type Foo { a: String }`, `enum Foo { A }`},
			want:    []Conflict{{Type: "Foo"}},
			message: "conflicting definitions: Foo",
		},
		{
			name:    "extension changes a field",
			docs:    []string{`type Foo { a: String }`, `extend type Foo { a: [String] }`},
			want:    []Conflict{{Type: "Foo", Field: "a"}},
			message: "conflicting definitions: Foo.a",
		},
		{
			name:    "schema operation type mismatch",
			docs:    []string{`schema { query: A } type A { a: Int }`, `schema { query: B } type B { b: Int }`},
			want:    []Conflict{{Type: "schema", Field: "query"}},
			message: "conflicting definitions: schema.query",
		},
		{
			name: "directive definition mismatch",
			docs: []string{
				`directive @key(fields: String!) on OBJECT`,
				`directive @key(fields: String!) on OBJECT | INTERFACE`,
			},
			want:    []Conflict{{Type: "@key"}},
			message: "conflicting definitions: @key",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compose(tt.docs...)
			assert.Empty(t, got)
			var cerr *ConflictError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.want, cerr.Conflicts)
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestComposeParseError(t *testing.T) {
	_, err := ComposeSources(context.Background(),
		Source{Name: "good.graphql", Content: `type Query { a: Int }`},
		Source{Name: "broken.graphql", Content: `type Query {`},
	)
	require.Error(t, err)
	var cerr *ConflictError
	assert.NotErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "broken.graphql")
}

func TestComposeEmpty(t *testing.T) {
	got, err := Compose()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMergeSDL(t *testing.T) {
	got, err := MergeSDL(`type Query { a: String }`, `type Query { b: Int }`)
	require.NoError(t, err)
	assert.Equal(t, canonical(t, `type Query { a: String b: Int }`), got)

	_, err = MergeSDL(`type Foo { a: String }`, `type Foo { a: Int }`)
	assert.EqualError(t, err, "conflicting definitions: Foo.a")
}

func TestMergeDocumentsDoesNotModifyInputs(t *testing.T) {
	a, err := language.ParseSchema("a", `type User { id: ID! } enum Role { A } extend type User { x: Int }`)
	require.NoError(t, err)
	b, err := language.ParseSchema("b", `type User implements Node { name: String } enum Role { B }`)
	require.NoError(t, err)

	merged, conflicts := MergeDocuments(a, b)
	require.Empty(t, conflicts)

	assert.Len(t, merged.Definitions.ForName("User").Fields, 3)
	assert.Len(t, a.Definitions.ForName("User").Fields, 1)
	assert.Empty(t, a.Definitions.ForName("User").Interfaces)
	assert.Len(t, a.Definitions.ForName("Role").EnumValues, 1)
	assert.Len(t, b.Definitions.ForName("User").Fields, 1)
	assert.Len(t, a.Extensions, 1)
}

func TestComposeEvents(t *testing.T) {
	bus := eventbus.New()
	eventbus.Use(bus)
	t.Cleanup(func() { eventbus.Use(nil) })

	var started []events.ComposeStart
	var finished []events.ComposeFinish
	eventbus.Subscribe(bus, func(_ context.Context, e events.ComposeStart) { started = append(started, e) })
	eventbus.Subscribe(bus, func(_ context.Context, e events.ComposeFinish) { finished = append(finished, e) })

	_, err := ComposeSources(context.Background(),
		Source{Name: "a.graphql", Content: `type Foo { a: String }`},
		Source{Name: "b.graphql", Content: `type Foo { a: Int }`},
	)
	require.Error(t, err)

	require.Len(t, started, 1)
	assert.Equal(t, []string{"a.graphql", "b.graphql"}, started[0].Documents)
	require.Len(t, finished, 1)
	assert.Equal(t, []string{"Foo.a"}, finished[0].Conflicts)
	assert.ErrorIs(t, finished[0].Err, err)
}
