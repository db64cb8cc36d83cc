package compose

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestLoadDir(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"users/user.graphql":  `type User { id: ID! }`,
		"b.gql":               `type Query { b: Int }`,
		"a.graphql":           `type Query { a: Int }`,
		"notes.txt":           `not a schema`,
		"posts/post.GRAPHQL":  `type Post { id: ID! }`,
		"posts/draft.graphql": `type Draft { id: ID! }`,
	})

	sources, err := LoadDir(root)
	require.NoError(t, err)

	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}
	assert.Equal(t, []string{
		"a.graphql",
		"b.gql",
		"posts/draft.graphql",
		"posts/post.GRAPHQL",
		"users/user.graphql",
	}, names)
	assert.Equal(t, `type Query { a: Int }`, sources[0].Content)
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLoadFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"schema/a.graphql": `type Query { a: Int }`,
		"schema/b.graphql": `type Query { b: Int }`,
		"extra.graphql":    `type Query { c: Int }`,
	})

	sources, err := LoadFiles(filepath.Join(root, "extra.graphql"), filepath.Join(root, "schema"))
	require.NoError(t, err)
	require.Len(t, sources, 3)
	assert.Equal(t, `type Query { c: Int }`, sources[0].Content)
	assert.Equal(t, "a.graphql", sources[1].Name)
	assert.Equal(t, "b.graphql", sources[2].Name)

	got, err := ComposeSources(t.Context(), sources...)
	require.NoError(t, err)
	assert.Equal(t, canonical(t, `type Query { c: Int a: Int b: Int }`), got)

	_, err = LoadFiles(filepath.Join(root, "nope.graphql"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
