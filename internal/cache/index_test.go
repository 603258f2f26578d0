package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRepoDir(t *testing.T, root, id string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, RepoDirName(id)), 0o755))
}

func TestRepoDirName(t *testing.T) {
	assert.Equal(t, "models--meta-llama--Llama-3.1-8B-Instruct", RepoDirName("meta-llama/Llama-3.1-8B-Instruct"))
	assert.Equal(t, "models--bert-base-uncased", RepoDirName("bert-base-uncased"))
}

func TestRepoID(t *testing.T) {
	id, ok := RepoID("models--meta-llama--Llama-3.1-8B-Instruct")
	require.True(t, ok)
	assert.Equal(t, "meta-llama/Llama-3.1-8B-Instruct", id)

	id, ok = RepoID("models--bert-base-uncased")
	require.True(t, ok)
	assert.Equal(t, "bert-base-uncased", id)

	_, ok = RepoID("datasets--squad")
	assert.False(t, ok)
}

// The directory-name transform is not injective: an ID whose name part
// contains "--" collides with a nested-looking owner. Both IDs below map to
// the same directory, and scanning reports the first-segment split.
func TestRepoDirName_KnownAmbiguity(t *testing.T) {
	a := RepoDirName("org/suborg--model")
	b := RepoDirName("org--suborg/model")
	assert.Equal(t, a, b)

	id, ok := RepoID(a)
	require.True(t, ok)
	assert.Equal(t, "org/suborg--model", id)
}

func TestIndex_List(t *testing.T) {
	root := t.TempDir()
	writeRepoDir(t, root, "meta-llama/Llama-3.1-8B-Instruct")
	writeRepoDir(t, root, "bert-base-uncased")
	// Non-repo entries are ignored.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "datasets--squad"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "models--not-a-dir"), []byte("x"), 0o644))

	ids := NewIndex(root).List(context.Background())
	assert.ElementsMatch(t, []string{"meta-llama/Llama-3.1-8B-Instruct", "bert-base-uncased"}, ids)
}

func TestIndex_List_MissingRoot(t *testing.T) {
	ids := NewIndex(filepath.Join(t.TempDir(), "nope")).List(context.Background())
	assert.Empty(t, ids)
}

func TestIndex_List_EmptyRoot(t *testing.T) {
	ids := NewIndex("").List(context.Background())
	assert.Empty(t, ids)
}

func TestIndex_List_RootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o644))

	assert.Empty(t, NewIndex(root).List(context.Background()))
}

func TestIndex_Contains(t *testing.T) {
	root := t.TempDir()
	writeRepoDir(t, root, "organization/model.name-v2")

	idx := NewIndex(root)
	ctx := context.Background()

	assert.True(t, idx.Contains(ctx, "organization/model.name-v2"))
	assert.False(t, idx.Contains(ctx, "organization/other"))
	assert.False(t, idx.Contains(ctx, ""))
}

func TestIndex_Contains_FileNotDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, RepoDirName("org/file")), []byte("x"), 0o644))

	assert.False(t, NewIndex(root).Contains(context.Background(), "org/file"))
}

func TestIndex_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeRepoDir(t, root, "org/model")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	idx := NewIndex(root)
	assert.Empty(t, idx.List(ctx))
	assert.False(t, idx.Contains(ctx, "org/model"))
}
