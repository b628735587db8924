package output_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindc/fakeheader/internal/codegen/generr"
	"github.com/mindc/fakeheader/internal/codegen/output"
	"github.com/mindc/fakeheader/internal/log"
)

func TestCommit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pkg", "Comp.adl.h")

	var trace bytes.Buffer
	s, err := output.Create(path, output.WithTrace(log.NewArtifact(&trace)))
	require.NoError(t, err)
	defer s.Discard()

	_, err = fmt.Fprint(s, "#ifndef PKG_COMP\n")
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file must not exist before commit")

	require.NoError(t, s.Commit())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#ifndef PKG_COMP\n", string(data))
	assert.Contains(t, trace.String(), "| #ifndef PKG_COMP")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must be gone")

	_, err = s.Write([]byte("late"))
	assert.Error(t, err)
	assert.Error(t, s.Commit())
}

func TestDiscardKeepsPreviousContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.h")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	s, err := output.Create(path)
	require.NoError(t, err)
	_, err = s.Write([]byte("partial"))
	require.NoError(t, err)
	s.Discard()
	s.Discard()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCreateFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := output.Create(filepath.Join(blocker, "sub", "a.h"))
	require.Error(t, err)
	assert.True(t, generr.Is(err, generr.ErrOutputCreation))
}
