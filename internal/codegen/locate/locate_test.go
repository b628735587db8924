package locate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindc/fakeheader/adl"
	"github.com/mindc/fakeheader/internal/codegen/collab"
	"github.com/mindc/fakeheader/internal/codegen/generr"
	"github.com/mindc/fakeheader/internal/codegen/locate"
)

func TestOutputDir(t *testing.T) {
	o := locate.OutputDir{Root: "/out"}
	type testCase struct {
		rel      string
		expected string
		err      bool
	}
	testCases := []testCase{
		{rel: "pkg/Comp.adl.h", expected: filepath.Join("/out", "pkg", "Comp.adl.h")},
		{rel: "/dir/comp.impl.h", expected: filepath.Join("/out", "dir", "comp.impl.h")},
		{rel: "../escape.h", err: true},
		{rel: "", err: true},
	}
	for _, tc := range testCases {
		t.Run(tc.rel, func(t *testing.T) {
			got, err := o.OutputPath(context.Background(), tc.rel)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSourcePath(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(second, "impl"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(second, "impl", "a.c"), nil, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(first, "impl", "dir.c"), 0o755))

	s := locate.SourcePath{Roots: []string{first, second}}
	got, err := s.FindSource(context.Background(), "/impl/a.c")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(second, "impl", "a.c"), got)

	_, err = s.FindSource(context.Background(), "impl/dir.c")
	require.Error(t, err)
	assert.True(t, generr.Is(err, generr.ErrResolution))
}

func TestAnnotatedFlags(t *testing.T) {
	f := locate.AnnotatedFlags{Project: adl.Flags{CFlags: []string{"-O0"}}}
	def := &adl.Definition{Name: "a.B", Flags: &adl.Flags{CFlags: []string{"-Wall"}}}
	src := &adl.Source{Path: "a.c"}
	ctx := context.Background()

	got, err := f.CFlags(ctx, collab.Project())
	require.NoError(t, err)
	assert.Equal(t, []string{"-O0"}, got)

	got, err = f.CFlags(ctx, collab.ForDefinition(def))
	require.NoError(t, err)
	assert.Equal(t, []string{"-Wall"}, got)

	got, err = f.CFlags(ctx, collab.ForSource(def, src))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = f.ASFlags(ctx, collab.Scope{Kind: collab.ScopeSource})
	require.Error(t, err)
	assert.True(t, generr.Is(err, generr.ErrFlagResolution))
}

func TestIDLRegistry(t *testing.T) {
	r := locate.NewIDLRegistry([]*adl.IDL{{Name: "a.I"}})
	doc, err := r.Resolve(context.Background(), "a.I")
	require.NoError(t, err)
	assert.Equal(t, "a.I", doc.Name)

	_, err = r.Resolve(context.Background(), "a.J")
	require.Error(t, err)
	assert.True(t, generr.Is(err, generr.ErrResolution))
}
