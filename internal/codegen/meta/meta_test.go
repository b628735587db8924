package meta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindc/fakeheader/adl"
	"github.com/mindc/fakeheader/internal/codegen/meta"
)

func TestMerge(t *testing.T) {
	md := &meta.Metadata{
		Definitions: []*adl.Definition{{Name: "a.B"}},
		IDLs:        []*adl.IDL{{Name: "a.I"}},
		Files:       []string{"one.yaml"},
	}
	require.NoError(t, md.Merge(&meta.Metadata{
		Definitions: []*adl.Definition{{Name: "a.C"}},
		Files:       []string{"two.yaml"},
	}))
	assert.Len(t, md.Definitions, 2)
	assert.Equal(t, []string{"one.yaml", "two.yaml"}, md.Files)

	assert.ErrorContains(t, md.Merge(&meta.Metadata{Definitions: []*adl.Definition{{Name: "a.B"}}}), "definition a.B declared twice")
	assert.ErrorContains(t, md.Merge(&meta.Metadata{IDLs: []*adl.IDL{{Name: "a.I"}}}), "IDL a.I declared twice")
}

func TestSelect(t *testing.T) {
	md := &meta.Metadata{Definitions: []*adl.Definition{{Name: "a.B"}, {Name: "a.C"}, {Name: "a.D"}}}

	all, err := md.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	some, err := md.Select([]string{"a.D", "a.B"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "a.B", some[0].Name)
	assert.Equal(t, "a.D", some[1].Name)

	_, err = md.Select([]string{"a.B", "z.Z", "y.Y"})
	assert.ErrorContains(t, err, "unknown definitions: [y.Y z.Z]")
}
