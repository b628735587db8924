package cgen_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindc/fakeheader/adl"
	"github.com/mindc/fakeheader/internal/codegen/collab"
	cgen "github.com/mindc/fakeheader/internal/codegen/generator/c"
	"github.com/mindc/fakeheader/internal/codegen/locate"
	th "github.com/mindc/fakeheader/internal/testing"
)

func flaggedDefinition() (*adl.Definition, *adl.Source) {
	def := &adl.Definition{
		Name:    "pkg.Comp",
		Flags:   &adl.Flags{CPPFlags: []string{"-DDEF"}, CFlags: []string{"-Wall"}, ASFlags: []string{"-g"}},
		Sources: []adl.Source{{Path: "comp.c", Flags: &adl.Flags{CPPFlags: []string{"-DSRC"}, CFlags: []string{" -O2 ", ""}, ASFlags: []string{"--gstabs"}}}},
	}
	return def, &def.Sources[0]
}

func TestRecipe(t *testing.T) {
	project := locate.AnnotatedFlags{Project: adl.Flags{
		IncludePaths: []string{"/inc"},
		CPPFlags:     []string{"-DPROJECT"},
		CFlags:       []string{"-O0"},
	}}
	ws := th.NewWorkspace(t)
	def, src := flaggedDefinition()

	type testCase struct {
		name     string
		fail     map[string]collab.ScopeKind
		expected []string
		warn     bool
	}
	testCases := []testCase{
		{
			name: "precedence",
			expected: []string{
				"$(CC) -c", "/abs/comp.c", "-include", "comp.impl.h",
				"-I/inc", "-DPROJECT", "-O0",
				"-DDEF", "-Wall", "-g",
				"-DSRC", "-O2", "--gstabs",
				"-I" + ws.Resource,
			},
		},
		{
			name: "failed definition C flags contribute nothing",
			fail: map[string]collab.ScopeKind{"c": collab.ScopeDefinition},
			expected: []string{
				"$(CC) -c", "/abs/comp.c", "-include", "comp.impl.h",
				"-I/inc", "-DPROJECT", "-O0",
				"-DDEF", "-g",
				"-DSRC", "-O2", "--gstabs",
				"-I" + ws.Resource,
			},
			warn: true,
		},
		{
			name: "failed project include paths",
			fail: map[string]collab.ScopeKind{"include": collab.ScopeProject},
			expected: []string{
				"$(CC) -c", "/abs/comp.c", "-include", "comp.impl.h",
				"-DPROJECT", "-O0",
				"-DDEF", "-Wall", "-g",
				"-DSRC", "-O2", "--gstabs",
				"-I" + ws.Resource,
			},
			warn: true,
		},
		{
			name: "failed source AS flags",
			fail: map[string]collab.ScopeKind{"as": collab.ScopeSource},
			expected: []string{
				"$(CC) -c", "/abs/comp.c", "-include", "comp.impl.h",
				"-I/inc", "-DPROJECT", "-O0",
				"-DDEF", "-Wall", "-g",
				"-DSRC", "-O2",
				"-I" + ws.Resource,
			},
			warn: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger, logs := th.Logger()
			flags := th.Flags{AnnotatedFlags: project, Fail: tc.fail}
			roots := locate.StaticRoots{ws.Resource, ws.Resource + "/missing"}
			b := cgen.NewBuildRuleEmitter(logger, flags, roots)

			assert.Equal(t, tc.expected, b.Recipe(context.Background(), def, src, "/abs/comp.c", "comp.impl.h"))
			assert.Equal(t, tc.warn, bytes.Contains(logs.Bytes(), []byte("Flag lookup failed")))
		})
	}
}

func TestWriteBuildRules(t *testing.T) {
	logger, _ := th.Logger()
	def, src := flaggedDefinition()
	b := cgen.NewBuildRuleEmitter(logger, locate.AnnotatedFlags{}, locate.StaticRoots{})

	var buf bytes.Buffer
	require.NoError(t, b.WriteHeader(&buf, def))
	require.NoError(t, b.WriteRecipe(context.Background(), &buf, def, src, "comp.c", "comp.impl.h"))
	assert.Equal(t, "all : pkg.Comp\npkg.Comp :\n\t$(CC) -c comp.c -include comp.impl.h -DDEF -Wall -g -DSRC -O2 --gstabs\n",
		buf.String())
	assert.Equal(t, "pkg/Comp.make", cgen.BuildRulePath("pkg.Comp"))
}
