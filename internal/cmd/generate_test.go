package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindc/fakeheader/internal/cmd"
	"github.com/mindc/fakeheader/internal/log"
	th "github.com/mindc/fakeheader/internal/testing"
)

const model = `
definitions:
  - name: pkg.Comp
    interfaces:
      - {name: logger, role: server, signature: pkg.ILogger}
    sources:
      - path: comp.c
        flags: {cFlags: [-O2]}
  - name: pkg.Other
idls:
  - name: pkg.ILogger
    methods:
      - name: log
        returns: void
        parameters: [{name: msg, type: char*}]
`

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "comp.c"), nil, 0o644))
	modelPath := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(modelPath, []byte(model), 0o644))

	logger, _ := th.Logger()
	var artifacts bytes.Buffer
	g := &cmd.Generate{
		Models:     []string{modelPath},
		OutPath:    out,
		SrcPath:    []string{src},
		CFlags:     []string{"-DPROJECT"},
		Definition: []string{"pkg.Comp"},
	}
	require.NoError(t, g.Run(logger, log.NewArtifact(&artifacts)))

	hdr, err := os.ReadFile(filepath.Join(out, "pkg", "Comp.adl.h"))
	require.NoError(t, err)
	assert.Contains(t, string(hdr), "void METH(logger, log)( char* msg);")

	mk, err := os.ReadFile(filepath.Join(out, "pkg", "Comp.make"))
	require.NoError(t, err)
	assert.Contains(t, string(mk), " -include comp.impl.h -DPROJECT -O2 -I"+src+"\n")

	assert.FileExists(t, filepath.Join(out, "comp.impl.h"))
	assert.FileExists(t, filepath.Join(out, "pkg", "ILogger.itf.h"))
	assert.NoFileExists(t, filepath.Join(out, "pkg", "Other.adl.h"))
	assert.Contains(t, artifacts.String(), "| #ifndef PKG_COMP")
}

func TestGenerateUnknownDefinition(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(modelPath, []byte(model), 0o644))

	logger, _ := th.Logger()
	g := &cmd.Generate{Models: []string{modelPath}, OutPath: dir, Definition: []string{"pkg.Nope"}}
	assert.ErrorContains(t, g.Run(logger, nil), "pkg.Nope")
}

func TestGenerateSettingsReachRecipe(t *testing.T) {
	const flagged = `
definitions:
  - name: pkg.Comp
    flags: {cppFlags: [-DDEF], cFlags: [-Wall], asFlags: ['-Wa,--def']}
    sources:
      - path: comp.c
        flags: {cppFlags: [-DSRC], cFlags: [-O2], asFlags: ['-Wa,--src']}
`
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(src, 0o755))
	comp := filepath.Join(src, "comp.c")
	require.NoError(t, os.WriteFile(comp, nil, 0o644))
	modelPath := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(modelPath, []byte(flagged), 0o644))

	logger, _ := th.Logger()
	g := &cmd.Generate{
		Models:   []string{modelPath},
		OutPath:  out,
		SrcPath:  []string{src},
		IncPath:  []string{"/projInc"},
		CPPFlags: []string{"-DPROJ"},
		CFlags:   []string{"-O0"},
	}
	require.NoError(t, g.Run(logger, nil))

	mk, err := os.ReadFile(filepath.Join(out, "pkg", "Comp.make"))
	require.NoError(t, err)
	assert.Equal(t, "all : pkg.Comp\npkg.Comp :\n\t$(CC) -c "+comp+" -include comp.impl.h"+
		" -I/projInc -DPROJ -O0 -DDEF -Wall -Wa,--def -DSRC -O2 -Wa,--src -I"+src+"\n", string(mk))
}

func TestGenerateRejectsScopedIncludePaths(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(modelPath, []byte(`
definitions:
  - name: pkg.Comp
    sources:
      - path: comp.c
        flags: {includePaths: [/srcInc]}
`), 0o644))

	logger, _ := th.Logger()
	g := &cmd.Generate{Models: []string{modelPath}, OutPath: filepath.Join(dir, "out")}
	assert.ErrorContains(t, g.Run(logger, nil), "includePaths is only supported as a project setting")
	assert.NoDirExists(t, filepath.Join(dir, "out", "pkg"))
}
