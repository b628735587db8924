package cgen

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mindc/fakeheader/adl"
	"github.com/mindc/fakeheader/internal/codegen/collab"
	"github.com/mindc/fakeheader/internal/codegen/common"
	"github.com/mindc/fakeheader/internal/codegen/generr"
)

// CompileCommand starts every recipe line.
const CompileCommand = "$(CC) -c"

// BuildRulePath is the relative path of the build fragment of a definition.
func BuildRulePath(definition string) string {
	return common.NameToPath(definition, "make")
}

// BuildRuleEmitter writes make fragments compiling implementation sources
// against their generated pre-include headers.
type BuildRuleEmitter struct {
	logger *slog.Logger
	flags  collab.FlagResolver
	roots  collab.ResourceRootLocator
}

// NewBuildRuleEmitter builds a BuildRuleEmitter on flags and roots.
func NewBuildRuleEmitter(logger *slog.Logger, flags collab.FlagResolver, roots collab.ResourceRootLocator) *BuildRuleEmitter {
	return &BuildRuleEmitter{logger: logger, flags: flags, roots: roots}
}

// WriteHeader writes the target lines of def. It is written once per fragment.
func (b *BuildRuleEmitter) WriteHeader(w io.Writer, def *adl.Definition) error {
	p := &printer{w: w}
	p.printf("all : %s\n", def.Name)
	p.printf("%s :\n", def.Name)
	return p.err
}

// WriteRecipe writes the tab-indented compile line of one source.
func (b *BuildRuleEmitter) WriteRecipe(ctx context.Context, w io.Writer, def *adl.Definition, src *adl.Source, srcPath, headerPath string) error {
	p := &printer{w: w}
	p.printf("\t%s\n", strings.Join(b.Recipe(ctx, def, src, srcPath, headerPath), " "))
	return p.err
}

// Recipe returns the tokens of the compile line of one source: the compile
// command, the source, the pre-include, then project include paths, project
// CPP and C flags, definition CPP/C/AS flags, source CPP/C/AS flags and one
// -I per existing resource root. Failed lookups contribute nothing.
func (b *BuildRuleEmitter) Recipe(ctx context.Context, def *adl.Definition, src *adl.Source, srcPath, headerPath string) []string {
	tokens := []string{CompileCommand, srcPath, "-include", headerPath}

	project := collab.Project()
	for _, inc := range b.lookup(ctx, "include paths", project, b.flags.IncludePaths) {
		tokens = append(tokens, "-I"+inc)
	}
	tokens = append(tokens, b.lookup(ctx, "cpp flags", project, b.flags.CPPFlags)...)
	tokens = append(tokens, b.lookup(ctx, "c flags", project, b.flags.CFlags)...)

	for _, scope := range []collab.Scope{collab.ForDefinition(def), collab.ForSource(def, src)} {
		tokens = append(tokens, b.lookup(ctx, "cpp flags", scope, b.flags.CPPFlags)...)
		tokens = append(tokens, b.lookup(ctx, "c flags", scope, b.flags.CFlags)...)
		tokens = append(tokens, b.lookup(ctx, "as flags", scope, b.flags.ASFlags)...)
	}

	for _, dir := range b.resourceRoots(ctx, def) {
		tokens = append(tokens, "-I"+dir)
	}
	return tokens
}

type flagLookup func(context.Context, collab.Scope) ([]string, error)

func (b *BuildRuleEmitter) lookup(ctx context.Context, class string, scope collab.Scope, fn flagLookup) []string {
	flags, err := fn(ctx, scope)
	if err != nil {
		err = generr.FlagResolution(err, "%s for %s", class, scope)
		b.logger.Warn("Flag lookup failed, no flags contributed",
			"scope", scope.String(), "class", class, "error", err)
		return nil
	}
	var out []string
	for _, f := range flags {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (b *BuildRuleEmitter) resourceRoots(ctx context.Context, def *adl.Definition) []string {
	roots, err := b.roots.ResourceRoots(ctx)
	if err != nil {
		b.logger.Warn("Resource roots unavailable", "definition", def.Name, "error", err)
		return nil
	}
	var dirs []string
	for _, r := range roots {
		fi, err := os.Stat(r)
		if err != nil || !fi.IsDir() {
			b.logger.Debug("Skipping resource root", "root", r)
			continue
		}
		dirs = append(dirs, r)
	}
	return dirs
}
