// Package generator runs header generation over a set of definitions.
package generator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mindc/fakeheader/adl"
	"github.com/mindc/fakeheader/internal/codegen/collab"
	cgen "github.com/mindc/fakeheader/internal/codegen/generator/c"
	"github.com/mindc/fakeheader/internal/codegen/generr"
)

// Generator emits headers and build fragments for definitions.
type Generator struct {
	logger  *slog.Logger
	emitter *cgen.Emitter
}

// New builds a Generator on the given collaborators.
func New(logger *slog.Logger, set collab.Set, opts ...cgen.Option) (*Generator, error) {
	emitter, err := cgen.New(logger, set, opts...)
	if err != nil {
		return nil, generr.Wrapf(err, "header generator")
	}
	return &Generator{
		logger:  logger,
		emitter: emitter,
	}, nil
}

// Generate writes the files of one definition.
func (g *Generator) Generate(ctx context.Context, def *adl.Definition) error {
	return g.emitter.EmitDefinition(ctx, def)
}

// GenerateAll generates every definition in order. A failing definition does
// not stop the others; the returned error names all failed definitions.
func (g *Generator) GenerateAll(ctx context.Context, defs []*adl.Definition) error {
	logger := g.logger.With("run", uuid.NewString())
	logger.Info("Generating headers", "definitions", len(defs))

	var (
		failed []string
		errs   []error
	)
	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return generr.Wrapf(err, "generation interrupted")
		}
		if err := g.Generate(ctx, def); err != nil {
			name := definitionName(def)
			logger.Error("Definition failed", "definition", name, "error", err)
			for _, hint := range strings.Split(generr.FlattenHints(err), "\n") {
				if hint != "" {
					logger.Info("Hint", "definition", name, "hint", hint)
				}
			}
			failed = append(failed, name)
			errs = append(errs, err)
		}
	}

	if len(failed) > 0 {
		return generr.Wrapf(generr.Join(errs...), "%d of %d definitions failed: %s",
			len(failed), len(defs), strings.Join(failed, ", "))
	}
	logger.Info("Header generation complete", "definitions", len(defs))
	return nil
}

func definitionName(def *adl.Definition) string {
	if def == nil {
		return "<nil>"
	}
	return def.Name
}
