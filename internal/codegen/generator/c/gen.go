// Package cgen emits the C headers and the build fragment of a component
// definition.
//
// For a definition "pkg.Comp" it writes, relative to the output locator:
//   - pkg/Comp.adl.h (definition header)
//   - <sig path>.itf.h per distinct interface signature
//   - <source>.impl.h per implementation source (pre-included when compiling)
//   - pkg/Comp.make (build fragment)
package cgen

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mindc/fakeheader/internal/codegen/collab"
	"github.com/mindc/fakeheader/internal/codegen/generr"
	"github.com/mindc/fakeheader/internal/codegen/output"
	"github.com/mindc/fakeheader/internal/log"
)

// Emitter writes the generated files of definitions. It holds no state
// between definitions and may be shared by concurrent callers.
type Emitter struct {
	logger *slog.Logger
	set    collab.Set
	trace  log.ArtifactLogger
	rules  *BuildRuleEmitter
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithArtifactLog records every committed file on l.
func WithArtifactLog(l log.ArtifactLogger) Option {
	return func(e *Emitter) { e.trace = l }
}

// New builds an Emitter on the given collaborators.
func New(logger *slog.Logger, set collab.Set, opts ...Option) (*Emitter, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	e := &Emitter{logger: logger, set: set}
	for _, o := range opts {
		o(e)
	}
	e.rules = NewBuildRuleEmitter(logger, set.Flags, set.Roots)
	return e, nil
}

// create opens the sink of a logical relative output path.
func (e *Emitter) create(ctx context.Context, relPath string) (*output.Sink, error) {
	path, err := e.set.Outputs.OutputPath(ctx, relPath)
	if err != nil {
		return nil, generr.OutputCreation(err, relPath)
	}
	var opts []output.Option
	if e.trace != nil {
		opts = append(opts, output.WithTrace(e.trace))
	}
	return output.Create(path, opts...)
}

// writeFile runs body on a fresh sink for relPath and commits it. The file is
// discarded when body fails.
func (e *Emitter) writeFile(ctx context.Context, relPath string, body func(io.Writer) error) error {
	sink, err := e.create(ctx, relPath)
	if err != nil {
		return err
	}
	defer sink.Discard()
	if err := body(sink); err != nil {
		return err
	}
	if err := sink.Commit(); err != nil {
		return err
	}
	e.logger.Debug("Generated file", "file", sink.Path())
	return nil
}

// printer keeps the first write error so emit code can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) line(s string) {
	p.printf("%s\n", s)
}

func (p *printer) blank() {
	p.printf("\n")
}
