package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mindc/fakeheader/adl"
	"github.com/mindc/fakeheader/internal/codegen/collab"
	"github.com/mindc/fakeheader/internal/codegen/generator"
	cgen "github.com/mindc/fakeheader/internal/codegen/generator/c"
	"github.com/mindc/fakeheader/internal/codegen/loader"
	"github.com/mindc/fakeheader/internal/codegen/locate"
	"github.com/mindc/fakeheader/internal/log"
)

type Generate struct {
	Models     []string `arg:"" name:"model" help:"Model files (YAML, JSON or TOML) holding definitions and IDL documents" type:"existingfile"`
	OutPath    string   `help:"Output directory for generated headers and build fragments" default:"./build/generated" env:"FAKEHEADER_OUT_PATH"`
	SrcPath    []string `help:"Directories searched for implementation sources, in order; also passed as -I" default:"." env:"FAKEHEADER_SRC_PATH"`
	IncPath    []string `help:"Project include directories" env:"FAKEHEADER_INC_PATH"`
	CPPFlags   []string `name:"cpp-flags" help:"Project preprocessor flags" env:"FAKEHEADER_CPP_FLAGS"`
	CFlags     []string `name:"c-flags" help:"Project C compiler flags" env:"FAKEHEADER_C_FLAGS"`
	Definition []string `help:"Only generate the named definitions" short:"d"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, artifacts log.ArtifactLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return g.generate(ctx, logger, artifacts)
}

func (g *Generate) generate(ctx context.Context, logger *slog.Logger, artifacts log.ArtifactLogger) error {
	logger.Info("Loading model", "files", len(g.Models))
	md, err := loader.LoadFiles(g.Models...)
	if err != nil {
		return err
	}
	defs, err := md.Select(g.Definition)
	if err != nil {
		return err
	}
	logger.Info("Loaded model", "definitions", len(defs), "idls", len(md.IDLs))
	if len(defs) == 0 {
		logger.Warn("No definitions to generate")
		return nil
	}

	set := collab.Set{
		IDLs:    locate.NewIDLRegistry(md.IDLs),
		Outputs: locate.OutputDir{Root: g.OutPath},
		Sources: locate.SourcePath{Roots: g.SrcPath},
		Flags: locate.AnnotatedFlags{Project: adl.Flags{
			IncludePaths: g.IncPath,
			CPPFlags:     g.CPPFlags,
			CFlags:       g.CFlags,
		}},
		Roots: locate.StaticRoots(g.SrcPath),
	}

	var opts []cgen.Option
	if artifacts != nil {
		opts = append(opts, cgen.WithArtifactLog(artifacts))
	}
	gen, err := generator.New(logger, set, opts...)
	if err != nil {
		return err
	}
	return gen.GenerateAll(ctx, defs)
}
