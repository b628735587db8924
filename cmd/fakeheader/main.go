package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/mindc/fakeheader/internal/codegen/common"
	"github.com/mindc/fakeheader/internal/config"
	"github.com/mindc/fakeheader/internal/configpaths"
	"github.com/mindc/fakeheader/internal/log"
)

func main() {

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	version, err := common.GetVersion()
	if err != nil {
		version = common.Version
	}

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("fakeheader"),
		kong.Description("Component header and build fragment generator"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var artifacts log.ArtifactLogger
	if cli.Log.ArtifactFile != "" {
		f, err := os.OpenFile(cli.Log.ArtifactFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open artifact log file", "file", cli.Log.ArtifactFile, "error", err)
			artifacts = log.NewArtifact(nil)
		} else {
			artifacts = log.NewArtifact(f)
			closeFiles = append(closeFiles, f)
		}
	} else if cli.Log.Level == "trace" {
		artifacts = log.NewArtifact(os.Stdout)
	} else {
		artifacts = log.NewArtifact(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(artifacts, (*log.ArtifactLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("FAKEHEADER_CONFIG"); v != "" {
		return v
	}
	return ""
}
