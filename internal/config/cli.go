// Package config holds the root command line of fakeheader.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/mindc/fakeheader/internal/cmd"
)

// Log configures the process logger.
type Log struct {
	Level        string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"FAKEHEADER_LOG_LEVEL"`
	File         string `help:"Also write logs to this file" env:"FAKEHEADER_LOG_FILE"`
	ArtifactFile string `help:"Dump every generated file to this file" env:"FAKEHEADER_LOG_ARTIFACT_FILE"`
}

// CLI is the root kong model.
type CLI struct {
	Config  string           `help:"Path to a JSON, YAML or TOML configuration file" env:"FAKEHEADER_CONFIG" placeholder:"FILE"`
	Version kong.VersionFlag `help:"Print version and exit"`
	Log     Log              `embed:"" prefix:"log."`

	Generate cmd.Generate      `cmd:"" help:"Generate component headers and build fragments from model files"`
	Cfg      cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
