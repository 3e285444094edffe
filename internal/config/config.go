// Package config declares the command-line surface of rsgen.
package config

import (
	"github.com/thriftrs/rsgen/internal/cmd"
	"github.com/thriftrs/rsgen/internal/log"

	"github.com/alecthomas/kong"
)

// CLI is the root Kong model. Values resolve from flags, then environment,
// then the first configuration file found.
type CLI struct {
	Config  string           `help:"Path to a configuration file (.json, .yaml, .toml)" env:"RSGEN_CONFIG" placeholder:"FILE"`
	Version kong.VersionFlag `help:"Print version and exit"`
	Log     log.Config       `embed:"" prefix:"log."`

	Generate  cmd.Generate      `cmd:"" help:"Generate Rust declarations from resolved schemas"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
