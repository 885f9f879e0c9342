// Package config defines the command line of yambusc.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/yambusc/yambusc/internal/cmd"
)

// CLI is the root kong grammar. Flags override environment variables, which
// override configuration files.
type CLI struct {
	cmd.Globals `embed:""`

	Config  string           `help:"Configuration file (JSON, YAML or TOML)" type:"path" env:"YAMBUSC_CONFIG"`
	Version kong.VersionFlag `help:"Print the version and exit"`

	Device    cmd.DeviceCommand `cmd:"" help:"Scaffold or repair a device project"`
	Model     cmd.ModelCommand  `cmd:"" help:"Generate the register tables from data_structure.yaml"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
