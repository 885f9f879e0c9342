package main

import (
	"os"
	"strings"

	"github.com/yambusc/yambusc/internal/cmd"
	"github.com/yambusc/yambusc/internal/codegen/common"
	"github.com/yambusc/yambusc/internal/config"
	"github.com/yambusc/yambusc/internal/configpaths"
	"github.com/yambusc/yambusc/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	version, err := common.CurrentVersion()
	if err != nil {
		version = common.ParseVersion("unknown")
	}

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("yambusc"),
		kong.Description("Modbus register map firmware generator"),
		kong.UsageOnError(),
		kong.Vars{
			"author":  cmd.DefaultAuthor(),
			"version": version.String(),
		},
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

	ctx.Bind(logger, &cli.Globals)

	err = ctx.Run()
	if err != nil {
		logger.Error("yambusc failed", "command", ctx.Command(), "error", err)
	}
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
	if v := os.Getenv("YAMBUSC_CONFIG"); v != "" {
		return v
	}
	return ""
}
