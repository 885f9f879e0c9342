package cmd

import (
	"log/slog"
	"time"

	"github.com/yambusc/yambusc/internal/codegen/generator"
	"github.com/yambusc/yambusc/internal/model"
)

// DeviceCommand groups the commands working on the project layout.
type DeviceCommand struct {
	New    DeviceNew    `cmd:"" help:"Scaffold a new device project"`
	Update DeviceUpdate `cmd:"" help:"Restore missing scaffold files of an existing project"`
}

type DeviceNew struct{}

// Run scaffolds the project directory. Existing files are left alone.
func (c *DeviceNew) Run(logger *slog.Logger, g *Globals) error {
	m := model.NewMeta(g.Name, g.Author, time.Now())
	report, err := generator.New(g.Dir, logger).Scaffold(m)
	logReport(logger, report)
	return err
}

type DeviceUpdate struct{}

// Run writes whichever scaffold files are missing, using the metadata
// recorded in data_structure.yaml.
func (c *DeviceUpdate) Run(logger *slog.Logger, g *Globals) error {
	report, err := generator.New(g.Dir, logger).RestoreScaffold()
	logReport(logger, report)
	return err
}
