package cmd

import (
	"errors"
	"log/slog"

	"github.com/yambusc/yambusc/internal/codegen/generator"
	"github.com/yambusc/yambusc/internal/codegen/meta"
	"github.com/yambusc/yambusc/internal/codegen/scanner"
)

// ModelCommand regenerates the table sources from data_structure.yaml. Both
// subcommands run the same workflow: "new" after the first edit of the
// declaration, "update" after every later one.
type ModelCommand struct {
	New    Codegen `cmd:"" help:"Generate the register tables from data_structure.yaml"`
	Update Codegen `cmd:"" help:"Regenerate the register tables, keeping user code"`
}

type Codegen struct{}

// Run is called by Kong when a model command is executed.
func (c *Codegen) Run(logger *slog.Logger, g *Globals) error {
	logger.Info("Starting code generation", "dir", g.Dir)

	report, err := generator.New(g.Dir, logger).Regenerate()
	logReport(logger, report)
	return err
}

func logReport(logger *slog.Logger, report *meta.Report) {
	if report == nil {
		return
	}
	var fresh int
	for _, w := range report.Warnings {
		switch {
		case errors.Is(w.Err, scanner.ErrSectionAbsent):
			fresh++
			logger.Debug("No user code yet", "file", w.Path, "section", w.Section)
		case errors.Is(w.Err, scanner.ErrOrphanedSection):
			logger.Warn("User code of a removed entry is dropped", "file", w.Path, "section", w.Section)
		default:
			logger.Warn("User code section not recovered, it renders empty", "file", w.Path, "section", w.Section, "error", w.Err)
		}
	}
	logger.Info("Done",
		"written", len(report.Written),
		"skipped", len(report.Skipped),
		"new_sections", fresh,
		"warnings", len(report.Warnings)-fresh)
}
