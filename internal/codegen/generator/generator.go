// Package generator runs the scaffold and regenerate workflows against a
// device project directory.
//
// Runs are sequential and take no lock. Two runs against the same directory
// at the same time may interleave their writes; every single file is replaced
// atomically, but a run as a whole is not.
package generator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yambusc/yambusc/internal/codegen/common"
	cgen "github.com/yambusc/yambusc/internal/codegen/generator/c"
	"github.com/yambusc/yambusc/internal/codegen/meta"
	"github.com/yambusc/yambusc/internal/codegen/scanner"
	"github.com/yambusc/yambusc/internal/model"
)

const readmeFile = "README.md"

type Generator struct {
	projectDir string
	logger     *slog.Logger
}

func New(projectDir string, logger *slog.Logger) *Generator {
	return &Generator{
		projectDir: projectDir,
		logger:     logger,
	}
}

// DeclarationPath is the data_structure.yaml of the project.
func (g *Generator) DeclarationPath() string {
	return filepath.Join(g.projectDir, model.FileName)
}

// Scaffold lays out a new project for the device described by m. Every file
// it produces is only written when absent, so running it again on an existing
// project changes nothing.
func (g *Generator) Scaffold(m model.Meta) (*meta.Report, error) {
	g.logger.Info("Scaffolding device", "device", m.DeviceName, "dir", g.projectDir)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	p, err := g.project(m)
	if err != nil {
		return nil, err
	}
	if err := g.ensureDirs(); err != nil {
		return nil, err
	}

	decl, err := model.Encode(&model.DataModel{Meta: m})
	if err != nil {
		return nil, err
	}
	files := []cgen.File{{Path: model.FileName, Data: decl}}

	scaffold, err := g.renderScaffold(p)
	if err != nil {
		return nil, err
	}
	files = append(files, scaffold...)

	// Empty tables, so the fresh project builds before its first regeneration.
	for _, kind := range model.Kinds {
		tableFiles, err := cgen.RenderTable(p, meta.TableContext{
			Table:     kind.Key(),
			ReadOnly:  kind.ReadOnly(),
			ValueType: kind.CType(),
		})
		if err != nil {
			return nil, err
		}
		files = append(files, tableFiles...)
	}

	report := &meta.Report{}
	if err := g.writeIfAbsent(report, files); err != nil {
		return report, err
	}
	g.logger.Info("Scaffold complete", "written", len(report.Written), "skipped", len(report.Skipped))
	return report, nil
}

// RestoreScaffold re-reads the device metadata from the declaration file and
// writes whichever scaffold files are missing. Existing files are never
// touched.
func (g *Generator) RestoreScaffold() (*meta.Report, error) {
	dm, err := model.Load(g.DeclarationPath(), g.logger)
	if err != nil {
		return nil, err
	}
	g.logger.Info("Restoring scaffold", "device", dm.Meta.DeviceName, "dir", g.projectDir)

	p, err := g.project(dm.Meta)
	if err != nil {
		return nil, err
	}
	if err := g.ensureDirs(); err != nil {
		return nil, err
	}

	files, err := g.renderScaffold(p)
	if err != nil {
		return nil, err
	}

	report := &meta.Report{}
	if err := g.writeIfAbsent(report, files); err != nil {
		return report, err
	}
	return report, nil
}

// Regenerate rebuilds every table from the declaration file, carrying over
// the user code of the previous table files.
//
// The declaration is validated and every table rendered before the first
// write, so a bad declaration or an unreadable table file leaves the project
// untouched. Afterwards missing scaffold files are restored; existing ones
// are not clobbered.
func (g *Generator) Regenerate() (*meta.Report, error) {
	dm, err := model.Load(g.DeclarationPath(), g.logger)
	if err != nil {
		return nil, err
	}
	g.logger.Info("Regenerating device", "device", dm.Meta.DeviceName, "dir", g.projectDir)

	p, err := g.project(dm.Meta)
	if err != nil {
		return nil, err
	}

	report := &meta.Report{}
	var files []cgen.File
	for _, table := range dm.Tables() {
		tableFiles, warnings, err := g.renderTable(p, table)
		if err != nil {
			return nil, err
		}
		report.AddWarnings(warnings...)
		files = append(files, tableFiles...)
	}

	if err := g.ensureDirs(); err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := common.WriteFile(g.abs(f.Path), f.Data); err != nil {
			return report, err
		}
		report.Written = append(report.Written, f.Path)
		g.logger.Debug("Wrote table file", "file", f.Path)
	}

	scaffold, err := g.renderScaffold(p)
	if err != nil {
		return report, err
	}
	if err := g.writeIfAbsent(report, scaffold); err != nil {
		return report, err
	}

	g.logger.Info("Regeneration complete",
		"written", len(report.Written),
		"skipped", len(report.Skipped),
		"warnings", len(report.Warnings))
	return report, nil
}

// renderTable recovers the user code of one table from its current source
// file and renders the replacement header and source.
func (g *Generator) renderTable(p cgen.Project, table model.Table) ([]cgen.File, []meta.Warning, error) {
	g.logger.Debug("Rendering table", "table", table.Name(), "entries", table.Names())
	sourcePath := g.abs(cgen.TableSourcePath(table.Name()))
	res, err := scanner.Resolve(sourcePath, table)
	if err != nil {
		return nil, nil, fmt.Errorf("recover user code of %s: %w", table.Name(), err)
	}
	for _, w := range res.Warnings {
		g.logger.Debug("User code section not recovered", "table", table.Name(), "section", w.Section, "error", w.Err)
	}

	files, err := cgen.RenderTable(p, meta.TableContext{
		Table:          table.Name(),
		ReadOnly:       table.Kind.ReadOnly(),
		ValueType:      table.Kind.CType(),
		Functions:      res.Functions,
		UserHeaderCode: res.UserHeaderCode,
		CreateCode:     res.CreateCode,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("render %s: %w", table.Name(), err)
	}
	return files, res.Warnings, nil
}

func (g *Generator) renderScaffold(p cgen.Project) ([]cgen.File, error) {
	files, err := cgen.RenderScaffold(p)
	if err != nil {
		return nil, err
	}
	readme, err := common.RenderReadme(p.Meta, p.Stem, p.Version)
	if err != nil {
		return nil, err
	}
	return append(files, cgen.File{Path: readmeFile, Data: readme}), nil
}

func (g *Generator) writeIfAbsent(report *meta.Report, files []cgen.File) error {
	for _, f := range files {
		written, err := common.WriteFileIfAbsent(g.abs(f.Path), f.Data)
		if err != nil {
			return err
		}
		if written {
			report.Written = append(report.Written, f.Path)
			g.logger.Debug("Wrote file", "file", f.Path)
		} else {
			report.Skipped = append(report.Skipped, f.Path)
			g.logger.Debug("Kept existing file", "file", f.Path)
		}
	}
	return nil
}

func (g *Generator) project(m model.Meta) (cgen.Project, error) {
	version, err := common.CurrentVersion()
	if err != nil {
		return cgen.Project{}, fmt.Errorf("get version: %w", err)
	}
	return cgen.NewProject(m, version)
}

func (g *Generator) ensureDirs() error {
	for _, dir := range []string{cgen.SrcDir, cgen.IncDir, cgen.TestDir} {
		if err := os.MkdirAll(g.abs(dir), 0o755); err != nil {
			return fmt.Errorf("create %s dir: %w", dir, err)
		}
	}
	return nil
}

func (g *Generator) abs(rel string) string {
	return filepath.Join(g.projectDir, rel)
}
