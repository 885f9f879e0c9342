// Package cgen renders the C sources and headers of a device project.
//
// Rendering is pure: every function returns file contents and leaves writing
// to the caller. Table files are re-rendered on every run with the user code
// recovered from their previous version; the remaining files are scaffolded
// once.
package cgen

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/yambusc/yambusc/internal/codegen/meta"
)

// Project directories, relative to the project root.
const (
	SrcDir  = "src"
	IncDir  = "inc"
	TestDir = "test"
)

const (
	primaryTableStem = "primary_table"
	cmakeFile        = "CMakeLists.txt"
)

// File is a rendered file, its path relative to the project root.
type File struct {
	Path string
	Data []byte
}

func TableSourcePath(table string) string { return filepath.Join(SrcDir, table+".c") }
func TableHeaderPath(table string) string { return filepath.Join(IncDir, table+".h") }

// RenderTable renders the header and the source of one primary table.
func RenderTable(p Project, ctx meta.TableContext) ([]File, error) {
	header, err := RenderTableHeader(p, ctx)
	if err != nil {
		return nil, err
	}
	source, err := RenderTableSource(p, ctx)
	if err != nil {
		return nil, err
	}
	return []File{
		{Path: TableHeaderPath(ctx.Table), Data: header},
		{Path: TableSourcePath(ctx.Table), Data: source},
	}, nil
}

// RenderScaffold renders the C files and build descriptor that are only
// written when missing.
func RenderScaffold(p Project) ([]File, error) {
	renderers := []struct {
		path   string
		render func(Project) ([]byte, error)
	}{
		{filepath.Join(IncDir, primaryTableStem+".h"), RenderPrimaryTable},
		{filepath.Join(IncDir, p.Stem+".h"), RenderDeviceHeader},
		{filepath.Join(SrcDir, p.Stem+".c"), RenderDeviceSource},
		{cmakeFile, RenderCMake},
	}

	files := make([]File, 0, len(renderers))
	for _, r := range renderers {
		data, err := r.render(p)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Path: r.path, Data: data})
	}
	return files, nil
}

func execute(name, text string, p Project, data any) ([]byte, error) {
	t := template.Must(template.New(name).Funcs(tplFuncs(p)).Parse(text))
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute %s template: %w", name, err)
	}
	return buf.Bytes(), nil
}
