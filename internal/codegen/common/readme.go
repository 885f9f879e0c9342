package common

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/yambusc/yambusc/internal/model"
)

var readmeTmpl = template.Must(template.New("readme").Parse(`# {{.Meta.DeviceName}}

Modbus register map firmware for {{.Meta.DeviceName}}, scaffolded by yambusc {{.Version}} on {{.Meta.Date}}.

## Layout

- ` + "`data_structure.yaml`" + ` declares the register tables of the device.
- ` + "`src/`" + ` and ` + "`inc/`" + ` hold one source and header per primary table
  (discrete inputs, coils, input registers, holding registers) plus the device
  aggregate ` + "`{{.Stem}}.c`" + ` / ` + "`{{.Stem}}.h`" + `.
- ` + "`test/`" + ` is reserved for unit tests.

## Regenerating

After editing ` + "`data_structure.yaml`" + `, run

    yambusc model update -d .

The table files are regenerated. Code written between a pair of markers such as

    /*
     * start get_<name> code
     */
    ...
    /*
     * end get_<name> code
     */

is carried over into the new files. Everything else in the table files is
overwritten. The device aggregate, ` + "`primary_table.h`" + ` and ` + "`CMakeLists.txt`" + `
are only written when missing.

Do not run two regenerations against the same directory at the same time.
`))

// RenderReadme returns the README of a freshly scaffolded project.
func RenderReadme(m model.Meta, stem string, v VersionInfo) ([]byte, error) {
	data := struct {
		Meta    model.Meta
		Stem    string
		Version VersionInfo
	}{m, stem, v}

	var buf bytes.Buffer
	if err := readmeTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute README template: %w", err)
	}
	return buf.Bytes(), nil
}
