package cgen

import (
	"strings"

	"github.com/yambusc/yambusc/internal/codegen/meta"
)

const tableHeaderTmpl = `{{banner (printf "%s table" .Table)}}
#ifndef {{.Guard}}
#define {{.Guard}}

#include "primary_table.h"

#define N_{{.TableMacro}} {{len .Functions}}
{{- range $i, $fn := .Functions}}
#define {{$.TableMacro}}_{{upper $fn.Name}} {{$i}}
{{- end}}
{{range .Functions}}
{{$.ValueType}} {{$.Table}}_get_{{.Name}}(void);
{{- if not $.ReadOnly}}
void {{$.Table}}_set_{{.Name}}({{$.ValueType}} value);
{{- end}}
{{- end}}

void {{.Table}}_create(PrimaryTable base);

#endif /* {{.Guard}} */
`

type tableData struct {
	Project
	meta.TableContext
	TableMacro string
	Guard      string
}

func newTableData(p Project, ctx meta.TableContext) tableData {
	macro := strings.ToUpper(ctx.Table)
	return tableData{
		Project:      p,
		TableContext: ctx,
		TableMacro:   macro,
		Guard:        p.Macro + "_" + macro + "_H",
	}
}

// RenderTableHeader renders inc/<table>.h: the entry count, one index macro
// per entry in table order, and the accessor prototypes.
func RenderTableHeader(p Project, ctx meta.TableContext) ([]byte, error) {
	return execute(ctx.Table+".h", tableHeaderTmpl, p, newTableData(p, ctx))
}
