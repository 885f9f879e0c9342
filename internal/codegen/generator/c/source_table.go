package cgen

import (
	"github.com/yambusc/yambusc/internal/codegen/meta"
)

const tableSourceTmpl = `{{banner (printf "%s table" .Table)}}
#include "{{.Table}}.h"

{{userSection .UserHeaderCode}}
{{- range .Functions}}

{{$.ValueType}}
{{$.Table}}_get_{{.Name}}(void)
{
    {{$.ValueType}} value = 0;
{{- if .Port}}
    /* GPIO port {{.Port}}, pin {{.Pin}} */
{{- end}}
{{readSection .Name .ReadCode}}
    return value;
}
{{- if not $.ReadOnly}}

void
{{$.Table}}_set_{{.Name}}({{$.ValueType}} value)
{
    (void)value;
{{writeSection .Name .WriteCode}}
}
{{- end}}
{{- end}}
{{- if .Functions}}

static {{.ValueType}} (*const getters[N_{{.TableMacro}}])(void) = {
{{- range .Functions}}
    {{$.Table}}_get_{{.Name}},
{{- end}}
};
{{- if not .ReadOnly}}

static void (*const setters[N_{{.TableMacro}}])({{.ValueType}} value) = {
{{- range .Functions}}
    {{$.Table}}_set_{{.Name}},
{{- end}}
};
{{- end}}
{{- end}}

static uint16_t
table_read(size_t index)
{
{{- if .Functions}}
    return (uint16_t)getters[index]();
{{- else}}
    (void)index;
    return 0;
{{- end}}
}
{{- if not .ReadOnly}}

static bool
table_write(size_t index, uint16_t value)
{
{{- if .Functions}}
    setters[index](({{.ValueType}})value);
    return true;
{{- else}}
    (void)index;
    (void)value;
    return false;
{{- end}}
}
{{- end}}

static const struct PrimaryTableInterface table_interface = {
    .size = N_{{.TableMacro}},
    .read = table_read,
    .write = {{if .ReadOnly}}NULL{{else}}table_write{{end}},
};

void
{{.Table}}_create(PrimaryTable base)
{
    base->vtable = &table_interface;
{{createSection .CreateCode}}
}
`

// RenderTableSource renders src/<table>.c. Each accessor embeds the code
// recovered for it between its markers; write accessors are only rendered
// for writable tables.
func RenderTableSource(p Project, ctx meta.TableContext) ([]byte, error) {
	return execute(ctx.Table+".c", tableSourceTmpl, p, newTableData(p, ctx))
}
