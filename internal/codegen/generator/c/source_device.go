package cgen

const deviceSourceTmpl = `{{scaffoldBanner "device"}}
#include "{{.Stem}}.h"

static struct PrimaryTableStruct tables[N_PRIMARY_TABLES];

void
{{.Stem}}_create(void)
{
{{- range tables}}
    {{.Name}}_create(&tables[{{.ID}}]);
{{- end}}
}

PrimaryTable
{{.Stem}}_table(enum PrimaryTableId id)
{
    if ((size_t)id >= N_PRIMARY_TABLES) {
        return NULL;
    }
    return &tables[id];
}
`

// RenderDeviceSource renders src/<device>.c.
func RenderDeviceSource(p Project) ([]byte, error) {
	return execute(p.Stem+".c", deviceSourceTmpl, p, p)
}
