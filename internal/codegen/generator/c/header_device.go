package cgen

const deviceHeaderTmpl = `{{scaffoldBanner "device"}}
#ifndef {{.Macro}}_H
#define {{.Macro}}_H

#include "primary_table.h"
{{range tables}}#include "{{.Name}}.h"
{{end}}
/* Binds every primary table to its implementation. Call once at start up. */
void {{.Stem}}_create(void);

/* Returns NULL for an unknown id. */
PrimaryTable {{.Stem}}_table(enum PrimaryTableId id);

#endif /* {{.Macro}}_H */
`

// RenderDeviceHeader renders inc/<device>.h, the aggregate of all tables.
func RenderDeviceHeader(p Project) ([]byte, error) {
	return execute(p.Stem+".h", deviceHeaderTmpl, p, p)
}
