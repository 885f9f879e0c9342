package cgen

const primaryTableTmpl = `{{scaffoldBanner "primary table interface"}}
#ifndef {{.Macro}}_PRIMARY_TABLE_H
#define {{.Macro}}_PRIMARY_TABLE_H

#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>

#define YAMBUSC_VERSION_MAJOR {{.Version.Major}}
#define YAMBUSC_VERSION_MINOR {{.Version.Minor}}
#define YAMBUSC_VERSION_PATCH {{.Version.Patch}}

enum PrimaryTableId {
{{- range $i, $t := tables}}
    {{$t.ID}} = {{$i}},
{{- end}}
    N_PRIMARY_TABLES = {{len tables}}
};

struct PrimaryTableInterface {
    size_t size;
    uint16_t (*read)(size_t index);
    bool (*write)(size_t index, uint16_t value); /* NULL for read-only tables */
};

struct PrimaryTableStruct {
    const struct PrimaryTableInterface *vtable;
};

typedef struct PrimaryTableStruct *PrimaryTable;

static inline size_t
primary_table_size(PrimaryTable table)
{
    return table->vtable->size;
}

static inline bool
primary_table_read(PrimaryTable table, size_t index, uint16_t *value)
{
    if (index >= table->vtable->size) {
        return false;
    }
    *value = table->vtable->read(index);
    return true;
}

static inline bool
primary_table_write(PrimaryTable table, size_t index, uint16_t value)
{
    if (table->vtable->write == NULL || index >= table->vtable->size) {
        return false;
    }
    return table->vtable->write(index, value);
}

#endif /* {{.Macro}}_PRIMARY_TABLE_H */
`

// RenderPrimaryTable renders inc/primary_table.h, the interface every table
// source implements.
func RenderPrimaryTable(p Project) ([]byte, error) {
	return execute(primaryTableStem+".h", primaryTableTmpl, p, p)
}
