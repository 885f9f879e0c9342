package cgen

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/yambusc/yambusc/internal/codegen/common"
	"github.com/yambusc/yambusc/internal/codegen/scanner"
	"github.com/yambusc/yambusc/internal/model"
)

// ErrReservedDeviceName means the device file stem would collide with a file
// the generator owns.
var ErrReservedDeviceName = errors.New("reserved device name")

// Project carries the names derived once from the device metadata.
type Project struct {
	Meta    model.Meta
	Stem    string // file stem and C prefix, e.g. "pressure_sensor"
	Macro   string // e.g. "PRESSURE_SENSOR"
	Version common.VersionInfo
}

func NewProject(m model.Meta, v common.VersionInfo) (Project, error) {
	stem := common.ToSnakeCase(m.DeviceName)
	if stem == "" {
		return Project{}, fmt.Errorf("%w: empty device name", ErrReservedDeviceName)
	}
	if stem == primaryTableStem {
		return Project{}, fmt.Errorf("%w: %q maps to %s", ErrReservedDeviceName, m.DeviceName, primaryTableStem)
	}
	for _, k := range model.Kinds {
		if stem == k.Key() {
			return Project{}, fmt.Errorf("%w: %q maps to the %s table", ErrReservedDeviceName, m.DeviceName, k.Key())
		}
	}

	return Project{
		Meta:    m,
		Stem:    stem,
		Macro:   common.ToMacroCase(m.DeviceName),
		Version: v,
	}, nil
}

// tableRef names one primary table in the device level templates.
type tableRef struct {
	Name string // "coils"
	ID   string // "PRIMARY_TABLE_COILS"
}

func tableRefs() []tableRef {
	refs := make([]tableRef, 0, len(model.Kinds))
	for _, k := range model.Kinds {
		refs = append(refs, tableRef{
			Name: k.Key(),
			ID:   "PRIMARY_TABLE_" + strings.ToUpper(k.Key()),
		})
	}
	return refs
}

func tplFuncs(p Project) template.FuncMap {
	return template.FuncMap{
		"upper":  strings.ToUpper,
		"tables": tableRefs,
		"banner": func(title string) string {
			return common.FileHeader(p.Meta, p.Version, title, common.Regenerated)
		},
		"scaffoldBanner": func(title string) string {
			return common.FileHeader(p.Meta, p.Version, title, common.Scaffolded)
		},
		"readSection": func(id, code string) string {
			return scanner.FormatSection(scanner.RoleRead, id, code)
		},
		"writeSection": func(id, code string) string {
			return scanner.FormatSection(scanner.RoleWrite, id, code)
		},
		"userSection": func(code string) string {
			return scanner.FormatSection(scanner.RoleRead, scanner.UserSection, code)
		},
		"createSection": func(code string) string {
			return scanner.FormatSection(scanner.RoleRead, scanner.CreateSection, code)
		},
	}
}
