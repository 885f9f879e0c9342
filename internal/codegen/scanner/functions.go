package scanner

import (
	"errors"

	"github.com/yambusc/yambusc/internal/codegen/meta"
	"github.com/yambusc/yambusc/internal/model"
)

// Resolution is the user code recovered from a table's current source file.
type Resolution struct {
	Functions      []meta.Function
	UserHeaderCode string
	CreateCode     string
	Warnings       []meta.Warning
}

// Resolve recovers the user code of every entry of table, plus the table
// level user and create sections, from the file at path. The file is read
// before it gets overwritten.
//
// A missing file yields empty code and no warnings. A missing or malformed
// section yields empty code for that section and one warning; the other
// sections are unaffected. Only a failure to read an existing file is
// returned as an error, since overwriting it would lose its user code.
func Resolve(path string, table model.Table) (*Resolution, error) {
	f, err := ParseFile(path)
	if errors.Is(err, ErrNoFile) {
		return &Resolution{Functions: emptyFunctions(table)}, nil
	}
	if err != nil {
		return nil, err
	}

	res := &Resolution{}
	res.Functions, res.Warnings = ResolveFunctions(f, table)

	var w []meta.Warning
	res.UserHeaderCode, res.CreateCode, w = ResolveFragments(f)
	res.Warnings = append(res.Warnings, w...)

	res.Warnings = append(res.Warnings, Orphans(f, table)...)
	return res, nil
}

// ResolveFragments returns the table level user and create sections.
func ResolveFragments(f *File) (userHeader, create string, warnings []meta.Warning) {
	var w []meta.Warning
	userHeader, w = extractOrWarn(f, RoleRead, UserSection)
	warnings = append(warnings, w...)
	create, w = extractOrWarn(f, RoleRead, CreateSection)
	warnings = append(warnings, w...)
	return userHeader, create, warnings
}

// ResolveFunctions builds one Function per entry, in table order. The write
// section is only looked up for writable entries; a set_ section left in the
// file for a read-only entry is never resolved.
func ResolveFunctions(f *File, table model.Table) ([]meta.Function, []meta.Warning) {
	functions := make([]meta.Function, 0, len(table.Entries))
	var warnings []meta.Warning

	for _, entry := range table.Entries {
		fn := newFunction(entry)

		var w []meta.Warning
		fn.ReadCode, w = extractOrWarn(f, RoleRead, entry.Name)
		warnings = append(warnings, w...)

		if !fn.ReadOnly {
			fn.WriteCode, w = extractOrWarn(f, RoleWrite, entry.Name)
			warnings = append(warnings, w...)
		}
		functions = append(functions, fn)
	}
	return functions, warnings
}

// Orphans reports sections of f that the table will not re-embed, because
// their entry was removed or renamed, or because they are write sections of
// a read-only table.
func Orphans(f *File, table model.Table) []meta.Warning {
	kept := map[string]bool{
		SectionName(RoleRead, UserSection):   true,
		SectionName(RoleRead, CreateSection): true,
	}
	for _, entry := range table.Entries {
		kept[SectionName(RoleRead, entry.Name)] = true
		if !entry.ReadOnly() {
			kept[SectionName(RoleWrite, entry.Name)] = true
		}
	}

	var warnings []meta.Warning
	for _, ref := range f.Sections() {
		name := SectionName(ref.Role, ref.Identifier)
		if kept[name] {
			continue
		}
		warnings = append(warnings, meta.Warning{
			Path:    f.Path,
			Section: name,
			Err:     ErrOrphanedSection,
		})
	}
	return warnings
}

func extractOrWarn(f *File, role Role, id string) (string, []meta.Warning) {
	code, err := f.Extract(role, id)
	if err != nil {
		return "", []meta.Warning{{Path: f.Path, Section: SectionName(role, id), Err: err}}
	}
	return code, nil
}

func emptyFunctions(table model.Table) []meta.Function {
	functions := make([]meta.Function, 0, len(table.Entries))
	for _, entry := range table.Entries {
		functions = append(functions, newFunction(entry))
	}
	return functions
}

func newFunction(entry model.TableEntry) meta.Function {
	return meta.Function{
		Name:     entry.Name,
		ReadOnly: entry.ReadOnly(),
		Port:     entry.Port,
		Pin:      entry.Pin,
	}
}
