package scanner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yambusc/yambusc/internal/codegen/meta"
	"github.com/yambusc/yambusc/internal/model"
)

func table(kind model.EntryKind, names ...string) model.Table {
	t := model.Table{Kind: kind}
	for _, n := range names {
		t.Entries = append(t.Entries, model.TableEntry{Kind: kind, Name: n})
	}
	return t
}

func sectionNames(ws []meta.Warning) []string {
	var names []string
	for _, w := range ws {
		names = append(names, w.Section)
	}
	return names
}

func TestResolveMissingFile(t *testing.T) {
	res, err := Resolve(filepath.Join(t.TempDir(), "coils.c"), table(model.Coil, "a", "b"))
	require.NoError(t, err)

	assert.Empty(t, res.Warnings)
	assert.Empty(t, res.UserHeaderCode)
	assert.Empty(t, res.CreateCode)
	assert.Equal(t, []meta.Function{
		{Name: "a"},
		{Name: "b"},
	}, res.Functions)
}

func TestResolveWritableTable(t *testing.T) {
	path := writeFile(t, section(RoleRead, UserSection, "#include \"hal.h\"\n")+
		section(RoleRead, "valve", "    value = hal_valve();\n")+
		section(RoleWrite, "valve", "    hal_set_valve(value);\n")+
		section(RoleRead, "pump", "")+
		section(RoleWrite, "pump", "    hal_set_pump(value);\n")+
		section(RoleRead, CreateSection, "    hal_init();\n"))

	res, err := Resolve(path, table(model.Coil, "valve", "pump"))
	require.NoError(t, err)

	assert.Empty(t, res.Warnings)
	assert.Equal(t, "#include \"hal.h\"\n", res.UserHeaderCode)
	assert.Equal(t, "    hal_init();\n", res.CreateCode)
	assert.Equal(t, []meta.Function{
		{Name: "valve", ReadCode: "    value = hal_valve();\n", WriteCode: "    hal_set_valve(value);\n"},
		{Name: "pump", ReadCode: "", WriteCode: "    hal_set_pump(value);\n"},
	}, res.Functions)
}

func TestResolveReadOnlyIgnoresStaleWriteSection(t *testing.T) {
	path := writeFile(t, section(RoleRead, UserSection, "")+
		section(RoleRead, "door", "    value = hal_door();\n")+
		section(RoleWrite, "door", "    stale();\n")+
		section(RoleRead, CreateSection, ""))

	tbl := table(model.DiscreteInput, "door")
	res, err := Resolve(path, tbl)
	require.NoError(t, err)

	require.Len(t, res.Functions, 1)
	fn := res.Functions[0]
	assert.True(t, fn.ReadOnly)
	assert.Equal(t, "    value = hal_door();\n", fn.ReadCode)
	assert.Empty(t, fn.WriteCode)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "set_door", res.Warnings[0].Section)
	assert.ErrorIs(t, res.Warnings[0].Err, ErrOrphanedSection)
}

func TestResolveIsolatesMalformedSection(t *testing.T) {
	path := writeFile(t, section(RoleRead, UserSection, "")+
		section(RoleRead, "a", "    value = 1;\n")+
		section(RoleWrite, "a", "    write_a(value);\n")+
		// b lost its end marker
		"/*\n * start get_b code\n */\n    value = 2;\n/*\n */\n"+
		section(RoleWrite, "b", "    write_b(value);\n")+
		section(RoleRead, "c", "    value = 3;\n")+
		section(RoleWrite, "c", "    write_c(value);\n")+
		section(RoleRead, CreateSection, ""))

	res, err := Resolve(path, table(model.HoldingRegister, "a", "b", "c"))
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "get_b", res.Warnings[0].Section)
	assert.ErrorIs(t, res.Warnings[0].Err, ErrSectionNotFound)
	assert.NotErrorIs(t, res.Warnings[0].Err, ErrSectionAbsent)
	assert.Equal(t, path, res.Warnings[0].Path)

	assert.Equal(t, []meta.Function{
		{Name: "a", ReadCode: "    value = 1;\n", WriteCode: "    write_a(value);\n"},
		{Name: "b", ReadCode: "", WriteCode: "    write_b(value);\n"},
		{Name: "c", ReadCode: "    value = 3;\n", WriteCode: "    write_c(value);\n"},
	}, res.Functions)
}

func TestResolveReportsNewAndRemovedEntries(t *testing.T) {
	path := writeFile(t, section(RoleRead, UserSection, "")+
		section(RoleRead, "old", "    value = 7;\n")+
		section(RoleRead, CreateSection, ""))

	res, err := Resolve(path, table(model.InputRegister, "new"))
	require.NoError(t, err)

	assert.Equal(t, []string{"get_new", "get_old"}, sectionNames(res.Warnings))
	assert.ErrorIs(t, res.Warnings[0].Err, ErrSectionAbsent)
	assert.ErrorIs(t, res.Warnings[1].Err, ErrOrphanedSection)
}

func TestResolveMissingTableSections(t *testing.T) {
	path := writeFile(t, section(RoleRead, "valve", ""))

	res, err := Resolve(path, table(model.InputRegister, "valve"))
	require.NoError(t, err)
	assert.Equal(t, []string{"get_user", "get_create"}, sectionNames(res.Warnings))
}
