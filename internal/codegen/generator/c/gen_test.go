package cgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yambusc/yambusc/internal/codegen/common"
	"github.com/yambusc/yambusc/internal/codegen/meta"
	"github.com/yambusc/yambusc/internal/codegen/scanner"
	"github.com/yambusc/yambusc/internal/model"
)

func testProject(t *testing.T, device string) Project {
	t.Helper()
	m := model.NewMeta(device, "jo", time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC))
	p, err := NewProject(m, common.ParseVersion("1.0.0"))
	require.NoError(t, err)
	return p
}

func banner(title string) string {
	return "/*\n" +
		" * " + title + "\n" +
		" *\n" +
		" * Device:  Pump\n" +
		" * Author:  jo\n" +
		" * Created: 03-07-2024\n" +
		" *\n" +
		" * Copyright (c) 2024 jo\n" +
		" *\n" +
		" * Generated by yambusc 1.0.0. Changes outside the marked user code\n" +
		" * sections are overwritten on the next regeneration.\n" +
		" */\n"
}

func TestNewProject(t *testing.T) {
	p := testProject(t, "PressureSensor")
	assert.Equal(t, "pressure_sensor", p.Stem)
	assert.Equal(t, "PRESSURE_SENSOR", p.Macro)

	for _, name := range []string{"Coils", "HoldingRegisters", "PrimaryTable", "discrete_inputs"} {
		t.Run(name, func(t *testing.T) {
			_, err := NewProject(model.Meta{DeviceName: name}, common.VersionInfo{})
			assert.ErrorIs(t, err, ErrReservedDeviceName)
		})
	}
}

func TestRenderTableHeader(t *testing.T) {
	ctx := meta.TableContext{
		Table:     "coils",
		ValueType: "bool",
		Functions: []meta.Function{{Name: "valve"}},
	}

	out, err := RenderTableHeader(testProject(t, "Pump"), ctx)
	require.NoError(t, err)

	expected := banner("coils table") + `
#ifndef PUMP_COILS_H
#define PUMP_COILS_H

#include "primary_table.h"

#define N_COILS 1
#define COILS_VALVE 0

bool coils_get_valve(void);
void coils_set_valve(bool value);

void coils_create(PrimaryTable base);

#endif /* PUMP_COILS_H */
`
	assert.Equal(t, expected, string(out))
}

func TestRenderTableSourceReadOnly(t *testing.T) {
	ctx := meta.TableContext{
		Table:     "discrete_inputs",
		ReadOnly:  true,
		ValueType: "bool",
		Functions: []meta.Function{
			{Name: "door", ReadOnly: true, ReadCode: "    value = 1;\n", Port: "GPIOA", Pin: "3"},
		},
	}

	out, err := RenderTableSource(testProject(t, "Pump"), ctx)
	require.NoError(t, err)

	expected := banner("discrete_inputs table") + `
#include "discrete_inputs.h"

/*
 * start get_user code
 */
/*
 * end get_user code
 */

bool
discrete_inputs_get_door(void)
{
    bool value = 0;
    /* GPIO port GPIOA, pin 3 */
/*
 * start get_door code
 */
    value = 1;
/*
 * end get_door code
 */
    return value;
}

static bool (*const getters[N_DISCRETE_INPUTS])(void) = {
    discrete_inputs_get_door,
};

static uint16_t
table_read(size_t index)
{
    return (uint16_t)getters[index]();
}

static const struct PrimaryTableInterface table_interface = {
    .size = N_DISCRETE_INPUTS,
    .read = table_read,
    .write = NULL,
};

void
discrete_inputs_create(PrimaryTable base)
{
    base->vtable = &table_interface;
/*
 * start get_create code
 */
/*
 * end get_create code
 */
}
`
	assert.Equal(t, expected, string(out))
	assert.NotContains(t, string(out), "set_")
}

func TestRenderTablePreservesOrder(t *testing.T) {
	ctx := meta.TableContext{
		Table:     "coils",
		ValueType: "bool",
		Functions: []meta.Function{{Name: "A"}, {Name: "B"}, {Name: "C"}},
	}

	files, err := RenderTable(testProject(t, "Pump"), ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join("inc", "coils.h"), files[0].Path)
	assert.Equal(t, filepath.Join("src", "coils.c"), files[1].Path)

	header := string(files[0].Data)
	assert.Contains(t, header, "#define N_COILS 3\n#define COILS_A 0\n#define COILS_B 1\n#define COILS_C 2\n")

	source := string(files[1].Data)
	a := strings.Index(source, "coils_get_A(void)\n")
	b := strings.Index(source, "coils_get_B(void)\n")
	c := strings.Index(source, "coils_get_C(void)\n")
	require.True(t, a >= 0 && b >= 0 && c >= 0)
	assert.True(t, a < b && b < c, "accessors must follow table order")
	assert.Contains(t, source, "    coils_set_A,\n    coils_set_B,\n    coils_set_C,\n};")
	assert.Contains(t, source, ".write = table_write,")
}

func TestRenderEmptyTable(t *testing.T) {
	ctx := meta.TableContext{Table: "holding_registers", ValueType: "uint16_t"}

	files, err := RenderTable(testProject(t, "Pump"), ctx)
	require.NoError(t, err)

	assert.Contains(t, string(files[0].Data), "#define N_HOLDING_REGISTERS 0\n")
	source := string(files[1].Data)
	assert.NotContains(t, source, "getters[")
	assert.Contains(t, source, "    (void)index;\n    return 0;\n")
	assert.Contains(t, source, "    return false;\n")
}

func TestRenderTableSourceRoundTrip(t *testing.T) {
	ctx := meta.TableContext{
		Table:          "holding_registers",
		ValueType:      "uint16_t",
		UserHeaderCode: "#include \"hal.h\"\n\nstatic uint16_t speed;\n",
		CreateCode:     "    hal_init();\n",
		Functions: []meta.Function{
			{Name: "speed", ReadCode: "    value = speed;\n", WriteCode: "    speed = value;\n"},
			{Name: "mode", ReadCode: "", WriteCode: "\n    /* keep */\n\n"},
		},
	}

	out, err := RenderTableSource(testProject(t, "Pump"), ctx)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "holding_registers.c")
	require.NoError(t, os.WriteFile(path, out, 0o644))

	table := model.Table{Kind: model.HoldingRegister, Entries: []model.TableEntry{
		{Kind: model.HoldingRegister, Name: "speed"},
		{Kind: model.HoldingRegister, Name: "mode"},
	}}
	res, err := scanner.Resolve(path, table)
	require.NoError(t, err)

	assert.Empty(t, res.Warnings)
	assert.Equal(t, ctx.UserHeaderCode, res.UserHeaderCode)
	assert.Equal(t, ctx.CreateCode, res.CreateCode)
	assert.Equal(t, ctx.Functions, res.Functions)
}

func TestRenderScaffold(t *testing.T) {
	files, err := RenderScaffold(testProject(t, "PressureSensor"))
	require.NoError(t, err)

	byPath := map[string]string{}
	for _, f := range files {
		byPath[f.Path] = string(f.Data)
	}
	require.Len(t, byPath, 4)

	primary := byPath[filepath.Join("inc", "primary_table.h")]
	assert.Contains(t, primary, "#ifndef PRESSURE_SENSOR_PRIMARY_TABLE_H\n")
	assert.Contains(t, primary, "    PRIMARY_TABLE_DISCRETE_INPUTS = 0,\n"+
		"    PRIMARY_TABLE_COILS = 1,\n"+
		"    PRIMARY_TABLE_INPUT_REGISTERS = 2,\n"+
		"    PRIMARY_TABLE_HOLDING_REGISTERS = 3,\n"+
		"    N_PRIMARY_TABLES = 4\n")
	assert.Contains(t, primary, "#define YAMBUSC_VERSION_MAJOR 1\n")

	header := byPath[filepath.Join("inc", "pressure_sensor.h")]
	assert.Contains(t, header, "#include \"coils.h\"\n")
	assert.Contains(t, header, "void pressure_sensor_create(void);")
	assert.Contains(t, header, "This file is not regenerated.")

	source := byPath[filepath.Join("src", "pressure_sensor.c")]
	assert.Contains(t, source, "    coils_create(&tables[PRIMARY_TABLE_COILS]);\n")

	cmake := byPath["CMakeLists.txt"]
	assert.Contains(t, cmake, "project(pressure_sensor C)")
	assert.Contains(t, cmake, "    src/holding_registers.c\n)")
}
