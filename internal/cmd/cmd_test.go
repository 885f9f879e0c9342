package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/yambusc/yambusc/internal/codegen/meta"
	"github.com/yambusc/yambusc/internal/codegen/scanner"
	"github.com/yambusc/yambusc/internal/model"
	ytesting "github.com/yambusc/yambusc/internal/testing"
)

func TestConfigInitFormats(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, data []byte)
	}{
		{
			format: "json",
			check: func(t *testing.T, data []byte) {
				var root map[string]any
				require.NoError(t, json.Unmarshal(data, &root))
				assert.Equal(t, "Device", root["name"])
				assert.Equal(t, ".", root["dir"])
				assert.Equal(t, "", root["author"], "interpolated defaults are left empty")
				assert.Equal(t, map[string]any{"level": "info", "file": ""}, root["log"])
			},
		},
		{
			format: "yaml",
			check: func(t *testing.T, data []byte) {
				var root map[string]any
				require.NoError(t, yaml.Unmarshal(data, &root))
				assert.Equal(t, "Device", root["name"])
				assert.Equal(t, map[string]any{"level": "info", "file": ""}, root["log"])
			},
		},
		{
			format: "toml",
			check: func(t *testing.T, data []byte) {
				assert.Contains(t, string(data), "[log]")
				assert.Contains(t, string(data), `level = "info"`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "nested", "yambusc."+tt.format)
			c := &ConfigInit{Format: tt.format, Output: dest}
			require.NoError(t, c.Run(ytesting.DiscardLogger()))

			data, err := os.ReadFile(dest)
			require.NoError(t, err)
			tt.check(t, data)
		})
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "yambusc.json")
	require.NoError(t, os.WriteFile(dest, []byte("{}"), 0o644))

	err := (&ConfigInit{Format: "json", Output: dest}).Run(ytesting.DiscardLogger())
	assert.ErrorIs(t, err, ErrConfigExists)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	require.NoError(t, (&ConfigInit{Format: "json", Output: dest, Force: true}).Run(ytesting.DiscardLogger()))
	data, err = os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Device"`)
}

func TestConfigInitUnsupportedFormat(t *testing.T) {
	err := (&ConfigInit{Format: "ini", Output: filepath.Join(t.TempDir(), "x.ini")}).Run(ytesting.DiscardLogger())
	assert.Error(t, err)
}

func TestDeviceAndModelCommands(t *testing.T) {
	g := &Globals{Name: "PressureSensor", Dir: t.TempDir(), Author: "jo"}

	require.NoError(t, (&DeviceNew{}).Run(ytesting.DiscardLogger(), g))
	_, err := os.Stat(filepath.Join(g.Dir, "src", "pressure_sensor.c"))
	require.NoError(t, err)

	dm, err := model.Load(filepath.Join(g.Dir, model.FileName), ytesting.DiscardLogger())
	require.NoError(t, err)
	assert.Equal(t, "PressureSensor", dm.Meta.DeviceName)
	assert.Equal(t, "jo", dm.Meta.Author)

	dm.Coils = []model.TableEntry{{Kind: model.Coil, Name: "valve"}}
	ytesting.WriteDeclaration(t, g.Dir, dm)

	require.NoError(t, (&Codegen{}).Run(ytesting.DiscardLogger(), g))
	assert.Contains(t, ytesting.ReadFile(t, g.Dir, filepath.Join("inc", "coils.h")), "#define COILS_VALVE 0")

	require.NoError(t, os.Remove(filepath.Join(g.Dir, "CMakeLists.txt")))
	require.NoError(t, (&DeviceUpdate{}).Run(ytesting.DiscardLogger(), g))
	_, err = os.Stat(filepath.Join(g.Dir, "CMakeLists.txt"))
	assert.NoError(t, err)
}

func TestModelCommandWithoutDeclaration(t *testing.T) {
	g := &Globals{Dir: t.TempDir()}
	err := (&Codegen{}).Run(ytesting.DiscardLogger(), g)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultAuthor(t *testing.T) {
	assert.NotEmpty(t, DefaultAuthor())
}

func TestConfigTemplate(t *testing.T) {
	root := configTemplate(reflect.TypeOf(Globals{}))
	assert.Equal(t, map[string]any{
		"name":   "Device",
		"dir":    ".",
		"author": "",
		"log":    map[string]any{"level": "info", "file": ""},
	}, root)
}

func TestLogReportLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logReport(logger, &meta.Report{Warnings: []meta.Warning{
		{Path: "src/coils.c", Section: "get_heater", Err: fmt.Errorf("%w: get_heater", scanner.ErrSectionAbsent)},
		{Path: "src/coils.c", Section: "get_valve", Err: scanner.ErrMalformedSection},
		{Path: "src/coils.c", Section: "get_old", Err: scanner.ErrOrphanedSection},
	}})

	levels := map[string]string{}
	var done string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.Contains(line, "msg=Done") {
			done = line
		}
		for _, section := range []string{"get_heater", "get_valve", "get_old"} {
			if strings.Contains(line, "section="+section) {
				levels[section] = strings.Fields(line)[1]
			}
		}
	}

	assert.Equal(t, "level=DEBUG", levels["get_heater"], "a new entry has no markers yet")
	assert.Equal(t, "level=WARN", levels["get_valve"])
	assert.Equal(t, "level=WARN", levels["get_old"])
	assert.Contains(t, done, "new_sections=1")
	assert.Contains(t, done, "warnings=2")
}
