// Package testing holds fixtures shared by the package tests that work on a
// project directory.
package testing

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yambusc/yambusc/internal/codegen/scanner"
	"github.com/yambusc/yambusc/internal/model"
)

func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WriteDeclaration stores dm as the data_structure.yaml of dir.
func WriteDeclaration(t *testing.T, dir string, dm *model.DataModel) {
	t.Helper()
	data, err := model.Encode(dm)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, model.FileName), data, 0o644))
}

func ReadFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, rel))
	require.NoError(t, err)
	return string(data)
}

// FillSection replaces the empty body of a section in a generated file, the
// way a user would by editing between the markers.
func FillSection(t *testing.T, dir, rel string, role scanner.Role, id, code string) {
	t.Helper()
	content := ReadFile(t, dir, rel)
	empty := scanner.FormatSection(role, id, "")
	require.Equal(t, 1, strings.Count(content, empty), "section %s_%s must be empty before filling", role, id)
	content = strings.Replace(content, empty, scanner.FormatSection(role, id, code), 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, rel), []byte(content), 0o644))
}
