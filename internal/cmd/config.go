package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"unicode"

	"github.com/yambusc/yambusc/internal/codegen/common"
	"github.com/yambusc/yambusc/internal/configpaths"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file holding the defaults of the
// global flags.
type ConfigInit struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output string `help:"Destination file path (defaults to yambusc.<format> in the current directory)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

// ErrConfigExists is returned by config init when the destination exists and
// --force was not given.
var ErrConfigExists = errors.New("destination exists; use --force to overwrite")

// Run writes the defaults of the global flags, read from their kong tags.
func (c *ConfigInit) Run(logger *slog.Logger) error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	root := configTemplate(reflect.TypeOf(Globals{}))

	dest := c.Output
	if dest == "" {
		dest = configpaths.BaseName + "." + format
	}

	if !c.Force {
		exists, err := common.Exists(dest)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%s: %w", dest, ErrConfigExists)
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(root, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(root)
	case "toml":
		data, err = toml.Marshal(root)
	}
	if err != nil {
		return fmt.Errorf("marshal %s config: %w", format, err)
	}
	if err := common.WriteFile(dest, data); err != nil {
		return err
	}
	logger.Info("Wrote configuration template", "file", dest, "format", format)
	return nil
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// configTemplate maps the flags of t to their defaults, keyed the way kong's
// configuration resolvers look them up. Embedded groups with a prefix become
// nested tables, e.g. log.level -> {"log": {"level": ...}}.
func configTemplate(t reflect.Type) map[string]any {
	out := map[string]any{}
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || len(f.Index) > 1 {
			continue
		}
		switch f.Type.Kind() {
		case reflect.Struct:
			sub := configTemplate(f.Type)
			if prefix := strings.TrimSuffix(f.Tag.Get("prefix"), "."); prefix != "" {
				out[prefix] = sub
				continue
			}
			for k, v := range sub {
				out[k] = v
			}
		case reflect.String:
			def := f.Tag.Get("default")
			if strings.Contains(def, "${") {
				// Interpolated at parse time, e.g. the current user.
				def = ""
			}
			out[flagKey(f.Name)] = def
		}
	}
	return out
}

func flagKey(field string) string {
	r := []rune(field)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
