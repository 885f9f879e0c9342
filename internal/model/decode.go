package model

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the declaration file at the root of every project.
const FileName = "data_structure.yaml"

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	deviceNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// reservedNames are the identifiers of the table level code sections. An
// entry with one of these names would share its markers with them.
var reservedNames = map[string]bool{
	"user":   true,
	"create": true,
}

// EntryFromMap builds an entry of the given kind from one decoded table row.
// Only the fields the kind declares are read; every other key is dropped and
// returned so the caller can report it.
func EntryFromMap(kind EntryKind, m map[string]any) (TableEntry, []string, error) {
	entry := TableEntry{Kind: kind}
	var ignored []string
	hasName := false

	for key, v := range m {
		switch {
		case key == "name":
			s, ok := v.(string)
			if !ok {
				return TableEntry{}, nil, fmt.Errorf("%w: %s: field \"name\" must be a string, got %T", ErrMalformedInput, kind, v)
			}
			entry.Name = s
			hasName = s != ""
		case kind == DiscreteInput && key == "port":
			entry.Port = scalarString(v)
		case kind == DiscreteInput && key == "pin":
			entry.Pin = scalarString(v)
		default:
			ignored = append(ignored, key)
		}
	}
	sort.Strings(ignored)

	if !hasName {
		return TableEntry{}, nil, fmt.Errorf("%w: %s: %w \"name\"", ErrMalformedInput, kind, ErrMissingField)
	}
	if !identifierPattern.MatchString(entry.Name) {
		return TableEntry{}, nil, fmt.Errorf("%w: %s: name %q is not a valid C identifier", ErrMalformedInput, kind, entry.Name)
	}
	if reservedNames[entry.Name] {
		return TableEntry{}, nil, fmt.Errorf("%w: %s: name %q is reserved", ErrMalformedInput, kind, entry.Name)
	}
	return entry, ignored, nil
}

// MetaFromMap builds Meta from the decoded meta mapping. The year is always
// derived from the date; a "year" key in the document is accepted and ignored.
func MetaFromMap(m map[string]any) (Meta, []string, error) {
	var meta Meta
	var ignored []string
	seen := map[string]bool{}

	for key, v := range m {
		var dst *string
		switch key {
		case "device_name":
			dst = &meta.DeviceName
		case "author":
			dst = &meta.Author
		case "date":
			dst = &meta.Date
		case "year":
			continue
		default:
			ignored = append(ignored, key)
			continue
		}
		s, ok := v.(string)
		if !ok {
			return Meta{}, nil, fmt.Errorf("%w: meta: field %q must be a string, got %T", ErrMalformedInput, key, v)
		}
		*dst = s
		seen[key] = true
	}
	sort.Strings(ignored)

	for _, field := range []string{"device_name", "author", "date"} {
		if !seen[field] {
			return Meta{}, nil, fmt.Errorf("%w: meta: %w %q", ErrMalformedInput, ErrMissingField, field)
		}
	}

	year, err := yearFromDate(meta.Date)
	if err != nil {
		return Meta{}, nil, fmt.Errorf("%w: meta: %w", ErrMalformedInput, err)
	}
	meta.Year = year
	return meta, ignored, nil
}

// Decode validates a decoded declaration document and builds the data model.
func Decode(doc any, logger *slog.Logger) (*DataModel, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(doc); err != nil {
		return nil, err
	}

	root, ok := jsonValue(doc).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document must be a mapping", ErrMalformedInput)
	}

	metaMap, ok := root["meta"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: meta: %w \"meta\"", ErrMalformedInput, ErrMissingField)
	}
	meta, ignored, err := MetaFromMap(metaMap)
	if err != nil {
		return nil, err
	}
	for _, key := range ignored {
		logger.Debug("Ignoring unknown meta field", "field", key)
	}

	dm := &DataModel{Meta: meta}
	for _, kind := range Kinds {
		entries, err := decodeTable(kind, root[kind.Key()], logger)
		if err != nil {
			return nil, err
		}
		*dm.entries(kind) = entries
	}
	return dm, nil
}

func decodeTable(kind EntryKind, raw any, logger *slog.Logger) ([]TableEntry, error) {
	if raw == nil {
		return nil, nil
	}
	rows, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a sequence, got %T", ErrMalformedInput, kind.Key(), raw)
	}

	entries := make([]TableEntry, 0, len(rows))
	// Keyed by the upper case name, which the index macros are built from.
	seen := make(map[string]int, len(rows))
	for i, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be a mapping, got %T", ErrMalformedInput, kind.Key(), i, row)
		}
		entry, ignored, err := EntryFromMap(kind, m)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", kind.Key(), i, err)
		}
		macro := strings.ToUpper(entry.Name)
		if first, dup := seen[macro]; dup {
			return nil, fmt.Errorf("%w: %s: %q at index %d clashes with index %d", ErrDuplicateEntryName, kind.Key(), entry.Name, i, first)
		}
		seen[macro] = i
		for _, key := range ignored {
			logger.Debug("Ignoring unknown entry field", "table", kind.Key(), "entry", entry.Name, "field", key)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Load reads and decodes a declaration file.
func Load(path string, logger *slog.Logger) (*DataModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data model: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrMalformedInput, path, err)
	}

	dm, err := Decode(doc, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("Loaded data model", "file", path,
		"discrete_inputs", len(dm.DiscreteInputs),
		"coils", len(dm.Coils),
		"input_registers", len(dm.InputRegisters),
		"holding_registers", len(dm.HoldingRegisters))
	return dm, nil
}

type document struct {
	Meta             metaDocument    `yaml:"meta"`
	DiscreteInputs   []entryDocument `yaml:"discrete_inputs"`
	Coils            []entryDocument `yaml:"coils"`
	InputRegisters   []entryDocument `yaml:"input_registers"`
	HoldingRegisters []entryDocument `yaml:"holding_registers"`
}

type metaDocument struct {
	DeviceName string `yaml:"device_name"`
	Author     string `yaml:"author"`
	Date       string `yaml:"date"`
}

type entryDocument struct {
	Name string `yaml:"name"`
	Port string `yaml:"port,omitempty"`
	Pin  string `yaml:"pin,omitempty"`
}

// Encode renders a data model as a declaration file.
func Encode(dm *DataModel) ([]byte, error) {
	doc := document{
		Meta: metaDocument{
			DeviceName: dm.Meta.DeviceName,
			Author:     dm.Meta.Author,
			Date:       dm.Meta.Date,
		},
		DiscreteInputs:   entryDocuments(dm.DiscreteInputs),
		Coils:            entryDocuments(dm.Coils),
		InputRegisters:   entryDocuments(dm.InputRegisters),
		HoldingRegisters: entryDocuments(dm.HoldingRegisters),
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal data model: %w", err)
	}
	return data, nil
}

func entryDocuments(entries []TableEntry) []entryDocument {
	out := make([]entryDocument, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryDocument{Name: e.Name, Port: e.Port, Pin: e.Pin})
	}
	return out
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
