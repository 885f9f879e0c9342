// Package model holds the typed representation of a device's register map as
// declared in data_structure.yaml.
//
// Values are built once from the decoded document and never mutated
// afterwards; every generation run re-reads the declaration file.
package model

import (
	"fmt"
	"time"
)

// DateLayout is the format of Meta.Date (MM-DD-YYYY).
const DateLayout = "01-02-2006"

// Meta describes the device a project was scaffolded for.
type Meta struct {
	DeviceName string
	Author     string
	Date       string
	Year       int
}

// NewMeta builds the metadata for a freshly scaffolded device.
func NewMeta(deviceName, author string, now time.Time) Meta {
	return Meta{
		DeviceName: deviceName,
		Author:     author,
		Date:       now.Format(DateLayout),
		Year:       now.Year(),
	}
}

// Validate checks a Meta built outside the declaration file, e.g. from
// command line flags.
func (m Meta) Validate() error {
	if !deviceNamePattern.MatchString(m.DeviceName) {
		return fmt.Errorf("%w: device name %q must start with a letter and contain only letters, digits and underscores",
			ErrMalformedInput, m.DeviceName)
	}
	if _, err := yearFromDate(m.Date); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return nil
}

// yearFromDate derives Meta.Year from a Meta.Date string.
func yearFromDate(date string) (int, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("date %q is not in MM-DD-YYYY format: %w", date, err)
	}
	return t.Year(), nil
}

// TableEntry is a single named entry of a register table.
type TableEntry struct {
	Kind EntryKind
	Name string

	// Port and Pin optionally bind a discrete input to a GPIO line. Only
	// discrete inputs accept them.
	Port string
	Pin  string
}

// ReadOnly is fixed by the entry kind.
func (e TableEntry) ReadOnly() bool {
	return e.Kind.ReadOnly()
}

// Table is one register table with its entries in declaration order.
type Table struct {
	Kind    EntryKind
	Entries []TableEntry
}

// Name returns the table key, e.g. "holding_registers".
func (t Table) Name() string {
	return t.Kind.Key()
}

// Names returns the entry names in order.
func (t Table) Names() []string {
	names := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		names[i] = e.Name
	}
	return names
}

// DataModel is the full register map of a device.
type DataModel struct {
	Meta             Meta
	DiscreteInputs   []TableEntry
	Coils            []TableEntry
	InputRegisters   []TableEntry
	HoldingRegisters []TableEntry
}

// Tables returns the four tables in generation order: discrete inputs, coils,
// input registers, holding registers.
func (m *DataModel) Tables() []Table {
	return []Table{
		{Kind: DiscreteInput, Entries: m.DiscreteInputs},
		{Kind: Coil, Entries: m.Coils},
		{Kind: InputRegister, Entries: m.InputRegisters},
		{Kind: HoldingRegister, Entries: m.HoldingRegisters},
	}
}

// Table returns the table of the given kind.
func (m *DataModel) Table(kind EntryKind) Table {
	return m.Tables()[kind.Index()]
}

func (m *DataModel) entries(kind EntryKind) *[]TableEntry {
	switch kind {
	case DiscreteInput:
		return &m.DiscreteInputs
	case Coil:
		return &m.Coils
	case InputRegister:
		return &m.InputRegisters
	default:
		return &m.HoldingRegisters
	}
}
