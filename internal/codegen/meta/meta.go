package meta

import "fmt"

// Function holds the render context of one register accessor pair: the
// entry it belongs to and the user code recovered for it from the previous
// generation. Built fresh on every run.
type Function struct {
	Name      string
	ReadOnly  bool
	ReadCode  string
	WriteCode string // always empty when ReadOnly

	// GPIO binding of a discrete input, rendered as a comment.
	Port string
	Pin  string
}

// TableContext is everything a table renderer needs for one primary table.
type TableContext struct {
	Table     string // e.g. "coils"; also the file stem of src/<table>.c
	ReadOnly  bool
	ValueType string // C type of one value

	Functions      []Function
	UserHeaderCode string
	CreateCode     string
}

// Warning is a non-fatal problem found while recovering user code. The
// affected section renders empty.
type Warning struct {
	Path    string // existing generated file
	Section string // e.g. "get_valve"
	Err     error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %v", w.Path, w.Section, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

// Report summarizes one workflow run.
type Report struct {
	Written  []string // files created or overwritten, relative to the project dir
	Skipped  []string // files left untouched because they already exist
	Warnings []Warning
}

func (r *Report) AddWarnings(ws ...Warning) {
	r.Warnings = append(r.Warnings, ws...)
}
