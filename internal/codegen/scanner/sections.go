package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

// Role selects which accessor of an entry a section belongs to.
type Role string

const (
	RoleRead  Role = "get"
	RoleWrite Role = "set"
)

// Identifiers of the table level sections. Entry names may not use them.
const (
	UserSection   = "user"
	CreateSection = "create"
)

// A section is laid out as
//
//	/*
//	 * start get_<id> code
//	 */
//	<user code>
//	/*
//	 * end get_<id> code
//	 */
//
// The user code starts openingSkip lines after the start marker and ends
// closingSkip lines before the end marker.
const (
	openingSkip = 2
	closingSkip = 1

	commentOpen  = "/*"
	commentClose = "*/"
)

var (
	// ErrNoFile means the generated file does not exist yet, so there is no
	// user code to preserve. It is not a warning condition.
	ErrNoFile = errors.New("no existing file")

	// ErrSectionNotFound means a start or end marker is missing.
	ErrSectionNotFound = errors.New("section not found")

	// ErrSectionAbsent means neither marker of a section is in the file, as
	// for an entry added since the last generation. It wraps
	// ErrSectionNotFound.
	ErrSectionAbsent = fmt.Errorf("%w: no markers", ErrSectionNotFound)

	// ErrMalformedSection means the markers of a section are duplicated, out
	// of order, or not surrounded by the comment lines of the convention.
	ErrMalformedSection = errors.New("malformed section")

	// ErrOrphanedSection marks user code in an existing file that no entry of
	// the current data model will carry over.
	ErrOrphanedSection = errors.New("orphaned section")
)

var startMarkerPattern = regexp.MustCompile(`^ \* start (get|set)_([A-Za-z_][A-Za-z0-9_]*) code$`)

// StartMarker returns the marker line opening a section, without line terminator.
func StartMarker(role Role, id string) string {
	return fmt.Sprintf(" * start %s_%s code", role, id)
}

// EndMarker returns the marker line closing a section, without line terminator.
func EndMarker(role Role, id string) string {
	return fmt.Sprintf(" * end %s_%s code", role, id)
}

// SectionName is the "<role>_<id>" part shared by both markers.
func SectionName(role Role, id string) string {
	return string(role) + "_" + id
}

// FormatSection lays out code between the markers of a section, ready to be
// embedded in a generated file. Extract on the result returns code unchanged,
// apart from a line terminator added when code does not end with one.
func FormatSection(role Role, id, code string) string {
	if code != "" && !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	return commentOpen + "\n" +
		StartMarker(role, id) + "\n" +
		" " + commentClose + "\n" +
		code +
		commentOpen + "\n" +
		EndMarker(role, id) + "\n" +
		" " + commentClose
}

// CodeSection addresses user code in an existing file.
type CodeSection struct {
	Path       string
	Identifier string
	Role       Role
}

// SectionRef is a section found in a file.
type SectionRef struct {
	Role       Role
	Identifier string
}

// File is an existing generated file split into lines. Line terminators are
// kept so extracted code is byte-identical to the file content.
type File struct {
	Path  string
	lines []string
}

// ParseFile reads path. It returns ErrNoFile if the file does not exist.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrNoFile)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &File{Path: path, lines: splitLines(string(data))}, nil
}

// Extract reads the section's file and returns the code of the section.
func Extract(s CodeSection) (string, error) {
	f, err := ParseFile(s.Path)
	if err != nil {
		return "", err
	}
	return f.Extract(s.Role, s.Identifier)
}

// Extract returns the code between the markers of one section.
func (f *File) Extract(role Role, id string) (string, error) {
	start, startErr := f.find(StartMarker(role, id))
	end, endErr := f.find(EndMarker(role, id))
	if errors.Is(startErr, ErrSectionNotFound) && errors.Is(endErr, ErrSectionNotFound) {
		return "", fmt.Errorf("%w: %s", ErrSectionAbsent, SectionName(role, id))
	}
	if startErr != nil {
		return "", startErr
	}
	if endErr != nil {
		return "", endErr
	}
	if end < start {
		return "", fmt.Errorf("%w: %s ends on line %d before it starts on line %d",
			ErrMalformedSection, SectionName(role, id), end+1, start+1)
	}

	from, to := start+openingSkip, end-closingSkip
	if from > to {
		return "", fmt.Errorf("%w: %s has no room for code between lines %d and %d",
			ErrMalformedSection, SectionName(role, id), start+1, end+1)
	}
	if strings.TrimSpace(f.lines[start+1]) != commentClose {
		return "", fmt.Errorf("%w: %s: expected %q on line %d",
			ErrMalformedSection, SectionName(role, id), commentClose, start+2)
	}
	if strings.TrimSpace(f.lines[end-1]) != commentOpen {
		return "", fmt.Errorf("%w: %s: expected %q on line %d",
			ErrMalformedSection, SectionName(role, id), commentOpen, end)
	}

	return strings.Join(f.lines[from:to], ""), nil
}

// Sections lists the sections opened in the file, top to bottom.
func (f *File) Sections() []SectionRef {
	var refs []SectionRef
	for _, line := range f.lines {
		m := startMarkerPattern.FindStringSubmatch(trimEOL(line))
		if m == nil {
			continue
		}
		refs = append(refs, SectionRef{Role: Role(m[1]), Identifier: m[2]})
	}
	return refs
}

// find returns the index of the only line equal to marker.
func (f *File) find(marker string) (int, error) {
	idx := -1
	for i, line := range f.lines {
		if trimEOL(line) != marker {
			continue
		}
		if idx >= 0 {
			return -1, fmt.Errorf("%w: %q appears on lines %d and %d", ErrMalformedSection, marker, idx+1, i+1)
		}
		idx = i
	}
	if idx < 0 {
		return -1, fmt.Errorf("%w: %q", ErrSectionNotFound, strings.TrimSpace(marker))
	}
	return idx, nil
}

func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func trimEOL(line string) string {
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
}
