package common

import (
	"fmt"
	"strings"

	"github.com/yambusc/yambusc/internal/model"
)

// Ownership tells the reader of a generated file what they may edit.
type Ownership int

const (
	// Regenerated files are overwritten on every run except for their marked
	// user code sections.
	Regenerated Ownership = iota
	// Scaffolded files are written once and belong to the user afterwards.
	Scaffolded
)

const fileHeaderTemplate = `/*
 * %s
 *
 * Device:  %s
 * Author:  %s
 * Created: %s
 *
 * Copyright (c) %d %s
 *
%s */
`

// FileHeader returns the comment block opening every generated C file.
func FileHeader(m model.Meta, v VersionInfo, title string, own Ownership) string {
	var note string
	switch own {
	case Regenerated:
		note = fmt.Sprintf(" * Generated by yambusc %s. Changes outside the marked user code\n"+
			" * sections are overwritten on the next regeneration.\n", v)
	default:
		note = fmt.Sprintf(" * Scaffolded by yambusc %s. This file is not regenerated.\n", v)
	}

	return fmt.Sprintf(fileHeaderTemplate,
		commentSafe(title),
		commentSafe(m.DeviceName),
		commentSafe(m.Author),
		commentSafe(m.Date),
		m.Year,
		commentSafe(m.Author),
		note)
}

// commentSafe keeps free text from closing the surrounding block comment or
// spanning lines.
func commentSafe(s string) string {
	s = strings.ReplaceAll(s, "*/", "* /")
	return strings.Join(strings.Fields(s), " ")
}
