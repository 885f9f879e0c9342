// Command scan-sections prints the user code sections of generated files as
// JSON, for inspecting what a regeneration would carry over.
//
//	go run ./internal/codegen/cmd/scan-sections src/coils.c
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yambusc/yambusc/internal/codegen/scanner"
)

type section struct {
	Role       scanner.Role `json:"role"`
	Identifier string       `json:"identifier"`
	Code       string       `json:"code"`
	Error      string       `json:"error,omitempty"`
}

type file struct {
	Path     string    `json:"path"`
	Sections []section `json:"sections"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: scan-sections FILE...")
		os.Exit(2)
	}

	var files []file
	for _, path := range os.Args[1:] {
		f, err := scanner.ParseFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", path, err)
			os.Exit(1)
		}

		out := file{Path: path, Sections: []section{}}
		for _, ref := range f.Sections() {
			s := section{Role: ref.Role, Identifier: ref.Identifier}
			s.Code, err = f.Extract(ref.Role, ref.Identifier)
			if err != nil {
				s.Error = err.Error()
			}
			out.Sections = append(out.Sections, s)
		}
		files = append(files, out)
	}

	output, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(output))
}
