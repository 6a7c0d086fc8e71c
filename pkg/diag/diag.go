// Package diag defines the single diagnostic shape shared by every phase of
// the Rono pipeline: lex, parse, resolve, and runtime.
package diag

import "fmt"

// Phase names one of the four pipeline stages that can fail.
type Phase string

const (
	Lex     Phase = "lex"
	Parse   Phase = "parse"
	Resolve Phase = "resolve"
	Runtime Phase = "runtime"
)

// Error is the diagnostic shape printed by cmd/rono and returned internally
// by every pipeline stage. It formats as:
//
//	<phase> error at <file>:<line>:<col>: <message>
type Error struct {
	Phase   Phase
	File    string
	Line    int
	Col     int
	Message string
}

func (e *Error) Error() string {
	file := e.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s error at %s:%d:%d: %s", e.Phase, file, e.Line, e.Col, e.Message)
}

// New builds a diagnostic for the given phase and position.
func New(phase Phase, file string, line, col int, format string, args ...any) *Error {
	return &Error{
		Phase:   phase,
		File:    file,
		Line:    line,
		Col:     col,
		Message: fmt.Sprintf(format, args...),
	}
}
