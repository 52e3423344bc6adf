// Package deckerr defines the error taxonomy shared by the stages of the
// deck parser, from the include preprocessor to the keyword grammar; the
// cursor reports out-of-range as a return value instead.
package deckerr

import "fmt"

// Kind identifies which stage raised an error and under what condition, as
// laid out in the error taxonomy table.
type Kind int

const (
	// IOError reports a file open/map failure; Path names the offending file.
	IOError Kind = iota
	// MalformedDirective reports a syntactically invalid INCLUDE or PATHS block.
	MalformedDirective
	// UnknownAlias reports a $name with no matching alias-table entry.
	UnknownAlias
	// UnknownKeyword reports a keyword absent from the registry, or used
	// outside the section that declares it.
	UnknownKeyword
	// TypeMismatch reports a value whose kind is disallowed by the current
	// keyword's shape class.
	TypeMismatch
	// RecordCountMismatch reports a keyword that did not parse its declared
	// number of records before end-of-input or the next keyword.
	RecordCountMismatch
	// DuplicateKeywordArity reports the same keyword name declared twice
	// with incompatible shape classes.
	DuplicateKeywordArity
)

var kindNames = map[Kind]string{
	IOError:               "IOError",
	MalformedDirective:    "MalformedDirective",
	UnknownAlias:          "UnknownAlias",
	UnknownKeyword:        "UnknownKeyword",
	TypeMismatch:          "TypeMismatch",
	RecordCountMismatch:   "RecordCountMismatch",
	DuplicateKeywordArity: "DuplicateKeywordArity",
}

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Error is the concrete error type raised by every package in this module
// except cursor, whose OutOfRange is a return value rather than an error
// (it is a defined terminal signal, not an exceptional one).
type Error struct {
	Kind Kind
	Msg  string
	Path string // set for IOError and MalformedDirective, when known
	Line int    // 1-based, 0 when unknown
	Col  int    // 1-based, 0 when unknown
	Err  error  // wrapped cause, e.g. the os.PathError behind an IOError
}

func (e *Error) Error() string {
	loc := ""
	if e.Path != "" {
		loc = e.Path
		if e.Line > 0 {
			loc = fmt.Sprintf("%s:%d:%d", loc, e.Line, e.Col)
		}
		loc += ": "
	}
	if e.Err != nil {
		return fmt.Sprintf("%s%s: %s: %v", loc, e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s%s: %s", loc, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with no path/position context.
func New(kind Kind, msg string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...)}
}

// WithPath attaches a file path to the error.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithPos attaches a line/column to the error.
func (e *Error) WithPos(line, col int) *Error {
	e.Line = line
	e.Col = col
	return e
}

// Wrap builds an Error that wraps an underlying cause, e.g. an os.PathError.
func Wrap(kind Kind, cause error, msg string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...), Err: cause}
}
