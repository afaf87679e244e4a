package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchema matches any SchemaError with errors.Is
	ErrSchema = errors.New("schema error")
	// ErrSourceNotFound matches any SourceNotFoundError with errors.Is
	ErrSourceNotFound = errors.New("source not found")
)

// SchemaError reports required columns (or sheets) missing from a source.
// It is fatal to the run.
type SchemaError struct {
	Source  string
	Sheet   string
	Missing []string
}

func (e *SchemaError) Error() string {
	where := e.Source
	if e.Sheet != "" {
		where = fmt.Sprintf("%s (sheet %q)", e.Source, e.Sheet)
	}
	return fmt.Sprintf("schema error in %s: missing %s", where, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// SourceNotFoundError reports that no file matched the discovery patterns
type SourceNotFoundError struct {
	Kind     string
	Dir      string
	Patterns []string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("no %s file found in %s (patterns: %s)", e.Kind, e.Dir, strings.Join(e.Patterns, ", "))
}

func (e *SourceNotFoundError) Is(target error) bool { return target == ErrSourceNotFound }

// ParseWarning is a value that could not be coerced and was treated as null.
// It is collected, never returned.
type ParseWarning struct {
	Source string
	Row    int
	Field  string
	Value  string
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("%s row %d: could not parse %s %q", w.Source, w.Row, w.Field, w.Value)
}
