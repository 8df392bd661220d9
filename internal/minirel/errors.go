package minirel

import (
	"fmt"
)

// Every statement either succeeds fully or fails with exactly one of the
// typed errors below. The engine never logs or prints; callers decide how
// errors are rendered.

type UnknownTableError struct {
	Table string
}

func (e UnknownTableError) Error() string {
	return fmt.Sprintf("unknown table %q", e.Table)
}

type UnknownColumnError struct {
	Table  string
	Column string
}

func (e UnknownColumnError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("unknown column %q", e.Column)
	}
	return fmt.Sprintf("unknown column %q on table %q", e.Column, e.Table)
}

type SchemaMismatchError struct {
	Table  string
	Detail string
}

func (e SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch on table %q: %s", e.Table, e.Detail)
}

type TypeMismatchError struct {
	Detail string
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %s", e.Detail)
}

type ConstraintViolationError struct {
	Table  string
	Column string
	Value  Value
}

func (e ConstraintViolationError) Error() string {
	return fmt.Sprintf("unique constraint violation on table %q: column %q already contains value '%s'", e.Table, e.Column, e.Value)
}

type InvalidLimitError struct {
	Value int64
}

func (e InvalidLimitError) Error() string {
	return fmt.Sprintf("invalid limit %d", e.Value)
}

var (
	errUnrecognizedStatementType = fmt.Errorf("unrecognised statement type")
	errTableAlreadyExists        = fmt.Errorf("table already exists")
)
