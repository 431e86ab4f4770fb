// Package sqlerr specifically handles database driver errors.
//
// It parses the extended result codes and messages of the SQLite driver
// and converts them into structured errors, and finally into the HTTP
// errors of package errs (e.g. a primary key violation becomes a 409).
package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Code is the driver-independent category of a database error.
type Code string

const (
	Other               Code = "other"
	UniqueViolation     Code = "unique_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	Busy                Code = "busy"
)

// Error is a classified database error.
type Error struct {
	Code Code

	// DatabaseCode is the SQLite extended result code, e.g. 1555.
	DatabaseCode int
	Message      string

	// TableName and ColumnNames are parsed from constraint messages such as
	// "UNIQUE constraint failed: inventory_list.item_name, inventory_list.expiry_date".
	TableName   string
	ColumnNames []string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLite extended result code to a Code.
func MapCode(code int) Code {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return UniqueViolation
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return NotNullViolation
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return CheckViolation
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ForeignKeyViolation
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return Busy
	}

	// Primary result code lives in the low byte.
	switch code & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return Busy
	}
	return Other
}

var constraintColumnsRe = regexp.MustCompile(`constraint failed: (\w+\.\w+(?:, \w+\.\w+)*)`)

// parseConstraintTarget extracts "table" and its columns from a constraint message.
func parseConstraintTarget(message string) (string, []string) {
	matches := constraintColumnsRe.FindStringSubmatch(message)
	if len(matches) < 2 {
		return "", nil
	}

	var table string
	var columns []string
	for _, qualified := range strings.Split(matches[1], ", ") {
		parts := strings.SplitN(qualified, ".", 2)
		if len(parts) != 2 {
			continue
		}
		table = parts[0]
		columns = append(columns, parts[1])
	}
	return table, columns
}

// ConvertSQLiteError converts a raw driver error into Error.
func ConvertSQLiteError(src *sqlite.Error) *Error {
	message := src.Error()
	table, columns := parseConstraintTarget(message)

	return &Error{
		Code:         MapCode(src.Code()),
		DatabaseCode: src.Code(),
		Message:      message,
		TableName:    table,
		ColumnNames:  columns,
		driverErr:    src,
	}
}

// Convert returns the classified form of err, or nil when err does not
// come from the database driver.
func Convert(err error) *Error {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr
	}

	var driverErr *sqlite.Error
	if errors.As(err, &driverErr) {
		return ConvertSQLiteError(driverErr)
	}
	return nil
}

// ErrCode reports the Code for err, Other for non-database errors.
func ErrCode(err error) Code {
	if sqlErr := Convert(err); sqlErr != nil {
		return sqlErr.Code
	}
	return Other
}

// IsUniqueViolation reports whether err is a primary key or unique constraint violation.
func IsUniqueViolation(err error) bool {
	return ErrCode(err) == UniqueViolation
}
