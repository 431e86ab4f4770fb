package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/pantry/internal/errs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// generateErrorCode creates application error codes of the form <DOMAIN>_<ACTION>,
// e.g. shopping_list + UniqueViolation => SHOPPING_LIST_ALREADY_EXISTS.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces an end-user-facing error message.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName)
	fields := humanizeColumns(sqlErr.ColumnNames)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		if fields == "" {
			fields = "identifier"
		}
		return fmt.Sprintf("A record with this %s already exists in %s", fields, entityName)

	case NotNullViolation:
		if fields == "" {
			fields = "field"
		}
		return fmt.Sprintf("The %s is required", fields)

	case CheckViolation:
		if fields != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fields)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

func getEntityName(tableName string) string {
	if tableName == "" {
		return "record"
	}
	return humanizeText(tableName)
}

// humanizeText converts snake_case into Title Case: "item_name" -> "Item Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

func humanizeColumns(columns []string) string {
	names := make([]string, 0, len(columns))
	for _, column := range columns {
		names = append(names, humanizeText(column))
	}
	return strings.Join(names, " and ")
}

// HandleError converts a low-level database error into an application-level error.
//
//   - *errs.HTTPError: returned unchanged
//   - SQLite constraint errors: 409 for unique/primary key, 400 for the rest
//   - sql.ErrNoRows: 404
//   - anything else: 500
//
// Services classify the errors they expect themselves; this is the fallback
// used by the global error handler.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if sqlErr := Convert(err); sqlErr != nil {
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case UniqueViolation:
			return errs.NewConflictError(userMessage, true, &errorCode)

		case NotNullViolation:
			fieldErrors := make([]errs.FieldError, 0, len(sqlErr.ColumnNames))
			for _, column := range sqlErr.ColumnNames {
				fieldErrors = append(fieldErrors, errs.FieldError{
					Field: strings.ToLower(column),
					Error: "is required",
				})
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		case ForeignKeyViolation, CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
