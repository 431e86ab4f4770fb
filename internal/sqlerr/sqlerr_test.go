package sqlerr

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/deppfellow/pantry/internal/errs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlite3 "modernc.org/sqlite/lib"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "sqlerr.db")+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE inventory_list (
			item_name TEXT NOT NULL,
			expiry_date TEXT NOT NULL,
			PRIMARY KEY (item_name, expiry_date)
		);
		CREATE TABLE shopping_list (
			item_name TEXT NOT NULL PRIMARY KEY,
			purchased INTEGER NOT NULL DEFAULT 0 CHECK (purchased IN (0, 1))
		);`)
	require.NoError(t, err)

	return db
}

func TestConvertPrimaryKeyViolation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO inventory_list VALUES ('rice', '2025-01-01')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO inventory_list VALUES ('rice', '2025-01-01')`)
	require.Error(t, err)

	sqlErr := Convert(errors.Wrap(err, "insert inventory item"))
	require.NotNil(t, sqlErr)
	assert.Equal(t, UniqueViolation, sqlErr.Code)
	assert.Equal(t, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlErr.DatabaseCode)
	assert.Equal(t, "inventory_list", sqlErr.TableName)
	assert.Equal(t, []string{"item_name", "expiry_date"}, sqlErr.ColumnNames)
	assert.True(t, IsUniqueViolation(err))

	httpErr := &errs.HTTPError{}
	require.ErrorAs(t, HandleError(err), &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "INVENTORY_LIST_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A record with this Item Name and Expiry Date already exists in Inventory List", httpErr.Message)
}

func TestConvertNotNullAndCheckViolations(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO shopping_list (item_name) VALUES (NULL)`)
	require.Error(t, err)
	assert.Equal(t, NotNullViolation, ErrCode(err))

	httpErr := &errs.HTTPError{}
	require.ErrorAs(t, HandleError(err), &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, []errs.FieldError{{Field: "item_name", Error: "is required"}}, httpErr.Errors)

	_, err = db.Exec(`INSERT INTO shopping_list (item_name, purchased) VALUES ('milk', 2)`)
	require.Error(t, err)
	assert.Equal(t, CheckViolation, ErrCode(err))

	// CHECK failures name the expression, not table.column.
	assert.Empty(t, Convert(err).TableName)

	require.ErrorAs(t, HandleError(err), &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "RECORD_INVALID", httpErr.Code)
}

func TestParseConstraintTarget(t *testing.T) {
	table, columns := parseConstraintTarget("constraint failed: UNIQUE constraint failed: inventory_list.item_name, inventory_list.expiry_date (1555)")
	assert.Equal(t, "inventory_list", table)
	assert.Equal(t, []string{"item_name", "expiry_date"}, columns)

	table, columns = parseConstraintTarget("constraint failed: CHECK constraint failed: purchased IN (0, 1) (275)")
	assert.Empty(t, table)
	assert.Nil(t, columns)
}

func TestHandleErrorFallbacks(t *testing.T) {
	conflict := errs.NewConflictError("'rice' already exists.", true, nil)
	assert.Same(t, conflict, HandleError(conflict))

	httpErr := &errs.HTTPError{}
	require.ErrorAs(t, HandleError(fmt.Errorf("get item: %w", sql.ErrNoRows)), &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)

	require.ErrorAs(t, HandleError(errors.New("disk on fire")), &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "Internal Server Error", httpErr.Message)

	assert.Nil(t, Convert(errors.New("plain")))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode(sqlite3.SQLITE_CONSTRAINT_UNIQUE))
	assert.Equal(t, ForeignKeyViolation, MapCode(sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY))
	assert.Equal(t, Busy, MapCode(sqlite3.SQLITE_BUSY_SNAPSHOT))
	assert.Equal(t, Other, MapCode(sqlite3.SQLITE_IOERR))
}
