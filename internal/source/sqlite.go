package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// loadSQLite reads every row of table as a Record keyed by column name.
// The database must already exist; it is never created or written.
func loadSQLite(ctx context.Context, path, table string) ([]Record, error) {
	if table == "" {
		return nil, fmt.Errorf("sqlite source %s: table is required", path)
	}
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("sqlite source %s: invalid table name %q", path, table)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// table is validated above; identifiers cannot be bound as parameters
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s" ORDER BY rowid`, table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}

	var records []Record
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}

		r := make(Record, len(cols))
		for i, col := range cols {
			r[col] = sqlToValue(values[i])
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// sqlToValue maps driver values to the types the other loaders produce.
func sqlToValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
