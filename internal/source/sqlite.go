package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// LoadSQLite runs query against the database at dsn and returns the result
// set as a table. NULL cells become empty strings.
func LoadSQLite(ctx context.Context, dsn, query string) (*Table, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	scanVals := make([]sql.NullString, len(columns))
	scanPtrs := make([]any, len(columns))
	for i := range scanVals {
		scanPtrs[i] = &scanVals[i]
	}

	var data [][]string
	for rows.Next() {
		if err := rows.Scan(scanPtrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(data)+1, err)
		}
		row := make([]string, len(columns))
		for i, v := range scanVals {
			if v.Valid {
				row[i] = v.String
			}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	t := NewTable(columns, data)
	t.Name = dsn
	return t, nil
}
