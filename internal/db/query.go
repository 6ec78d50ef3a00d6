package db

import (
	"context"
	"database/sql"
	"math"
	"time"

	"alumni-office/internal/metrics"
)

// Result is a fully read result set: column names plus positional rows.
type Result struct {
	Columns []string
	Rows    [][]any
}

func (r Result) Empty() bool {
	return len(r.Rows) == 0
}

// Records zips every row against the column names.
func (r Result) Records() []map[string]any {
	out := make([]map[string]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		rec := make(map[string]any, len(r.Columns))
		for i, col := range r.Columns {
			rec[col] = row[i]
		}
		out = append(out, rec)
	}
	return out
}

// FetchAll runs stmt on its own connection and reads every row. The
// connection and the cursor are released before it returns, whatever the outcome.
func (d *Database) FetchAll(ctx context.Context, resource, stmt string) (res Result, err error) {
	start := time.Now()
	defer func() { metrics.RecordQuery("select", resource, time.Since(start), err) }()

	conn, err := d.Acquire(ctx)
	if err != nil {
		return Result{}, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, stmt)
	if err != nil {
		return Result{}, err
	}
	defer rows.Close()

	return collectRows(rows)
}

func collectRows(rows *sql.Rows) (Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return Result{}, err
	}

	res := Result{Columns: cols, Rows: make([][]any, 0)}
	for rows.Next() {
		values := make([]any, len(cols))
		scanArgs := make([]any, len(cols))
		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return Result{}, err
		}

		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return Result{}, err
	}

	return res, nil
}

// Insert executes one parameterized insert inside its own transaction.
func (d *Database) Insert(ctx context.Context, table string, columns []string, values []any) (err error) {
	start := time.Now()
	defer func() { metrics.RecordQuery("insert", table, time.Since(start), err) }()

	conn, err := d.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	args := make([]any, len(values))
	for i, v := range values {
		args[i] = normalizeParamValue(v)
	}

	if _, err := tx.ExecContext(ctx, d.Dialect.InsertStatement(table, columns), args...); err != nil {
		return err
	}

	return tx.Commit()
}

// JSON numbers arrive as float64; whole numbers bind as integers.
func normalizeParamValue(v any) any {
	switch t := v.(type) {
	case float64:
		if math.Trunc(t) == t && math.Abs(t) < 1<<53 {
			return int64(t)
		}
		return t
	default:
		return v
	}
}
