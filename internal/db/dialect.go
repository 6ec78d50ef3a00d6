package db

import (
	"alumni-office/internal/config"
	"fmt"
	"strconv"
	"strings"
)

// Dialect knows how a backend spells positional bind parameters.
type Dialect string

const (
	DialectOracle   Dialect = "oracle"
	DialectMSSQL    Dialect = "mssql"
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

func DialectFor(driver config.DBDriver) (Dialect, error) {
	switch driver {
	case config.DBDriverOracle:
		return DialectOracle, nil
	case config.DBDriverMSSQL:
		return DialectMSSQL, nil
	case config.DBDriverPostgres:
		return DialectPostgres, nil
	case config.DBDriverSQLite:
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported driver: %q", driver)
	}
}

// Placeholder returns the 1-based positional parameter n.
func (d Dialect) Placeholder(n int) string {
	switch d {
	case DialectOracle:
		return ":" + strconv.Itoa(n)
	case DialectMSSQL:
		return "@p" + strconv.Itoa(n)
	case DialectPostgres:
		return "$" + strconv.Itoa(n)
	default:
		return "?"
	}
}

// InsertStatement builds INSERT INTO table (cols) VALUES (placeholders) with
// one placeholder per column in the given order.
func (d Dialect) InsertStatement(table string, columns []string) string {
	ph := make([]string, len(columns))
	for i := range columns {
		ph[i] = d.Placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(ph, ", "))
}
