package db

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"

	"alumni-office/internal/config"

	"github.com/sijms/go-ora/v2/network"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*config.Config)
		wantDriver string
		wantPrefix string
		wantErr    bool
	}{
		{
			name:       "oracle",
			mutate:     func(*config.Config) {},
			wantDriver: "oracle",
			wantPrefix: "oracle://",
		},
		{
			name: "mssql",
			mutate: func(c *config.Config) {
				c.DB.Driver = config.DBDriverMSSQL
				c.DB.Port = 1433
				c.DB.Database = "alumni"
			},
			wantDriver: "sqlserver",
			wantPrefix: "sqlserver://",
		},
		{
			name: "postgres",
			mutate: func(c *config.Config) {
				c.DB.Driver = config.DBDriverPostgres
				c.DB.Port = 5432
				c.DB.Database = "alumni"
			},
			wantDriver: "pgx",
			wantPrefix: "postgres://",
		},
		{
			name: "sqlite",
			mutate: func(c *config.Config) {
				c.DB = config.DBConfig{Driver: config.DBDriverSQLite, Database: "alumni.db"}
			},
			wantDriver: "sqlite3",
			wantPrefix: "alumni.db",
		},
		{
			name:    "missing host",
			mutate:  func(c *config.Config) { c.DB.Host = "" },
			wantErr: true,
		},
		{
			name:    "bad port",
			mutate:  func(c *config.Config) { c.DB.Port = 0 },
			wantErr: true,
		},
		{
			name:    "unknown driver",
			mutate:  func(c *config.Config) { c.DB.Driver = "db2" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			driver, dsn, err := buildDSN(cfg, "p@ss word")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if driver != tt.wantDriver {
				t.Fatalf("driver = %q, want %q", driver, tt.wantDriver)
			}
			if !strings.HasPrefix(strings.ToLower(dsn), tt.wantPrefix) {
				t.Fatalf("dsn %q does not start with %q", dsn, tt.wantPrefix)
			}
		})
	}
}

func TestTranslateConnectError(t *testing.T) {
	target := "localhost:1521/XEPDB1"

	auth := TranslateConnectError(&network.OracleError{ErrCode: 1017, ErrMsg: "ORA-01017: invalid username/password"}, target)
	if !errors.Is(auth, ErrAuthFailed) || !errors.Is(auth, ErrConnect) {
		t.Fatalf("expected auth failure, got %v", auth)
	}
	if auth.Error() != "Authentication failed - check username/password" {
		t.Fatalf("unexpected message %q", auth.Error())
	}

	listener := TranslateConnectError(&network.OracleError{ErrCode: 12541, ErrMsg: "ORA-12541: TNS:no listener"}, target)
	if !errors.Is(listener, ErrUnreachable) {
		t.Fatalf("expected unreachable, got %v", listener)
	}
	if listener.Error() != "Cannot connect to localhost:1521/XEPDB1 - check host/port/service_name" {
		t.Fatalf("unexpected message %q", listener.Error())
	}

	dial := TranslateConnectError(fmt.Errorf("dial: %w", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}), target)
	if !errors.Is(dial, ErrUnreachable) {
		t.Fatalf("expected unreachable for dial error, got %v", dial)
	}

	other := TranslateConnectError(errors.New("ORA-28000: the account is locked"), target)
	if errors.Is(other, ErrAuthFailed) || !errors.Is(other, ErrConnect) {
		t.Fatalf("expected generic connect error, got %v", other)
	}
	if other.Error() != "Database connection failed: ORA-28000: the account is locked" {
		t.Fatalf("unexpected message %q", other.Error())
	}

	if TranslateConnectError(other, target) != other {
		t.Fatalf("translation must be idempotent")
	}
}

func TestDialectPlaceholders(t *testing.T) {
	cols := []string{"A", "B", "C"}
	tests := map[Dialect]string{
		DialectOracle:   "INSERT INTO T (A, B, C) VALUES (:1, :2, :3)",
		DialectMSSQL:    "INSERT INTO T (A, B, C) VALUES (@p1, @p2, @p3)",
		DialectPostgres: "INSERT INTO T (A, B, C) VALUES ($1, $2, $3)",
		DialectSQLite:   "INSERT INTO T (A, B, C) VALUES (?, ?, ?)",
	}
	for d, want := range tests {
		if got := d.InsertStatement("T", cols); got != want {
			t.Fatalf("%s: got %q, want %q", d, got, want)
		}
	}
}

func TestNormalizeParamValue(t *testing.T) {
	if v := normalizeParamValue(float64(2024)); v != int64(2024) {
		t.Fatalf("expected int64, got %T %v", v, v)
	}
	if v := normalizeParamValue(12.5); v != 12.5 {
		t.Fatalf("expected float passthrough, got %v", v)
	}
	if v := normalizeParamValue("2024-01-01"); v != "2024-01-01" {
		t.Fatalf("expected string passthrough, got %v", v)
	}
}
