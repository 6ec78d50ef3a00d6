package db

import (
	"alumni-office/internal/config"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	go_ora "github.com/sijms/go-ora/v2"
)

type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
		PingTimeout:     5 * time.Second,
	}
}

// OptionsFor applies the pool size from config on top of the defaults.
func OptionsFor(cfg config.Config) Options {
	opt := DefaultOptions()
	if cfg.DB.MaxOpenConns > 0 {
		opt.MaxOpenConns = cfg.DB.MaxOpenConns
	}
	return opt
}

// Database is the process-wide handle plus what handlers need to talk to it.
type Database struct {
	*sql.DB
	Dialect Dialect
	target  string
}

func Open(cfg config.Config, password string, opt Options) (*Database, error) {
	driverName, dsn, err := buildDSN(cfg, password)
	if err != nil {
		return nil, err
	}

	dialect, err := DialectFor(cfg.DB.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	if opt.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opt.MaxOpenConns)
	}
	if opt.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opt.MaxIdleConns)
	}
	if opt.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opt.ConnMaxLifetime)
	}

	if opt.PingTimeout <= 0 {
		opt.PingTimeout = 5 * time.Second
	}

	out := &Database{DB: db, Dialect: dialect, target: describeTarget(cfg)}

	ctx, cancel := context.WithTimeout(context.Background(), opt.PingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, out.translate(err)
	}

	return out, nil
}

// Wrap adopts an already opened handle, e.g. an in-memory database in tests.
func Wrap(db *sql.DB, dialect Dialect, target string) *Database {
	return &Database{DB: db, Dialect: dialect, target: target}
}

// Acquire checks out a dedicated connection for one request. Callers must
// Close it on every path.
func (d *Database) Acquire(ctx context.Context) (*sql.Conn, error) {
	conn, err := d.Conn(ctx)
	if err != nil {
		return nil, d.translate(err)
	}
	return conn, nil
}

func (d *Database) Ping(ctx context.Context) error {
	if err := d.PingContext(ctx); err != nil {
		return d.translate(err)
	}
	return nil
}

func (d *Database) translate(err error) error {
	return TranslateConnectError(err, d.target)
}

func buildDSN(cfg config.Config, password string) (driverName string, dsn string, err error) {
	host := strings.TrimSpace(cfg.DB.Host)
	port := cfg.DB.Port
	user := strings.TrimSpace(cfg.DB.User)
	dbName := strings.TrimSpace(cfg.DB.Database)

	if cfg.DB.Driver == config.DBDriverSQLite {
		if dbName == "" {
			return "", "", errors.New("db.database is required")
		}
		return "sqlite3", dbName, nil
	}

	if host == "" {
		return "", "", errors.New("db.host is required")
	}
	if port <= 0 || port > 65535 {
		return "", "", errors.New("db.port is invalid")
	}
	if user == "" {
		return "", "", errors.New("db.user is required")
	}

	switch cfg.DB.Driver {
	case config.DBDriverOracle:
		if dbName == "" {
			return "", "", errors.New("db.database (service name) is required")
		}
		return "oracle", go_ora.BuildUrl(host, port, dbName, user, password, nil), nil

	case config.DBDriverMSSQL:
		u := &url.URL{
			Scheme: "sqlserver",
			User:   url.UserPassword(user, password),
			Host:   fmt.Sprintf("%s:%d", host, port),
		}
		q := url.Values{}
		if dbName != "" {
			q.Set("database", dbName)
		}
		u.RawQuery = q.Encode()

		return "sqlserver", u.String(), nil

	case config.DBDriverPostgres:
		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(user, password),
			Host:   fmt.Sprintf("%s:%d", host, port),
			Path:   "/" + dbName,
		}
		return "pgx", u.String(), nil

	default:
		return "", "", fmt.Errorf("unsupported driver: %q", cfg.DB.Driver)
	}
}

// describeTarget renders host:port/service without credentials for error text.
func describeTarget(cfg config.Config) string {
	if cfg.DB.Driver == config.DBDriverSQLite {
		return cfg.DB.Database
	}
	return fmt.Sprintf("%s:%d/%s", cfg.DB.Host, cfg.DB.Port, cfg.DB.Database)
}

func TestConnection(ctx context.Context, cfg config.Config, password string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opt := DefaultOptions()
	if deadline, ok := ctx.Deadline(); ok {
		opt.PingTimeout = time.Until(deadline)
	}
	db, err := Open(cfg, password, opt)
	if err != nil {
		return err
	}
	return db.Close()
}
