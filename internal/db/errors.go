package db

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/sijms/go-ora/v2/network"
)

var (
	// ErrConnect marks every failure to obtain a database connection.
	ErrConnect     = errors.New("database connection failed")
	ErrAuthFailed  = errors.New("authentication failed")
	ErrUnreachable = errors.New("database unreachable")
)

const (
	oraInvalidCredentials = 1017
	oraNoListener         = 12541
	mssqlLoginFailed      = 18456
	pgInvalidPassword     = "28P01"
)

// ConnectError carries an operator-facing message while still matching
// ErrConnect and the specific cause with errors.Is.
type ConnectError struct {
	Kind error
	Msg  string
	Err  error
}

func (e *ConnectError) Error() string { return e.Msg }

func (e *ConnectError) Unwrap() []error {
	return []error{ErrConnect, e.Kind, e.Err}
}

// TranslateConnectError rewrites driver errors raised while connecting into
// the authentication / unreachable / generic taxonomy.
func TranslateConnectError(err error, target string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConnect) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	switch {
	case isAuthFailure(err):
		return &ConnectError{
			Kind: ErrAuthFailed,
			Msg:  "Authentication failed - check username/password",
			Err:  err,
		}
	case isUnreachable(err):
		return &ConnectError{
			Kind: ErrUnreachable,
			Msg:  "Cannot connect to " + target + " - check host/port/service_name",
			Err:  err,
		}
	default:
		return &ConnectError{
			Kind: ErrConnect,
			Msg:  "Database connection failed: " + strings.TrimSpace(err.Error()),
			Err:  err,
		}
	}
}

func isAuthFailure(err error) bool {
	var oraErr *network.OracleError
	if errors.As(err, &oraErr) {
		return oraErr.ErrCode == oraInvalidCredentials
	}
	var msErr mssql.Error
	if errors.As(err, &msErr) {
		return msErr.Number == mssqlLoginFailed
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgInvalidPassword
	}
	return false
}

func isUnreachable(err error) bool {
	var oraErr *network.OracleError
	if errors.As(err, &oraErr) {
		return oraErr.ErrCode == oraNoListener
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
