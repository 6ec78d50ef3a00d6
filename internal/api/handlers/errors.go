package handlers

import (
	"context"
	"errors"
	"net/http"

	"alumni-office/internal/api/utils"
	"alumni-office/internal/db"
	"alumni-office/internal/registry"
)

type errKind int

const (
	kindNotFound errKind = iota
	kindEmpty
	kindValidation
	kindBackend
	kindUnavailable
	kindTimeout
)

// resourceError is the tagged result every handler failure is reduced to.
type resourceError struct {
	kind    errKind
	code    string
	msg     string
	missing []string
	err     error
}

func (e *resourceError) Error() string { return e.msg }

func (e *resourceError) Unwrap() error { return e.err }

func (e *resourceError) status() int {
	switch e.kind {
	case kindNotFound:
		return http.StatusNotFound
	case kindEmpty:
		return http.StatusOK
	case kindValidation:
		return http.StatusBadRequest
	case kindUnavailable:
		return http.StatusBadGateway
	case kindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func notFound(kind registry.Kind) *resourceError {
	var code, msg string
	switch kind {
	case registry.KindView:
		code, msg = "VIEW_NOT_FOUND", "The view does not exist"
	case registry.KindReport:
		code, msg = "REPORT_NOT_FOUND", "The report does not exist"
	default:
		code, msg = "TABLE_NOT_FOUND", "The table does not exist"
	}
	return &resourceError{kind: kindNotFound, code: code, msg: msg}
}

func noRecords(kind registry.Kind) *resourceError {
	msg := "No records found"
	if kind == registry.KindReport {
		msg = "No records found; thus PDF cannot be generated"
	}
	return &resourceError{kind: kindEmpty, code: "NO_RECORDS", msg: msg}
}

func invalid(code, msg string, missing []string) *resourceError {
	return &resourceError{kind: kindValidation, code: code, msg: msg, missing: missing}
}

// backendFailure keeps the driver's text as the message, as callers expect.
func backendFailure(err error) *resourceError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &resourceError{kind: kindTimeout, code: "DB_TIMEOUT", msg: "Query timeout", err: err}
	case errors.Is(err, db.ErrConnect):
		return &resourceError{kind: kindUnavailable, code: "DB_UNAVAILABLE", msg: err.Error(), err: err}
	default:
		return &resourceError{kind: kindBackend, code: "DB_ERROR", msg: err.Error(), err: err}
	}
}

func writeFailure(w http.ResponseWriter, e *resourceError) {
	utils.WriteError(w, e.status(), e.msg, e.code, e.missing)
}
