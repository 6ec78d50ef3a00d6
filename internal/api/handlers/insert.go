package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"alumni-office/internal/api/dto"
	"alumni-office/internal/api/utils"
	"alumni-office/internal/logger"
	"alumni-office/internal/registry"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

const insertMaxBodyBytes = 1 << 20

var (
	errEmptyBody = errors.New("empty body")
	errNotObject = errors.New("body is not a JSON object")
)

// NewInsertHandler serves POST /table/{name}: validates the record against the
// table's required columns and inserts it in one transaction.
func NewInsertHandler(store Store, schema registry.Schema, opt Options, log logger.LoggerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		ts, ok := schema.Lookup(name)
		if !ok {
			writeFailure(w, notFound(registry.KindTable))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, insertMaxBodyBytes)
		defer r.Body.Close()

		body, err := decodeRecord(r.Body)
		if err != nil {
			if errors.Is(err, errEmptyBody) {
				writeFailure(w, invalid("NO_DATA", "No data provided", nil))
				return
			}
			writeFailure(w, invalid("INVALID_JSON", "Invalid JSON body", nil))
			return
		}
		if len(body) == 0 {
			writeFailure(w, invalid("NO_DATA", "No data provided", nil))
			return
		}

		if missing := ts.Missing(body); len(missing) > 0 {
			writeFailure(w, invalid("MISSING_FIELDS", "Missing required fields", missing))
			return
		}

		values := ts.Values(body)
		for i, v := range values {
			values[i] = bindValue(v)
		}

		ctx, cancel := opt.withTimeout(r.Context())
		defer cancel()

		if err := store.Insert(ctx, ts.Target, ts.Required, values); err != nil {
			log.Error("insert into "+ts.Target, err)
			writeFailure(w, backendFailure(err))
			return
		}

		utils.WriteJSON(w, http.StatusCreated, dto.InsertResponse{Message: "Data inserted successfully"})
	}
}

// decodeRecord reads exactly one JSON value. An absent body, null and an
// empty array count as no data; any other non-object is invalid.
func decodeRecord(r io.Reader) (dto.InsertRequest, error) {
	dec := json.NewDecoder(r)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyBody
		}
		return nil, err
	}
	if err := ensureEOF(dec); err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var items []any
		if err := json.Unmarshal(raw, &items); err == nil && len(items) == 0 {
			return nil, errEmptyBody
		}
		return nil, errNotObject
	}

	body := json.NewDecoder(bytes.NewReader(raw))
	body.UseNumber()

	var rec dto.InsertRequest
	if err := body.Decode(&rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func ensureEOF(dec *json.Decoder) error {
	var extra any
	if err := dec.Decode(&extra); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return errors.New("extra data")
}

// bindValue turns decoded JSON numbers into int64 when they are integral.
func bindValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if !strings.ContainsAny(n.String(), ".eE") {
		if i, err := n.Int64(); err == nil {
			return i
		}
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
