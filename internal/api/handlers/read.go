package handlers

import (
	"fmt"
	"net/http"

	"alumni-office/internal/api/dto"
	"alumni-office/internal/api/utils"
	"alumni-office/internal/logger"
	"alumni-office/internal/registry"

	"github.com/go-chi/chi/v5"
)

// NewReadHandler serves GET /{kind}/{name}: every row of an allow-listed
// table or view as a JSON array of objects.
func NewReadHandler(store Store, reg registry.Registry, opt Options, log logger.LoggerService) http.HandlerFunc {
	cacheControl := ""
	if opt.CacheMaxAge > 0 {
		cacheControl = fmt.Sprintf("public, max-age=%d", opt.CacheMaxAge)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		stmt, ok := reg.Lookup(name)
		if !ok {
			writeFailure(w, notFound(reg.Kind()))
			return
		}

		ctx, cancel := opt.withTimeout(r.Context())
		defer cancel()

		res, err := store.FetchAll(ctx, name, stmt)
		if err != nil {
			log.Error(fmt.Sprintf("read %s %s", reg.Kind(), name), err)
			writeFailure(w, backendFailure(err))
			return
		}
		if res.Empty() {
			writeFailure(w, noRecords(reg.Kind()))
			return
		}

		records := res.Records()
		out := make([]dto.Record, 0, len(records))
		for _, rec := range records {
			out = append(out, dto.Record(rec))
		}

		if cacheControl != "" {
			w.Header().Set("Cache-Control", cacheControl)
		}
		utils.WriteJSON(w, http.StatusOK, out)
	}
}
