package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"alumni-office/internal/logger"
	"alumni-office/internal/metrics"
	"alumni-office/internal/registry"
	"alumni-office/internal/report"

	"github.com/go-chi/chi/v5"
)

// NewReportHandler serves GET /report/{name} as a PDF attachment.
func NewReportHandler(store Store, reg registry.Registry, renderer *report.Renderer, opt Options, log logger.LoggerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		stmt, ok := reg.Lookup(name)
		if !ok {
			writeFailure(w, notFound(registry.KindReport))
			return
		}

		ctx, cancel := opt.withTimeout(r.Context())
		defer cancel()

		res, err := store.FetchAll(ctx, name, stmt)
		if err != nil {
			log.Error("report query "+name, err)
			writeFailure(w, backendFailure(err))
			return
		}
		if res.Empty() {
			writeFailure(w, noRecords(registry.KindReport))
			return
		}

		pdf, err := renderer.Render(name, res)
		if err != nil {
			log.Error("report render "+name, err)
			writeFailure(w, &resourceError{kind: kindBackend, code: "REPORT_FAILED", msg: err.Error(), err: err})
			return
		}
		metrics.RecordReport(name)

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", name))
		w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdf)
	}
}
