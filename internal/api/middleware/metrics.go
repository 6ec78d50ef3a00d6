package middleware

import (
	"net/http"
	"strconv"
	"time"

	"alumni-office/internal/metrics"
)

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		metrics.RecordAPIRequest(r.Method, routePattern(r), strconv.Itoa(sw.code()), time.Since(start))
	})
}
