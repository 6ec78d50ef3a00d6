package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordQueryCountsErrors(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "metrics_test"))

	RecordQuery("select", "metrics_test", time.Millisecond, nil)
	RecordQuery("select", "metrics_test", time.Millisecond, errors.New("ORA-00942"))

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "metrics_test"))
	if after-before != 1 {
		t.Fatalf("expected one error recorded, got %v", after-before)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/metrics_test", "200"))
	RecordAPIRequest("GET", "/metrics_test", "200", 5*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/metrics_test", "200"))
	if after-before != 1 {
		t.Fatalf("expected counter to increase by one, got %v", after-before)
	}
}
