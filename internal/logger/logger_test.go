package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "info")

	log.Debug("hidden")
	log.Info("  ")
	log.WithFields(map[string]any{"request_id": "abc"}).Warn("slow query")
	log.Error("", errors.New("boom"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %s", len(entries), buf.String())
	}
	if entries[0]["level"] != "warn" || entries[0]["request_id"] != "abc" || entries[0]["message"] != "slow query" {
		t.Fatalf("unexpected warn entry: %v", entries[0])
	}
	if entries[1]["level"] != "error" || entries[1]["error"] != "boom" || entries[1]["message"] != "boom" {
		t.Fatalf("unexpected error entry: %v", entries[1])
	}
}

func TestNopCloses(t *testing.T) {
	if err := NewNop().Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
