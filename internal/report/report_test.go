package report

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
	"time"

	"alumni-office/internal/db"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sampleResult(n int) db.Result {
	res := db.Result{Columns: []string{"Alumni_Name", "Graduation_Year", "Email"}}
	for i := 0; i < n; i++ {
		res.Rows = append(res.Rows, []any{"Alumnus", int64(2005 + i), nil})
	}
	return res
}

func TestRenderEmptyResult(t *testing.T) {
	_, err := New().Render("TECHNOLOGYALUMNIS", db.Result{Columns: []string{"A"}})
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestRenderProducesPDF(t *testing.T) {
	at := time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)
	r := &Renderer{Now: fixedClock(at), DisableCompression: true}

	out, err := r.Render("ALUMNIDIRECTORY", sampleResult(3))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
	if !bytes.Contains(out, []byte("ALUMNIDIRECTORY October 17, 2026 09:30 AM")) {
		t.Fatalf("title not found in page stream")
	}
	if !bytes.Contains(out, []byte("Graduation_Year")) {
		t.Fatalf("header cell not found in page stream")
	}
}

func TestRenderIsDeterministicForFixedClock(t *testing.T) {
	at := time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)
	r := &Renderer{Now: fixedClock(at)}

	a, err := r.Render("UPCOMINGEVENTS", sampleResult(5))
	if err != nil {
		t.Fatalf("render a: %v", err)
	}
	b, err := r.Render("UPCOMINGEVENTS", sampleResult(5))
	if err != nil {
		t.Fatalf("render b: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("renders with the same clock differ")
	}
}

func TestOnlyTitleDependsOnClock(t *testing.T) {
	at := time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)
	later := at.Add(time.Minute)

	if Title("AWARDS", at) == Title("AWARDS", later) {
		t.Fatalf("titles should differ across clocks")
	}
	if !reflect.DeepEqual(Layout(sampleResult(4)), Layout(sampleResult(4))) {
		t.Fatalf("table layout must not depend on render time")
	}
}

func TestLayoutStripes(t *testing.T) {
	tests := []struct {
		name  string
		rows  int
		fills []Color
	}{
		{name: "single data row", rows: 1, fills: []Color{colorHeaderFill, colorPlain}},
		{name: "two rows", rows: 2, fills: []Color{colorHeaderFill, colorPlain, colorStripe}},
		{name: "three rows", rows: 3, fills: []Color{colorHeaderFill, colorPlain, colorStripe, colorPlain}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Layout(sampleResult(tt.rows))
			if len(rows) != len(tt.fills) {
				t.Fatalf("expected %d rows, got %d", len(tt.fills), len(rows))
			}
			if !rows[0].Header {
				t.Fatalf("first row must be the header")
			}
			for i, row := range rows {
				if row.Fill != tt.fills[i] {
					t.Fatalf("row %d fill = %v, want %v", i, row.Fill, tt.fills[i])
				}
			}
		})
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"Nairobi", "Nairobi"},
		{[]byte("raw"), "raw"},
		{int64(42), "42"},
		{12.50, "12.5"},
		{true, "true"},
		{time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "2024-05-01"},
		{time.Date(2024, 5, 1, 14, 5, 9, 0, time.UTC), "2024-05-01 14:05:09"},
	}
	for _, tt := range tests {
		if got := FormatCell(tt.in); got != tt.want {
			t.Fatalf("FormatCell(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderPaginatesLongReports(t *testing.T) {
	r := &Renderer{Now: fixedClock(time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC))}
	out, err := r.Render("ALUMNISBETWEEN2005AND2015", sampleResult(200))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestRenderNonASCIICells(t *testing.T) {
	res := db.Result{
		Columns: []string{"Alumni_Name", "Chapter_Location", "Notes"},
		Rows: [][]any{
			{"José Ochieng", "Murang’a", "naïve – first reunion"},
			{"Zoë", "Nyeri", "café meetup"},
		},
	}
	r := &Renderer{Now: fixedClock(time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)), DisableCompression: true}

	out, err := r.Render("ALUMNIDIRECTORY", res)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("expected a PDF")
	}
	// cp1252: é = 0xE9, ’ = 0x92
	for _, want := range []string{"Jos\xe9 Ochieng", "Murang\x92a", "na\xefve"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Fatalf("expected %q in the rendered page", want)
		}
	}
}

func TestWidenNarrowRoundTrip(t *testing.T) {
	in := "Jos\xe9 \x92 plain"
	if got := narrow(widen(in)); got != in {
		t.Fatalf("expected %q, got %q", in, got)
	}
}
