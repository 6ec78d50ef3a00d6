// Package report renders a query result as a single-layout PDF: a dated title
// followed by a striped, fully gridded table.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"alumni-office/internal/db"

	"github.com/go-pdf/fpdf"
)

// ErrEmpty is returned for results without data rows.
var ErrEmpty = errors.New("no records to render")

// Color is an RGB triple in 0-255.
type Color struct{ R, G, B int }

var (
	colorTitle      = Color{0, 139, 139}   // darkcyan
	colorHeaderFill = Color{128, 128, 128} // grey
	colorHeaderText = Color{245, 245, 245} // whitesmoke
	colorStripe     = Color{245, 245, 220} // beige
	colorPlain      = Color{255, 255, 255}
	colorGrid       = Color{0, 0, 0}
)

const (
	pageMargin     = 72.0
	titleFontSize  = 24.0
	titleSpace     = 20.0
	headerFontSize = 14.0
	bodyFontSize   = 10.0
	padX           = 10.0
	padY           = 5.0
	lineFactor     = 1.2
	gridWidth      = 1.0
)

// Renderer turns query results into PDF bytes. Now is the clock used for the
// title and document dates; a nil Now means time.Now.
type Renderer struct {
	Now func() time.Time

	// DisableCompression leaves page streams readable, which tests rely on.
	DisableCompression bool
}

func New() *Renderer {
	return &Renderer{Now: time.Now}
}

func (r *Renderer) now() time.Time {
	if r == nil || r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// Title is the heading line: the report name with the render date and time.
func Title(name string, at time.Time) string {
	return fmt.Sprintf("%s %s %s", name, at.Format("January 02, 2006"), at.Format("03:04 PM"))
}

// Row is one rendered table line.
type Row struct {
	Cells  []string
	Header bool
	Fill   Color
}

// Layout converts a result into table rows: the header first, then data rows
// whose fill alternates by position. Position 1, the first data row, is plain.
func Layout(res db.Result) []Row {
	rows := make([]Row, 0, len(res.Rows)+1)
	rows = append(rows, Row{
		Cells:  append([]string(nil), res.Columns...),
		Header: true,
		Fill:   colorHeaderFill,
	})

	for i, values := range res.Rows {
		pos := i + 1
		fill := colorPlain
		if pos%2 == 0 {
			fill = colorStripe
		}
		cells := make([]string, len(values))
		for j, v := range values {
			cells[j] = FormatCell(v)
		}
		rows = append(rows, Row{Cells: cells, Fill: fill})
	}
	return rows
}

// FormatCell is the display string of a driver value.
func FormatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// Render produces the PDF for the named report.
func (r *Renderer) Render(name string, res db.Result) ([]byte, error) {
	if res.Empty() {
		return nil, ErrEmpty
	}

	at := r.now()

	pdf := fpdf.New("L", "pt", "A3", "")
	pdf.SetCompression(r == nil || !r.DisableCompression)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(at)
	pdf.SetModificationDate(at)
	pdf.SetTitle(name+" (Digital Use)", true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetLineWidth(gridWidth)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	pdf.SetFont("Helvetica", "B", titleFontSize)
	setText(pdf, colorTitle)
	pdf.CellFormat(contentW, titleFontSize*lineFactor, tr(Title(name, at)), "", 1, "C", false, 0, "")
	pdf.Ln(titleSpace)

	rows := Layout(res)
	t := table{
		pdf:    pdf,
		tr:     tr,
		colW:   contentW / float64(len(res.Columns)),
		header: rows[0],
	}
	t.draw(rows[0])
	for _, row := range rows[1:] {
		t.draw(row)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

type table struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	colW   float64
	header Row
}

func (t table) fontFor(row Row) (string, float64) {
	if row.Header {
		return "B", headerFontSize
	}
	return "", bodyFontSize
}

// height wraps every cell to the column width and returns the row height.
func (t table) height(row Row) (float64, [][]string) {
	style, size := t.fontFor(row)
	t.pdf.SetFont("Helvetica", style, size)

	lines := make([][]string, len(row.Cells))
	maxLines := 1
	for i, cell := range row.Cells {
		wrapped := t.pdf.SplitText(widen(t.tr(cell)), t.colW-2*padX)
		if len(wrapped) == 0 {
			wrapped = []string{""}
		}
		for j, line := range wrapped {
			wrapped[j] = narrow(line)
		}
		lines[i] = wrapped
		if len(wrapped) > maxLines {
			maxLines = len(wrapped)
		}
	}
	return float64(maxLines)*size*lineFactor + 2*padY, lines
}

func (t table) draw(row Row) {
	h, lines := t.height(row)

	_, pageH := t.pdf.GetPageSize()
	if !row.Header && t.pdf.GetY()+h > pageH-pageMargin {
		t.pdf.AddPage()
		t.draw(t.header)
		h, lines = t.height(row)
	}

	style, size := t.fontFor(row)
	t.pdf.SetFont("Helvetica", style, size)
	setFill(t.pdf, row.Fill)
	setDraw(t.pdf, colorGrid)
	if row.Header {
		setText(t.pdf, colorHeaderText)
	} else {
		setText(t.pdf, Color{0, 0, 0})
	}

	lineH := size * lineFactor
	x0, y0 := pageMargin, t.pdf.GetY()
	for i, cellLines := range lines {
		x := x0 + float64(i)*t.colW
		t.pdf.Rect(x, y0, t.colW, h, "FD")

		// vertically center the wrapped block inside the padded cell
		textTop := y0 + (h-float64(len(cellLines))*lineH)/2
		for j, line := range cellLines {
			t.pdf.SetXY(x+padX, textTop+float64(j)*lineH)
			t.pdf.CellFormat(t.colW-2*padX, lineH, line, "", 0, "C", false, 0, "")
		}
	}
	t.pdf.SetXY(x0, y0+h)
}

// widen maps each cp1252 byte to the rune of the same value so SplitText
// indexes the core font width table in range.
func widen(s string) string {
	rs := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		rs[i] = rune(s[i])
	}
	return string(rs)
}

// narrow undoes widen.
func narrow(s string) string {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		b = append(b, byte(r))
	}
	return string(b)
}

func setText(pdf *fpdf.Fpdf, c Color) { pdf.SetTextColor(c.R, c.G, c.B) }
func setFill(pdf *fpdf.Fpdf, c Color) { pdf.SetFillColor(c.R, c.G, c.B) }
func setDraw(pdf *fpdf.Fpdf, c Color) { pdf.SetDrawColor(c.R, c.G, c.B) }
