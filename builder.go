package zraster

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse errors. Every reason a line is skipped matches ErrSkipped with
// errors.Is.
var (
	// ErrSkipped is the class of all skipped geometry lines.
	ErrSkipped = errors.New("zraster: line skipped")

	// ErrFieldCount is returned when a line has the wrong number of
	// comma-separated fields.
	ErrFieldCount = fmt.Errorf("%w: wrong number of fields", ErrSkipped)

	// ErrColorFormat is returned when a vertex color is not "#RRGGBB".
	ErrColorFormat = fmt.Errorf("%w: color is not #RRGGBB", ErrSkipped)

	// ErrIndexFormat is returned when a triangle field is not an integer.
	ErrIndexFormat = fmt.Errorf("%w: vertex index is not an integer", ErrSkipped)
)

// LineError records why a single source line was dropped.
type LineError struct {
	Line int    // 1-based line number in the source text
	Text string // trimmed line content
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Report summarizes a build: how many entries were kept and which lines
// were dropped.
type Report struct {
	Vertices  int
	Triangles int

	SkippedVertices  []*LineError
	SkippedTriangles []*LineError
}

// Skipped returns the total number of dropped lines.
func (r Report) Skipped() int {
	return len(r.SkippedVertices) + len(r.SkippedTriangles)
}

// Build parses a vertex list and a face list into a Model.
//
// Vertex lines have the form "x, y, z, #RRGGBB"; face lines have the form
// "i, j, k" with 1-based indices into the vertices that parsed. Malformed
// lines are dropped individually and never stop the rest of the input from
// being read. Build never fails.
func Build(vertexText, triText string) Model {
	m, _ := BuildWithReport(vertexText, triText)
	return m
}

// BuildWithReport is like Build but also reports every dropped line.
func BuildWithReport(vertexText, triText string) (Model, Report) {
	var (
		m   Model
		rep Report
	)

	for _, ln := range nonemptyLines(vertexText) {
		v, err := ParseVertex(ln.text)
		if err != nil {
			rep.SkippedVertices = append(rep.SkippedVertices, &LineError{Line: ln.num, Text: ln.text, Err: err})
			continue
		}
		m.Vertices = append(m.Vertices, v)
	}

	for _, ln := range nonemptyLines(triText) {
		t, err := ParseTriangle(ln.text)
		if err != nil {
			rep.SkippedTriangles = append(rep.SkippedTriangles, &LineError{Line: ln.num, Text: ln.text, Err: err})
			continue
		}
		m.Triangles = append(m.Triangles, t)
	}

	rep.Vertices = len(m.Vertices)
	rep.Triangles = len(m.Triangles)

	Logger().Debug("zraster: mesh built",
		"vertices", rep.Vertices,
		"triangles", rep.Triangles,
		"skipped", rep.Skipped())

	return m, rep
}

// ParseVertex parses a single "x, y, z, #RRGGBB" line.
//
// Numeric fields that are not numbers become NaN rather than failing the
// line, so the vertex still occupies its index; such a vertex is simply
// never drawn. z is floored to an integer.
func ParseVertex(line string) (Vertex, error) {
	parts := splitFields(line)
	if len(parts) != 4 {
		return Vertex{}, ErrFieldCount
	}
	c, ok := ParseHex(parts[3])
	if !ok {
		return Vertex{}, ErrColorFormat
	}
	return NewVertex(parseNumber(parts[0]), parseNumber(parts[1]), parseNumber(parts[2]), c), nil
}

// ParseTriangle parses a single "i, j, k" line of 1-based vertex indices.
// Indices are not range-checked here; out-of-range triangles are skipped
// when rendering.
func ParseTriangle(line string) (Triangle, error) {
	parts := splitFields(line)
	if len(parts) != 3 {
		return Triangle{}, ErrFieldCount
	}
	var t Triangle
	for i, p := range parts {
		f := parseNumber(p)
		if !isFinite(f) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return Triangle{}, ErrIndexFormat
		}
		t[i] = int(f)
	}
	return t, nil
}

// parseNumber parses a decimal real. Unparseable text yields NaN; values
// out of float64 range yield ±Inf.
func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

type sourceLine struct {
	num  int
	text string
}

// nonemptyLines splits text on CRLF, CR or LF and returns the trimmed,
// non-empty lines with their 1-based line numbers.
func nonemptyLines(text string) []sourceLine {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []sourceLine
	for i, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, sourceLine{num: i + 1, text: l})
	}
	return lines
}
