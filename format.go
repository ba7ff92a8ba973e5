package zraster

import (
	"strconv"
	"strings"
)

// Format writes a model in the text form read by Build.
// Build(Format(m)) reproduces m for every model whose vertex coordinates
// are finite or NaN.
func Format(m Model) (vertexText, triText string) {
	var vb strings.Builder
	for _, v := range m.Vertices {
		vb.WriteString(formatNumber(v.X))
		vb.WriteString(", ")
		vb.WriteString(formatNumber(v.Y))
		vb.WriteString(", ")
		if v.Z == noDepth {
			vb.WriteString("NaN")
		} else {
			vb.WriteString(strconv.Itoa(v.Z))
		}
		vb.WriteString(", ")
		vb.WriteString(v.Color.Hex())
		vb.WriteByte('\n')
	}

	var tb strings.Builder
	for _, t := range m.Triangles {
		tb.WriteString(strconv.Itoa(t[0]))
		tb.WriteString(", ")
		tb.WriteString(strconv.Itoa(t[1]))
		tb.WriteString(", ")
		tb.WriteString(strconv.Itoa(t[2]))
		tb.WriteByte('\n')
	}

	return vb.String(), tb.String()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
