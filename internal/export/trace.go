package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/barviz/internal/dataset"
	"github.com/san-kum/barviz/internal/render"
)

// TraceSVG plots one polyline per series over a shared value axis fixed to
// the dataset range. series[i] is the value history of labels[i].
func TraceSVG(w io.Writer, labels []string, series [][]float64, width, height int) error {
	if len(series) == 0 || len(series[0]) < 2 {
		return fmt.Errorf("export: need at least two samples to trace")
	}

	const pad = 30.0
	steps := len(series[0])
	plotW := float64(width) - 2*pad
	plotH := float64(height) - 2*pad
	span := dataset.MaxValue - dataset.MinValue

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	for i, values := range series {
		color := render.BarColor(i)
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for j, v := range values {
			x := pad + float64(j)/float64(steps-1)*plotW
			y := pad + plotH - (v-dataset.MinValue)/span*plotH
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		if i < len(labels) {
			last := values[len(values)-1]
			y := pad + plotH - (last-dataset.MinValue)/span*plotH
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-size="%d">%s</text>
`, pad+plotW+4, y, color, fontSize, escape(labels[i])))
		}
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
