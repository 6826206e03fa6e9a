package export

import (
	"fmt"
	"math"
	"strings"
)

// Series is one polyline or marker set on a plot.
type Series struct {
	X, Y   []float64
	Color  string
	Dashed bool
	Points bool
}

// LogLogToSVG renders series on log-scaled axes. Non-positive samples are
// skipped.
func LogLogToSVG(series []Series, width, height int, title string) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for i := range s.X {
			if s.X[i] <= 0 || s.Y[i] <= 0 {
				continue
			}
			lx, ly := math.Log10(s.X[i]), math.Log10(s.Y[i])
			minX, maxX = math.Min(minX, lx), math.Max(maxX, lx)
			minY, maxY = math.Min(minY, ly), math.Max(maxY, ly)
		}
	}
	if math.IsInf(minX, 1) {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	maxX += rangeX * 0.05
	minY -= rangeY * 0.05
	maxY += rangeY * 0.05
	rangeX = maxX - minX
	rangeY = maxY - minY

	project := func(x, y float64) (float64, float64) {
		px := (math.Log10(x) - minX) / rangeX * float64(width)
		py := float64(height) - (math.Log10(y)-minY)/rangeY*float64(height)
		return px, py
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<text x="8" y="18" fill="#cccccc" font-family="monospace" font-size="12">%s</text>
`, width, height, width, height, title))

	for _, s := range series {
		dash := ""
		if s.Dashed {
			dash = ` stroke-dasharray="6,4"`
		}
		started := false
		var path strings.Builder
		var dots strings.Builder
		for i := range s.X {
			if s.X[i] <= 0 || s.Y[i] <= 0 {
				continue
			}
			x, y := project(s.X[i], s.Y[i])
			if !started {
				path.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
				started = true
			} else {
				path.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
			if s.Points {
				dots.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2" fill="%s"/>
`, x, y, s.Color))
			}
		}
		if !started {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5"%s d="%s"/>
`, s.Color, dash, path.String()))
		sb.WriteString(dots.String())
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SpectrumToSVG plots an estimated spectrum with its k^(-5/3) reference.
func SpectrumToSVG(centers, energies, refCenters, refValues []float64, width, height int) string {
	return LogLogToSVG([]Series{
		{X: centers, Y: energies, Color: "#00ff88", Points: true},
		{X: refCenters, Y: refValues, Color: "#cccccc", Dashed: true},
	}, width, height, "energy spectrum E(k) vs k^-5/3")
}

// FieldToSVG draws a quiver plot of (ux, uy) sampled every stride points.
// coords holds the physical coordinate of each grid index.
func FieldToSVG(coords []float64, ux, uy [][]float64, stride, size int) string {
	n := len(ux)
	if n == 0 || len(coords) != n {
		return ""
	}
	if stride < 1 {
		stride = 1
	}

	maxMag := 0.0
	for r := 0; r < n; r += stride {
		for c := 0; c < n; c += stride {
			maxMag = math.Max(maxMag, math.Hypot(ux[r][c], uy[r][c]))
		}
	}
	if maxMag == 0 {
		maxMag = 1
	}

	length := coords[n-1] + (coords[n-1]-coords[0])/float64(max(n-1, 1))
	if length <= 0 {
		length = 1
	}
	cell := float64(size) * float64(stride) / float64(n)
	scale := 0.9 * cell / maxMag

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="#00ccff" stroke-width="1">
`, size, size, size, size))

	for r := 0; r < n; r += stride {
		for c := 0; c < n; c += stride {
			x0 := coords[c] / length * float64(size)
			y0 := float64(size) - coords[r]/length*float64(size)
			x1 := x0 + ux[r][c]*scale
			y1 := y0 - uy[r][c]*scale
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x0, y0, x1, y1))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
