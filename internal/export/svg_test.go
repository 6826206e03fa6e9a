package export

import (
	"strings"
	"testing"
)

func TestSpectrumToSVG(t *testing.T) {
	centers := []float64{1, 2, 4, 8}
	energies := []float64{1, 0.3, 0, 0.02}
	svg := SpectrumToSVG(centers, energies, centers, []float64{1, 0.31, 0.1, 0.03}, 400, 300)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("expected 2 paths, got %d", got)
	}
	// the zero-energy bin is skipped
	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("expected 3 markers, got %d", got)
	}
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("expected dashed reference line")
	}
}

func TestLogLogToSVGNoPositiveData(t *testing.T) {
	svg := LogLogToSVG([]Series{{X: []float64{0, 1}, Y: []float64{1, 0}}}, 100, 100, "empty")
	if svg != "" {
		t.Error("expected empty output without positive samples")
	}
}

func TestFieldToSVG(t *testing.T) {
	n := 8
	coords := make([]float64, n)
	ux := make([][]float64, n)
	uy := make([][]float64, n)
	for r := 0; r < n; r++ {
		coords[r] = float64(r) * 0.5
		ux[r] = make([]float64, n)
		uy[r] = make([]float64, n)
		for c := 0; c < n; c++ {
			ux[r][c] = float64(c)
			uy[r][c] = -float64(r)
		}
	}

	svg := FieldToSVG(coords, ux, uy, 2, 256)
	if got := strings.Count(svg, "<line"); got != 16 {
		t.Errorf("expected 16 arrows, got %d", got)
	}

	if FieldToSVG(nil, nil, nil, 1, 10) != "" {
		t.Error("expected empty output for empty field")
	}
}
