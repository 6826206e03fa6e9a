package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(16)

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	StatusOK = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusError = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	FieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// Sparkline renders values as block characters, sampled down to width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := max(len(values)/width, 1)

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := min(max(int(norm*float64(len(chars)-1)), 0), len(chars)-1)

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(c))
		default:
			result.WriteString(SparkLow.Render(c))
		}
	}
	return result.String()
}
