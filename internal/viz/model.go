package viz

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/turbsynth/internal/config"
	"github.com/san-kum/turbsynth/internal/experiment"
	"github.com/san-kum/turbsynth/internal/metrics"
)

const (
	plotWidth    = 60
	plotHeight   = 14
	canvasWidth  = 32
	canvasHeight = 16
)

// Model is a Bubble Tea viewer over one realization at a time.
type Model struct {
	cfg      config.Config
	registry *experiment.Registry
	result   *experiment.Result
	err      error
	runs     int
}

func NewModel(cfg config.Config) Model {
	m := Model{cfg: cfg, registry: experiment.NewRegistry()}
	m.regenerate()
	return m
}

func (m *Model) regenerate() {
	exp := experiment.New(m.cfg)
	if err := exp.Setup(m.registry, nil); err != nil {
		m.result, m.err = nil, err
		return
	}
	m.result, m.err = exp.Run(context.Background())
	m.runs++
}

func (m Model) Init() tea.Cmd { return nil }

// Update handles key presses; every setting change regenerates the field.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "n":
		m.cfg.Seed++
	case "h":
		m.cfg.Synthesis.Hermitian = !m.cfg.Synthesis.Hermitian
	case "p":
		if m.cfg.Synthesis.Policy == "independent" {
			m.cfg.Synthesis.Policy = "shared"
		} else {
			m.cfg.Synthesis.Policy = "independent"
		}
	case "b":
		names := m.registry.ListBackends()
		for i, name := range names {
			if name == m.cfg.Backend {
				m.cfg.Backend = names[(i+1)%len(names)]
				break
			}
		}
	default:
		return m, nil
	}

	m.regenerate()
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("turbsynth  n=%d  seed=%d  policy=%s  hermitian=%v  backend=%s",
		m.cfg.Grid.N, m.cfg.Seed, m.cfg.Synthesis.Policy, m.cfg.Synthesis.Hermitian, m.cfg.Backend)
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(StatusError.Render("error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(KeyHint.Render("n seed · h hermitian · p policy · b backend · q quit"))
		return b.String()
	}

	res := m.result
	plot := PlotSpectrum(res.Spectrum, res.Reference, plotWidth, plotHeight)

	canvas := NewCanvas(canvasWidth, canvasHeight)
	canvas.Quiver(res.Field.Ux, res.Field.Uy, max(res.Grid.N/16, 1))

	var stats strings.Builder
	for _, name := range metrics.Names(res.Metrics) {
		v := res.Metrics[name]
		val := fmt.Sprintf("%.4g", v)
		if math.IsNaN(v) {
			val = "n/a"
		}
		stats.WriteString(MetricLabel.Render(name) + MetricValue.Render(val) + "\n")
	}
	stats.WriteString(MetricLabel.Render("bins") + MetricValue.Render(fmt.Sprint(len(res.Spectrum.Bins))) + "\n")
	stats.WriteString(MetricLabel.Render("elapsed") + MetricValue.Render(res.Elapsed.String()) + "\n")

	modes := make([]float64, len(res.Spectrum.Bins))
	for i, bin := range res.Spectrum.Bins {
		modes[i] = float64(bin.Modes)
	}
	stats.WriteString("\nmodes per bin\n" + Sparkline(modes, 30))

	top := lipgloss.JoinHorizontal(lipgloss.Top, Panel.Render(plot), Panel.Render(stats.String()))
	b.WriteString(top)
	b.WriteString("\n")
	b.WriteString(Panel.Render(FieldStyle.Render(canvas.String())))
	b.WriteString("\n")
	b.WriteString(StatusOK.Render(fmt.Sprintf("realization %d", m.runs)))
	b.WriteString("  ")
	b.WriteString(KeyHint.Render("n seed · h hermitian · p policy · b backend · q quit"))
	return b.String()
}

// Result returns the realization currently displayed.
func (m Model) Result() *experiment.Result { return m.result }

func (m Model) Err() error { return m.err }

// Config returns the settings of the current realization.
func (m Model) Config() config.Config { return m.cfg }

// Run starts the interactive viewer.
func Run(cfg config.Config) error {
	_, err := tea.NewProgram(NewModel(cfg)).Run()
	return err
}
