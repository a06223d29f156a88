package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/physics"
	"github.com/san-kum/freefall/internal/sim"
)

const (
	columnWidth  = 12
	columnHeight = 16
	bodyRadius   = 2
	chartWidth   = 60
	chartHeight  = 8

	adjustFactor = 1.05
	minTimeScale = 0.125
	maxTimeScale = 8.0

	DefaultFPS = 60
)

type TickMsg time.Time

// Model renders a Stepper and feeds it wall-clock frames.
type Model struct {
	stepper  *sim.Stepper
	fps      int
	epoch    time.Time
	selected int
	theme    Theme
	styles   styles
	showHelp bool
	status   string
	ticking  bool
}

// NewModel wraps stepper. fps <= 0 selects DefaultFPS.
func NewModel(stepper *sim.Stepper, fps int, theme Theme) Model {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return Model{
		stepper: stepper,
		fps:     fps,
		theme:   theme,
		styles:  newStyles(theme),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Init requests no frames; ticking starts with playback.
func (m Model) Init() tea.Cmd {
	return nil
}

// resume re-arms the frame ticker if playback is running and no tick is in
// flight.
func (m *Model) resume() tea.Cmd {
	if m.ticking || m.stepper.Phase() != sim.Playing {
		return nil
	}
	m.ticking = true
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.stepper.Phase() == sim.Playing {
				m.stepper.Pause()
			} else {
				m.stepper.Start()
				return m, m.resume()
			}
		case "r":
			m.stepper.Reset()
		case "tab":
			m.selected = (m.selected + 1) % len(dynamo.ParamNames)
		case "shift+tab":
			m.selected = (m.selected + len(dynamo.ParamNames) - 1) % len(dynamo.ParamNames)
		case "up", "k":
			m.adjust(dynamo.ParamNames[m.selected], adjustFactor)
		case "down", "j":
			m.adjust(dynamo.ParamNames[m.selected], 1/adjustFactor)
		case "+", "=":
			m.scaleTime(2)
		case "-", "_":
			m.scaleTime(0.5)
		case "t":
			m.theme = nextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}

	case tea.BlurMsg:
		m.stepper.Suspend()

	case TickMsg:
		now := time.Time(msg)
		if m.epoch.IsZero() {
			m.epoch = now
		}
		m.stepper.Advance(now.Sub(m.epoch).Seconds())
		if m.stepper.Phase() != sim.Playing {
			m.ticking = false
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) adjust(name string, factor float64) {
	p := m.stepper.Params()
	current := p.GetParams()[name]
	next := current * factor
	if current == 0 && factor > 1 {
		next = 0.01
	}
	m.apply(p, name, next)
}

func (m *Model) scaleTime(factor float64) {
	p := m.stepper.Params()
	next := math.Max(minTimeScale, math.Min(maxTimeScale, p.TimeScale*factor))
	m.apply(p, "time_scale", next)
}

func (m *Model) apply(p dynamo.Params, name string, value float64) {
	np, err := p.WithParam(name, value)
	if err == nil {
		err = np.Validate()
	}
	if err != nil {
		m.status = err.Error()
		return
	}
	m.stepper.SetParams(np)
}

func (m Model) View() string {
	s := m.stepper.Snapshot()
	p := m.stepper.Params()

	column := m.styles.column.Render(m.renderColumn(s, p))
	top := lipgloss.JoinHorizontal(lipgloss.Top, column, m.styles.panel.Render(m.renderStats(s, p)))

	var b strings.Builder
	b.WriteString(top)
	b.WriteString("\n\n")
	if chart := SpeedChart(m.stepper.History(), p, m.theme, chartWidth, chartHeight); chart != "" {
		b.WriteString(chart)
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.styles.warning.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.help.Render(m.helpText()))
	return b.String()
}

// renderColumn draws the body at its height above a ground line. The top
// of the column is the drop height.
func (m Model) renderColumn(s dynamo.State, p dynamo.Params) string {
	c := NewCanvas(columnWidth, columnHeight)
	cx := c.DotsWide() / 2
	span := float64(c.DotsHigh() - 1 - 2*bodyRadius)

	top := p.Height
	if s.Y > top {
		top = s.Y
	}
	frac := 0.0
	if top > 0 {
		frac = s.Y / top
	}
	cy := c.DotsHigh() - 1 - bodyRadius - int(math.Round(frac*span))
	c.Disc(cx, cy, bodyRadius)

	ground := strings.Repeat("▀", columnWidth)
	return m.styles.body.Render(c.String()) + "\n" + m.styles.ground.Render(ground)
}

func (m Model) renderStats(s dynamo.State, p dynamo.Params) string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("FREE FALL"))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(m.styles.label.Render(label))
		b.WriteString(m.styles.value.Render(value))
		b.WriteString("\n")
	}
	row("phase", m.stepper.Phase().String())
	row("time", fmt.Sprintf("%.2f s", s.Time))
	row("height", fmt.Sprintf("%.2f m", s.Y))
	row("velocity", fmt.Sprintf("%.2f m/s", s.V))
	row("accel", fmt.Sprintf("%.2f m/s²", s.A))
	if vt, ok := physics.TerminalVelocity(p); ok {
		row("terminal", fmt.Sprintf("%.2f m/s", vt))
	} else {
		row("terminal", "none (vacuum)")
	}
	if n := m.stepper.Recoveries(); n > 0 {
		row("recoveries", m.styles.warning.Render(fmt.Sprintf("%d", n)))
	}

	b.WriteString("\n")
	values := p.GetParams()
	for i, name := range dynamo.ParamNames {
		line := fmt.Sprintf("%-12s%.3g", name, values[name])
		if i == m.selected {
			b.WriteString(m.styles.active.Render("> " + line))
		} else {
			b.WriteString(m.styles.value.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) helpText() string {
	if !m.showHelp {
		return "space start/pause • r reset • ? help • q quit"
	}
	return strings.Join([]string{
		"space  start / pause",
		"r      reset to the drop configuration",
		"tab    select parameter",
		"↑/↓    adjust parameter by 5%",
		"+/-    double / halve time scale",
		"t      theme (" + m.theme.Name + ")",
		"q      quit",
	}, "\n")
}

// Stepper exposes the driven simulation.
func (m Model) Stepper() *sim.Stepper { return m.stepper }

// Run starts the live view on the terminal and blocks until it quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus()).Run()
	return err
}
