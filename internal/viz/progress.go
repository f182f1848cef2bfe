package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type (
	// ProgressMsg reports done of total tasks finished.
	ProgressMsg struct{ Done, Total int }
	// FinishedMsg ends the program; Err is the farm's result.
	FinishedMsg struct{ Err error }
	TickMsg     time.Time
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const barWidth = 40

// ProgressModel shows a running farm. Quitting before the farm finishes
// calls cancel.
type ProgressModel struct {
	module   string
	workers  int
	done     int
	total    int
	start    time.Time
	frame    int
	err      error
	finished bool
	cancel   func()
}

func NewProgressModel(module string, total, workers int, cancel func()) ProgressModel {
	return ProgressModel{
		module:  module,
		workers: workers,
		total:   total,
		start:   time.Now(),
		cancel:  cancel,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/10, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m ProgressModel) Init() tea.Cmd {
	return tick()
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.finished && m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case ProgressMsg:
		if msg.Done > m.done {
			m.done = msg.Done
		}
		m.total = msg.Total
	case FinishedMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit
	case TickMsg:
		if m.finished {
			return m, nil
		}
		m.frame++
		return m, tick()
	}
	return m, nil
}

func (m ProgressModel) Done() int      { return m.done }
func (m ProgressModel) Err() error     { return m.err }
func (m ProgressModel) Finished() bool { return m.finished }

func (m ProgressModel) View() string {
	var b strings.Builder

	status := spinnerFrames[m.frame%len(spinnerFrames)]
	if m.finished {
		status = "✓"
		if m.err != nil {
			status = "✗"
		}
	}
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%s %s on %d workers", status, m.module, m.workers)))
	b.WriteString("\n\n")

	fraction := 0.0
	if m.total > 0 {
		fraction = float64(m.done) / float64(m.total)
	}
	b.WriteString(ProgressBar(fraction, barWidth))
	b.WriteString(fmt.Sprintf(" %5.1f%%\n\n", 100*fraction))

	elapsed := time.Since(m.start)
	b.WriteString(Metric("tasks", fmt.Sprintf("%d/%d", m.done, m.total)))
	b.WriteString("  ")
	b.WriteString(Metric("elapsed", elapsed.Round(time.Second).String()))
	if m.done > 0 && m.done < m.total {
		eta := time.Duration(float64(elapsed) / float64(m.done) * float64(m.total-m.done))
		b.WriteString("  ")
		b.WriteString(Metric("eta", eta.Round(time.Second).String()))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n" + ErrorText.Render(m.err.Error()) + "\n")
	}
	if !m.finished {
		b.WriteString(MetricLabel.Render("\nq to cancel\n"))
	}
	return b.String()
}
