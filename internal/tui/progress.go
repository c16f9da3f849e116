// Package tui renders a live progress view over per-body lowering: one
// row per template/function body, a spinner while the run is in flight,
// and an aggregate progress bar driven by each body's current Stage.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Stage is a coarse point in a single body's lowering.
type Stage int

const (
	StageQueued Stage = iota
	StageInit         // fixed-order initializers (components/signals/constants/params)
	StageClusters     // subcomponent cluster creation
	StageBody         // statement tree translation
	StagePostpass     // input-information/address-reduce/aux-stack passes
	StageDone
	StageError
)

// Event reports one body's progress. Header identifies the body (its
// template or function name); Err is set only when Stage == StageError.
type Event struct {
	Header string
	Stage  Stage
	Err    error
}

type progressModel struct {
	title   string
	events  <-chan Event
	spinner spinner.Model
	prog    progress.Model
	items   []bodyItem
	index   map[string]int
	width   int
	done    bool
}

type bodyItem struct {
	header string
	stage  Stage
	errMsg string
}

type eventMsg Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders lowering
// progress across every body named in headers, fed from events.
func NewProgressModel(title string, headers []string, events <-chan Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]bodyItem, 0, len(headers))
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		items = append(items, bodyItem{header: h, stage: StageQueued})
		index[h] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		next, cmd := m.prog.Update(msg)
		m.prog = next.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 10
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := truncate(item.header, nameWidth)
		label := stageLabel(item.stage)
		status := styleStage(item.stage).Render(fmt.Sprintf("%10s", label))
		b.WriteString(fmt.Sprintf("  %s %s", status, name))
		if item.stage == StageError && item.errMsg != "" {
			b.WriteString(": " + item.errMsg)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev Event) tea.Cmd {
	idx, ok := m.index[ev.Header]
	if !ok {
		return nil
	}
	m.items[idx].stage = ev.Stage
	if ev.Err != nil {
		m.items[idx].errMsg = ev.Err.Error()
	}

	total := 0.0
	for _, item := range m.items {
		total += progressFromStage(item.stage)
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

func progressFromStage(stage Stage) float64 {
	switch stage {
	case StageInit:
		return 0.2
	case StageClusters:
		return 0.4
	case StageBody:
		return 0.6
	case StagePostpass:
		return 0.85
	case StageDone, StageError:
		return 1.0
	default:
		return 0.0
	}
}

func stageLabel(stage Stage) string {
	switch stage {
	case StageQueued:
		return "queued"
	case StageInit:
		return "init"
	case StageClusters:
		return "clusters"
	case StageBody:
		return "body"
	case StagePostpass:
		return "postpass"
	case StageDone:
		return "done"
	case StageError:
		return "error"
	default:
		return ""
	}
}

func styleStage(stage Stage) lipgloss.Style {
	switch stage {
	case StageDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case StageError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case StageQueued:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
