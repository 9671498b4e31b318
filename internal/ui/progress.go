// Package ui renders batch progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"phonosim/internal/pipeline"
)

// maxRows bounds how many per-item lines are shown; corpora directories
// hold hundreds of languages.
const maxRows = 12

type progressModel struct {
	title      string
	events     <-chan pipeline.Event
	spinner    spinner.Model
	prog       progress.Model
	items      []item
	index      map[string]int
	recent     []int // indexes of the most recently touched items
	stageLabel string
	errors     int
	width      int
	done       bool
}

type item struct {
	name   string
	status pipeline.Status
	stage  pipeline.Stage
}

type eventMsg pipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders progress events
// until events is closed. Items not listed up front are added on first sight.
func NewProgressModel(title string, items []string, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		index:   make(map[string]int, len(items)),
		width:   80,
	}
	for _, name := range items {
		m.itemIndex(name)
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(pipeline.Event(msg))
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
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.stageLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.stageLabel)
	}
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %d/%d finished", m.finished(), len(m.items))
	if m.errors > 0 {
		b.WriteString(styleStatus(pipeline.StatusError).Render(fmt.Sprintf(", %d failed", m.errors)))
	}
	b.WriteString("\n\n")

	statusWidth := 8
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}
	for _, idx := range m.recent {
		it := m.items[idx]
		label := statusLabel(it.stage, it.status)
		statusStyled := styleStatus(it.status).Render(fmt.Sprintf("%8s", label))
		fmt.Fprintf(&b, "  %s %s\n", statusStyled, truncate(it.name, nameWidth))
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

func (m *progressModel) itemIndex(name string) int {
	if idx, ok := m.index[name]; ok {
		return idx
	}
	m.items = append(m.items, item{name: name, status: pipeline.StatusQueued})
	idx := len(m.items) - 1
	m.index[name] = idx
	return idx
}

func (m *progressModel) touch(idx int) {
	for i, r := range m.recent {
		if r == idx {
			m.recent = append(m.recent[:i], m.recent[i+1:]...)
			break
		}
	}
	m.recent = append(m.recent, idx)
	if len(m.recent) > maxRows {
		m.recent = m.recent[len(m.recent)-maxRows:]
	}
}

func (m *progressModel) applyEvent(ev pipeline.Event) tea.Cmd {
	if ev.Item == "" {
		m.stageLabel = statusLabel(ev.Stage, ev.Status)
		return nil
	}
	idx := m.itemIndex(ev.Item)
	prev := m.items[idx].status
	m.items[idx].status = ev.Status
	m.items[idx].stage = ev.Stage
	if ev.Status == pipeline.StatusError && prev != pipeline.StatusError {
		m.errors++
	}
	if ev.Status != pipeline.StatusQueued {
		m.touch(idx)
	}
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) finished() int {
	n := 0
	for _, it := range m.items {
		if it.status == pipeline.StatusDone || it.status == pipeline.StatusError {
			n++
		}
	}
	return n
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, it := range m.items {
		total += progressFromStatus(it.status)
	}
	return total / float64(len(m.items))
}

func progressFromStatus(status pipeline.Status) float64 {
	switch status {
	case pipeline.StatusWorking:
		return 0.5
	case pipeline.StatusDone, pipeline.StatusError:
		return 1.0
	default:
		return 0.0
	}
}

func statusLabel(stage pipeline.Stage, status pipeline.Status) string {
	switch status {
	case pipeline.StatusQueued:
		return "queued"
	case pipeline.StatusDone:
		return "done"
	case pipeline.StatusError:
		return "error"
	case pipeline.StatusWorking:
		return stageLabel(stage)
	default:
		return ""
	}
}

func stageLabel(stage pipeline.Stage) string {
	switch stage {
	case pipeline.StageLoad:
		return "loading"
	case pipeline.StageScan:
		return "scanning"
	case pipeline.StageScore:
		return "scoring"
	case pipeline.StageCluster:
		return "grouping"
	default:
		return ""
	}
}

func styleStatus(status pipeline.Status) lipgloss.Style {
	switch status {
	case pipeline.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case pipeline.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case pipeline.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
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
