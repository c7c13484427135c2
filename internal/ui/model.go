// ABOUTME: Bubble Tea model for the terminal UI
// ABOUTME: Renders production progress, the narration report, and playback state

package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const innerWidth = 52

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Model represents the TUI state
type Model struct {
	// Production
	video   string
	stage   string
	busy    bool
	spinner int

	// Report
	genre     string
	narration string

	// Playback
	hasAudio   bool
	playback   string
	total      time.Duration
	exportPath string
	err        string

	// Dimensions
	width  int
	height int

	controls *Controls
}

// StatusMsg updates the displayed state. Zero-valued fields leave the
// current value unchanged, so senders only fill in what changed.
type StatusMsg struct {
	Stage      string
	Busy       *bool
	Genre      string
	Narration  string
	HasAudio   *bool
	Playback   string
	Duration   *time.Duration
	ExportPath string
	Err        string
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.busy {
			m.spinner = (m.spinner + 1) % len(spinnerFrames)
		}
		return m, tick()

	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.send(CmdQuit)
		return m, tea.Quit
	case " ":
		m.send(CmdTogglePlay)
	case "s":
		m.send(CmdStop)
	case "e":
		m.send(CmdExport)
	}
	return m, nil
}

// send forwards a command without blocking the update loop.
func (m Model) send(cmd Command) {
	if m.controls == nil {
		return
	}
	select {
	case m.controls.Commands <- cmd:
	default:
	}
}

func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Stage != "" {
		m.stage = msg.Stage
	}
	if msg.Busy != nil {
		m.busy = *msg.Busy
	}
	if msg.Genre != "" {
		m.genre = msg.Genre
	}
	if msg.Narration != "" {
		m.narration = msg.Narration
	}
	if msg.HasAudio != nil {
		m.hasAudio = *msg.HasAudio
	}
	if msg.Playback != "" {
		m.playback = msg.Playback
	}
	if msg.Duration != nil {
		m.total = *msg.Duration
	}
	if msg.ExportPath != "" {
		m.exportPath = msg.ExportPath
	}
	if msg.Err != "" {
		m.err = msg.Err
	}
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := boxTop()
	s += row(fmt.Sprintf("Video:  %s", m.video))
	s += row(fmt.Sprintf("Stage:  %s", m.stageLine()))
	s += boxRule()
	s += m.renderReport()
	s += boxRule()
	s += m.renderAudio()
	s += boxRule()
	s += row("space:Play/Pause  s:Stop  e:Export  q:Quit")
	s += boxBottom()
	return s
}

func (m Model) stageLine() string {
	if m.busy {
		return spinnerFrames[m.spinner] + " " + m.stage
	}
	return m.stage
}

func (m Model) renderReport() string {
	if m.genre == "" && m.narration == "" {
		return row("No narration yet")
	}
	s := row(fmt.Sprintf("Genre:     %s", m.genre))
	s += row(fmt.Sprintf("Narration: %s", m.narration))
	return s
}

func (m Model) renderAudio() string {
	var audio string
	if m.hasAudio {
		audio = fmt.Sprintf("Audio:  %s %s", playbackIcon(m.playback), m.playback)
		if m.total > 0 {
			audio += fmt.Sprintf(" (%s)", formatDuration(m.total))
		}
	} else {
		audio = "Audio:  none"
	}

	s := row(audio)
	if m.exportPath != "" {
		s += row(fmt.Sprintf("Export: saved to %s", m.exportPath))
	}
	if m.err != "" {
		s += row(fmt.Sprintf("Error:  %s", m.err))
	}
	return s
}

func playbackIcon(state string) string {
	switch state {
	case "playing":
		return "▶"
	case "paused":
		return "⏸"
	case "ended":
		return "✓"
	default:
		return "■"
	}
}

func boxTop() string {
	title := " CineVoice Narrator "
	return "┌─" + title + strings.Repeat("─", innerWidth+1-len(title)) + "┐\n"
}

func boxRule() string {
	return "├" + strings.Repeat("─", innerWidth+2) + "┤\n"
}

func boxBottom() string {
	return "└" + strings.Repeat("─", innerWidth+2) + "┘\n"
}

func row(text string) string {
	return fmt.Sprintf("│ %-*s │\n", innerWidth, truncate(text, innerWidth))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	min := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", min, sec)
}
