// ABOUTME: Tests for the TUI model
// ABOUTME: Covers status updates, key handling, and view rendering

package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewModelDefaults(t *testing.T) {
	m := NewModel("clip.mp4", NewControls())

	if m.video != "clip.mp4" {
		t.Errorf("video = %q, want %q", m.video, "clip.mp4")
	}
	if m.stage != "waiting" {
		t.Errorf("stage = %q, want %q", m.stage, "waiting")
	}
	if m.playback != "idle" {
		t.Errorf("playback = %q, want %q", m.playback, "idle")
	}
	if m.hasAudio {
		t.Error("hasAudio = true, want false")
	}
}

func TestApplyStatusPartialUpdates(t *testing.T) {
	m := NewModel("clip.mp4", nil)

	m.applyStatus(StatusMsg{Stage: "analyzing scenes"})
	if m.stage != "analyzing scenes" {
		t.Errorf("stage = %q, want %q", m.stage, "analyzing scenes")
	}
	if m.playback != "idle" {
		t.Errorf("playback changed to %q, want untouched %q", m.playback, "idle")
	}

	m.applyStatus(StatusMsg{Genre: "documentary", Narration: "The storm rolls in."})
	if m.genre != "documentary" {
		t.Errorf("genre = %q, want %q", m.genre, "documentary")
	}
	if m.narration != "The storm rolls in." {
		t.Errorf("narration = %q, want %q", m.narration, "The storm rolls in.")
	}
	if m.stage != "analyzing scenes" {
		t.Errorf("stage changed to %q, want untouched", m.stage)
	}

	busy := true
	hasAudio := true
	total := 3 * time.Second
	m.applyStatus(StatusMsg{Busy: &busy, HasAudio: &hasAudio, Duration: &total})
	if !m.busy {
		t.Error("busy = false, want true")
	}
	if !m.hasAudio {
		t.Error("hasAudio = false, want true")
	}
	if m.total != total {
		t.Errorf("total = %v, want %v", m.total, total)
	}

	m.applyStatus(StatusMsg{Err: "analysis failed"})
	if m.err != "analysis failed" {
		t.Errorf("err = %q, want %q", m.err, "analysis failed")
	}
	if !m.hasAudio {
		t.Error("hasAudio cleared by unrelated update")
	}
}

func TestUpdateWindowSize(t *testing.T) {
	m := NewModel("clip.mp4", nil)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	if m.width != 80 || m.height != 24 {
		t.Errorf("size = %dx%d, want 80x24", m.width, m.height)
	}
}

func TestKeyCommands(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want Command
	}{
		{"space toggles play", tea.KeyMsg{Type: tea.KeySpace}, CmdTogglePlay},
		{"s stops", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}, CmdStop},
		{"e exports", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}}, CmdExport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controls := NewControls()
			m := NewModel("clip.mp4", controls)

			if _, cmd := m.Update(tt.key); cmd != nil {
				t.Errorf("cmd = %v, want nil", cmd)
			}

			select {
			case got := <-controls.Commands:
				if got != tt.want {
					t.Errorf("command = %v, want %v", got, tt.want)
				}
			default:
				t.Fatal("no command sent")
			}
		})
	}
}

func TestQuitKeySendsQuitCommand(t *testing.T) {
	controls := NewControls()
	m := NewModel("clip.mp4", controls)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit key returned nil cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key did not return tea.Quit")
	}

	select {
	case got := <-controls.Commands:
		if got != CmdQuit {
			t.Errorf("command = %v, want CmdQuit", got)
		}
	default:
		t.Fatal("no quit command sent")
	}
}

func TestKeyWithoutControlsDoesNotPanic(t *testing.T) {
	m := NewModel("clip.mp4", nil)

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace}); cmd != nil {
		t.Errorf("cmd = %v, want nil", cmd)
	}
}

func TestTickAdvancesSpinnerWhenBusy(t *testing.T) {
	m := NewModel("clip.mp4", nil)
	m.busy = true

	updated, cmd := m.Update(tickMsg(time.Now()))
	m = updated.(Model)

	if m.spinner != 1 {
		t.Errorf("spinner = %d, want 1", m.spinner)
	}
	if cmd == nil {
		t.Error("tick did not re-arm")
	}

	m.busy = false
	updated, _ = m.Update(tickMsg(time.Now()))
	m = updated.(Model)
	if m.spinner != 1 {
		t.Errorf("spinner advanced while idle: %d", m.spinner)
	}
}

func TestViewLoadingBeforeFirstResize(t *testing.T) {
	m := NewModel("clip.mp4", nil)

	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q, want %q", got, "Loading...")
	}
}

func TestViewShowsState(t *testing.T) {
	m := NewModel("clip.mp4", nil)
	m.width = 80
	m.height = 24

	hasAudio := true
	total := 12 * time.Second
	m.applyStatus(StatusMsg{
		Stage:     "ready",
		Genre:     "documentary",
		Narration: "The storm rolls in.",
		HasAudio:  &hasAudio,
		Playback:  "playing",
		Duration:  &total,
	})

	view := m.View()

	for _, want := range []string{
		"CineVoice Narrator",
		"clip.mp4",
		"ready",
		"documentary",
		"The storm rolls in.",
		"playing",
		"0:12",
		"space:Play/Pause",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestViewWithoutReport(t *testing.T) {
	m := NewModel("clip.mp4", nil)
	m.width = 80

	view := m.View()
	if !strings.Contains(view, "No narration yet") {
		t.Error("View() missing placeholder for empty report")
	}
	if !strings.Contains(view, "Audio:  none") {
		t.Error("View() missing audio placeholder")
	}
}

func TestViewShowsErrorLine(t *testing.T) {
	m := NewModel("clip.mp4", nil)
	m.width = 80
	m.applyStatus(StatusMsg{Err: "synthesis failed"})

	if !strings.Contains(m.View(), "synthesis failed") {
		t.Error("View() missing error line")
	}
}

func TestPlaybackIcon(t *testing.T) {
	tests := []struct {
		state string
		want  string
	}{
		{"playing", "▶"},
		{"paused", "⏸"},
		{"ended", "✓"},
		{"idle", "■"},
		{"stopped", "■"},
	}

	for _, tt := range tests {
		if got := playbackIcon(tt.state); got != tt.want {
			t.Errorf("playbackIcon(%q) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short stays", "abc", 10, "abc"},
		{"exact stays", "abcde", 5, "abcde"},
		{"long trims", "abcdefghij", 8, "abcde..."},
		{"tiny max", "abcdef", 2, "ab"},
		{"multibyte", "héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{3 * time.Second, "0:03"},
		{62 * time.Second, "1:02"},
		{(2*time.Second + 600*time.Millisecond), "0:03"},
		{10 * time.Minute, "10:00"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
