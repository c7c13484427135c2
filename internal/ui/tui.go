// ABOUTME: TUI entry point and control channel wiring
// ABOUTME: Connects keyboard commands to the application loop

package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Command is a control request issued from the TUI
type Command int

const (
	// CmdTogglePlay starts playback or toggles pause
	CmdTogglePlay Command = iota
	// CmdStop halts playback
	CmdStop
	// CmdExport saves the narration audio as a WAV file
	CmdExport
	// CmdQuit exits the application
	CmdQuit
)

// Controls carries commands from the TUI to the application
type Controls struct {
	Commands chan Command
}

// NewControls creates a control channel set
func NewControls() *Controls {
	return &Controls{
		Commands: make(chan Command, 10),
	}
}

// NewModel creates a new TUI model for the given video
func NewModel(video string, controls *Controls) Model {
	return Model{
		video:    video,
		stage:    "waiting",
		playback: "idle",
		controls: controls,
	}
}

// Run builds the TUI program
func Run(video string, controls *Controls) *tea.Program {
	return tea.NewProgram(NewModel(video, controls), tea.WithAltScreen())
}
