package tui

import (
	"context"

	"brewdeck/internal/brew"
	"brewdeck/internal/model"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// viewMode selects which main panel is shown.
type viewMode int

const (
	modePackages viewMode = iota
	modeOutdated
	modeDoctor
	modeLog // streaming output of a running batch operation
)

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Client   *brew.Client
	Snapshot model.Snapshot
	Doctor   []model.DoctorEntry
	Loading  bool
	Err      error

	// UI State
	Mode        viewMode
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg

	// Search State
	InputMode       bool
	InputBuffer     textinput.Model
	FilteredIndices []int // indices into packageRows() to show

	// Streaming operation state
	OpTitle   string
	OpLog     []string
	OpRunning bool
	opCancel  context.CancelFunc
	opChunks  <-chan brew.OutputChunk

	// Components
	Spinner         spinner.Model
	DetailsViewport viewport.Model
}

// InitialModel returns the initial state.
func InitialModel(client *brew.Client) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Filter packages..."
	ti.CharLimit = 50
	ti.Width = 24

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return AppModel{
		Client:      client,
		Loading:     true,
		InputBuffer: ti,
		Spinner:     sp,
	}
}

// Init kicks off the snapshot load.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, loadSnapshot(m.Client))
}

// packageRows flattens formulae then casks into one display list.
func (m AppModel) packageRows() []model.PackageInfo {
	rows := make([]model.PackageInfo, 0, len(m.Snapshot.Formulae)+len(m.Snapshot.Casks))
	rows = append(rows, m.Snapshot.Formulae...)
	rows = append(rows, m.Snapshot.Casks...)
	return rows
}
