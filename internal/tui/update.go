package tui

import (
	"context"
	"strings"

	"brewdeck/internal/brew"
	"brewdeck/internal/model"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgSnapshotReady indicates the snapshot queries have completed.
type MsgSnapshotReady model.Snapshot

// MsgDoctorReady carries parsed doctor output.
type MsgDoctorReady []model.DoctorEntry

// MsgError indicates an error occurred.
type MsgError error

// MsgChunk is one unit of streamed output from a running operation.
type MsgChunk brew.OutputChunk

// MsgOpDone indicates the streaming operation's channel closed.
type MsgOpDone struct{}

func loadSnapshot(client *brew.Client) tea.Cmd {
	return func() tea.Msg {
		snap, err := client.Snapshot(context.Background())
		if err != nil {
			return MsgError(err)
		}
		return MsgSnapshotReady(snap)
	}
}

func runDoctor(client *brew.Client) tea.Cmd {
	return func() tea.Msg {
		entries, err := client.Doctor(context.Background())
		if err != nil {
			return MsgError(err)
		}
		return MsgDoctorReady(entries)
	}
}

// waitForChunk pulls the next chunk off a batch stream. Re-issued after
// every MsgChunk so the channel is consumed one message at a time.
func waitForChunk(chunks <-chan brew.OutputChunk) tea.Cmd {
	return func() tea.Msg {
		chunk, ok := <-chunks
		if !ok {
			return MsgOpDone{}
		}
		return MsgChunk(chunk)
	}
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = msg.Width - 4
		m.DetailsViewport.Height = msg.Height - 6
		return m, nil

	case MsgSnapshotReady:
		m.Loading = false
		m.Snapshot = model.Snapshot(msg)
		m.resetFilter()
		return m, nil

	case MsgDoctorReady:
		m.Loading = false
		m.Doctor = msg
		m.Mode = modeDoctor
		return m, nil

	case MsgError:
		m.Err = msg
		m.Loading = false
		m.OpRunning = false
		return m, nil

	case MsgChunk:
		m.OpLog = append(m.OpLog, strings.TrimRight(msg.Text, "\n"))
		m.DetailsViewport.SetContent(strings.Join(m.OpLog, "\n"))
		m.DetailsViewport.GotoBottom()
		return m, waitForChunk(m.opChunks)

	case MsgOpDone:
		m.OpRunning = false
		m.opCancel = nil
		// Refresh: the operation changed the installed set.
		m.Loading = true
		return m, tea.Batch(m.Spinner.Tick, loadSnapshot(m.Client))

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.InputMode {
		switch msg.Type {
		case tea.KeyEnter:
			m.InputMode = false
			m.applyFilter()
			return m, nil
		case tea.KeyEsc:
			m.InputMode = false
			m.InputBuffer.Blur()
			m.InputBuffer.SetValue("")
			m.resetFilter()
			return m, nil
		}
		m.InputBuffer, cmd = m.InputBuffer.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		if m.opCancel != nil {
			m.opCancel()
		}
		return m, tea.Quit

	case "esc":
		if m.Mode != modePackages && !m.OpRunning {
			m.Mode = modePackages
			return m, nil
		}

	case "up", "k":
		if m.SelectedIdx > 0 {
			m.SelectedIdx--
		}

	case "down", "j":
		if m.SelectedIdx < m.visibleCount()-1 {
			m.SelectedIdx++
		}

	case "/":
		if m.Mode == modePackages {
			m.InputMode = true
			m.InputBuffer.Focus()
			return m, nil
		}

	case "o":
		if !m.OpRunning {
			m.Mode = modeOutdated
			m.SelectedIdx = 0
		}

	case "d":
		if !m.OpRunning {
			m.Loading = true
			return m, runDoctor(m.Client)
		}

	case "u":
		// Upgrade everything that is outdated, streaming the log.
		if m.OpRunning || len(m.Snapshot.Outdated) == 0 {
			return m, nil
		}
		names := make([]string, 0, len(m.Snapshot.Outdated))
		for _, o := range m.Snapshot.Outdated {
			if !o.Pinned {
				names = append(names, o.Name)
			}
		}
		return m.startBatch("Upgrading packages", func(ctx context.Context) <-chan brew.OutputChunk {
			return m.Client.UpgradeAll(ctx, names)
		})
	}

	return m, nil
}

// startBatch switches to the log view and begins consuming the stream.
func (m AppModel) startBatch(title string, start func(context.Context) <-chan brew.OutputChunk) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.opCancel = cancel
	m.opChunks = start(ctx)
	m.OpTitle = title
	m.OpLog = nil
	m.OpRunning = true
	m.Mode = modeLog
	m.DetailsViewport.SetContent("")
	return m, waitForChunk(m.opChunks)
}

func (m AppModel) visibleCount() int {
	switch m.Mode {
	case modeOutdated:
		return len(m.Snapshot.Outdated)
	case modeDoctor:
		return len(m.Doctor)
	default:
		return len(m.FilteredIndices)
	}
}

func (m *AppModel) resetFilter() {
	rows := m.packageRows()
	m.FilteredIndices = make([]int, len(rows))
	for i := range rows {
		m.FilteredIndices[i] = i
	}
	m.SelectedIdx = 0
}

func (m *AppModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.InputBuffer.Value()))
	if query == "" {
		m.resetFilter()
		return
	}
	m.FilteredIndices = m.FilteredIndices[:0]
	for i, pkg := range m.packageRows() {
		if strings.Contains(strings.ToLower(pkg.Name), query) {
			m.FilteredIndices = append(m.FilteredIndices, i)
			continue
		}
		for _, name := range pkg.Names {
			if strings.Contains(strings.ToLower(name), query) {
				m.FilteredIndices = append(m.FilteredIndices, i)
				break
			}
		}
	}
	m.SelectedIdx = 0
}
