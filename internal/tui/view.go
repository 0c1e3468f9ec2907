package tui

import (
	"fmt"
	"strings"

	"brewdeck/internal/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(lipgloss.Color("205")) // Pinkish

	unselectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(4).
				Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	logStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63"))
)

func (m AppModel) View() string {
	if m.Err != nil {
		return fmt.Sprintf("\n  %s %v\n\n  Press q to quit.\n", errStyle.Render("Error:"), m.Err)
	}
	if m.Loading {
		return fmt.Sprintf("\n  %s Talking to brew... please wait.\n", m.Spinner.View())
	}

	var body string
	switch m.Mode {
	case modeOutdated:
		body = m.viewOutdated()
	case modeDoctor:
		body = m.viewDoctor()
	case modeLog:
		body = m.viewLog()
	default:
		body = m.viewPackages()
	}

	return titleStyle.Render("brewdeck") + "\n\n" + body + "\n" + m.viewFooter()
}

func (m AppModel) viewPackages() string {
	rows := m.packageRows()
	var sb strings.Builder

	if m.InputMode {
		sb.WriteString("  Filter: " + m.InputBuffer.View() + "\n\n")
	}

	visible := m.FilteredIndices
	height := m.listHeight()
	start, end := window(m.SelectedIdx, len(visible), height)

	for i := start; i < end; i++ {
		pkg := rows[visible[i]]
		line := fmt.Sprintf("%s %-30s %-12s %s",
			packageIcon(pkg), pkg.Name, pkg.Version, dimStyle.Render(shortDesc(pkg.Desc, 40)))
		if i == m.SelectedIdx {
			sb.WriteString(selectedItemStyle.Render("> "+line) + "\n")
		} else {
			sb.WriteString(unselectedItemStyle.Render(line) + "\n")
		}
	}
	if len(visible) == 0 {
		sb.WriteString(dimStyle.Render("  No packages match.") + "\n")
	}
	sb.WriteString(fmt.Sprintf("\n  %d formulae, %d casks, %d outdated\n",
		len(m.Snapshot.Formulae), len(m.Snapshot.Casks), len(m.Snapshot.Outdated)))
	return sb.String()
}

func (m AppModel) viewOutdated() string {
	var sb strings.Builder
	sb.WriteString("  Outdated packages\n\n")
	height := m.listHeight()
	start, end := window(m.SelectedIdx, len(m.Snapshot.Outdated), height)

	for i := start; i < end; i++ {
		o := m.Snapshot.Outdated[i]
		line := fmt.Sprintf("%-30s %s -> %s", o.Name,
			strings.Join(o.InstalledVersions, ", "), o.CurrentVersion)
		if o.Pinned {
			line += " " + dimStyle.Render("(pinned, skipped)")
		}
		if i == m.SelectedIdx {
			sb.WriteString(selectedItemStyle.Render("> "+line) + "\n")
		} else {
			sb.WriteString(unselectedItemStyle.Render(line) + "\n")
		}
	}
	if len(m.Snapshot.Outdated) == 0 {
		sb.WriteString(dimStyle.Render("  Everything is up to date.") + "\n")
	}
	return sb.String()
}

func (m AppModel) viewDoctor() string {
	var sb strings.Builder
	sb.WriteString("  Doctor\n\n")
	if len(m.Doctor) == 0 {
		sb.WriteString(dimStyle.Render("  Your system is ready to brew.") + "\n")
		return sb.String()
	}
	for _, entry := range m.Doctor {
		switch entry.Severity {
		case model.SeverityError:
			sb.WriteString("  " + errStyle.Render("Error: "+entry.Message) + "\n")
		default:
			sb.WriteString("  " + warnStyle.Render("Warning: "+entry.Message) + "\n")
		}
		for _, d := range entry.Details {
			sb.WriteString(dimStyle.Render("      "+d) + "\n")
		}
	}
	return sb.String()
}

func (m AppModel) viewLog() string {
	header := "  " + m.OpTitle
	if m.OpRunning {
		header += " " + m.Spinner.View()
	} else {
		header += " " + model.IconDone
	}
	return header + "\n" + logStyle.Render(m.DetailsViewport.View())
}

func (m AppModel) viewFooter() string {
	if m.OpRunning {
		return dimStyle.Render("  q quit (cancels the running operation)")
	}
	return dimStyle.Render("  ↑/↓ move · / filter · o outdated · d doctor · u upgrade all · q quit")
}

// listHeight is the number of list rows that fit in the window.
func (m AppModel) listHeight() int {
	h := m.WindowSize.Height - 8
	if h < 5 {
		h = 5
	}
	return h
}

// window computes the visible [start, end) slice of a list so the
// selection stays on screen.
func window(selected, total, height int) (int, int) {
	if total <= height {
		return 0, total
	}
	start := selected - height/2
	if start < 0 {
		start = 0
	}
	if start+height > total {
		start = total - height
	}
	return start, start + height
}

func packageIcon(pkg model.PackageInfo) string {
	switch {
	case pkg.Pinned:
		return model.IconPinned
	case pkg.Outdated:
		return model.IconOutdated
	case pkg.IsCask:
		return model.IconCask
	}
	return model.IconOK
}

func shortDesc(desc string, width int) string {
	desc = strings.ReplaceAll(desc, "\n", " ")
	if width > 3 && len(desc) > width {
		return desc[:width-3] + "..."
	}
	return desc
}
