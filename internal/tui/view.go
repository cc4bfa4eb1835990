package tui

import (
	"fmt"
	"strings"

	"desk-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading…"
	}

	var overlay string
	switch m.mode {
	case modeAdd:
		overlay = m.renderAddModal()
	case modeEdit:
		overlay = m.renderEditModal()
	case modeBin:
		overlay = m.renderListModal(m.list.Title, "enter: restore   X: purge   E: empty   esc: close")
	case modeContents:
		overlay = m.renderListModal(m.list.Title, "esc: close")
	case modeConfirm:
		overlay = m.renderConfirmModal()
	case modeHelp:
		overlay = m.renderHelpModal()
	}
	if overlay != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}

	desk := renderDesk(m.stack(), m.selected, m.width, m.canvasRows(), m.opts.CellW, m.opts.CellH, m.opts.Extent)
	return strings.Join([]string{desk, m.statusLine(), m.helpLine()}, "\n")
}

func (m appModel) statusLine() string {
	left := "nothing selected"
	if p, ok := m.selectedItem(); ok {
		pos := p.Pos()
		left = fmt.Sprintf("%s %q @%.0f,%.0f z%d", p.ItemKind(), model.Label(p), pos.X, pos.Y, p.Z())
	}
	bin := len(m.sc.RecycleBin())
	if bin > 0 {
		left += fmt.Sprintf("   bin: %d", bin)
	}
	line := left
	if m.status != "" {
		st := styleMuted()
		if m.statusErr {
			st = styleError()
		}
		line += "   " + st.Render(m.status)
	}
	return xansi.Truncate(line, m.width, "…")
}

func (m appModel) helpLine() string {
	return styleMuted().Render(xansi.Truncate(helpLine(m.keys.deskHelp()), m.width, "…"))
}
