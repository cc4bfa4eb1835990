package tui

import (
	"fmt"
	"strings"

	"desk-cli/internal/actions"
	"desk-cli/internal/docs"
	"desk-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

type binListItem struct {
	entry model.DeletedItem
}

func (i binListItem) Title() string { return i.entry.Name }
func (i binListItem) Description() string {
	return fmt.Sprintf("%s  deleted %s", i.entry.Kind, i.entry.DeletedAt.Local().Format("Jan 2 15:04"))
}
func (i binListItem) FilterValue() string { return i.entry.Name }

type contentsListItem struct {
	title string
	desc  string
}

func (i contentsListItem) Title() string       { return i.title }
func (i contentsListItem) Description() string { return i.desc }
func (i contentsListItem) FilterValue() string { return i.title }

func contentsItems(files []model.FileRecord, folders []model.DeskFolder) []list.Item {
	out := make([]list.Item, 0, len(files)+len(folders))
	for _, f := range folders {
		out = append(out, contentsListItem{title: f.Name + "/", desc: fmt.Sprintf("folder  %d files", len(f.Files))})
	}
	for _, f := range files {
		out = append(out, contentsListItem{title: f.Name, desc: strings.Join([]string{f.Type, f.Size, f.Date}, "  ")})
	}
	return out
}

func (m *appModel) sizeList() {
	w := modalBodyWidth(m.width)
	h := max(m.height-10, 4)
	m.list.SetSize(w, h)
}

func (m *appModel) openBin() {
	entries := m.sc.RecycleBin()
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, binListItem{entry: e})
	}
	m.list.SetItems(items)
	m.list.Select(0)
	m.list.Title = fmt.Sprintf("Recycle bin (%d)", len(entries))
	m.sizeList()
	m.mode = modeBin
}

func (m *appModel) openContents(p model.Placeable) bool {
	switch v := p.(type) {
	case model.DeskFolder:
		f, err := m.sc.OpenFolder(v.ID)
		if err != nil {
			m.setError(err)
			return false
		}
		m.contentsTitle = f.Name
		m.list.SetItems(contentsItems(f.Files, f.Folders))
	case model.FileTray:
		t := m.sc.TrayContents()
		m.contentsTitle = "File tray"
		m.list.SetItems(contentsItems(t.Files, t.Folders))
	default:
		return false
	}
	m.list.Select(0)
	m.list.Title = fmt.Sprintf("%s (%d)", m.contentsTitle, len(m.list.Items()))
	m.sizeList()
	m.mode = modeContents
	return true
}

func (m *appModel) openAdd() {
	m.addKind = 0
	m.input.SetValue("")
	m.input.Placeholder = "name"
	m.input.Focus()
	m.mode = modeAdd
}

// openEdit starts editing the selected item; ok is false for kinds with nothing to edit.
func (m *appModel) openEdit(p model.Placeable) bool {
	var value string
	switch v := p.(type) {
	case model.StickyNote:
		value = v.Text
	case model.TornPage:
		value = v.Text
	case model.DeskFolder:
		value = v.Name
	case model.Notepad:
		value = v.Notes
	default:
		return false
	}
	m.edit = editTarget{kind: p.ItemKind(), id: p.ItemID()}
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = ""
	m.input.Focus()
	m.mode = modeEdit
	return true
}

func (m *appModel) openHelp() {
	md, _ := docs.Get("keys")
	m.helpBody = docs.Render(md, modalBodyWidth(m.width), docs.Style())
	m.mode = modeHelp
}

func (m *appModel) closeOverlay() {
	m.input.Blur()
	m.mode = modeDesk
}

func addKindLabel(a actions.Action) string {
	switch a {
	case actions.AddFile:
		return "File"
	case actions.AddFolder:
		return "Folder"
	default:
		return "Sticky note"
	}
}

func (m appModel) renderAddModal() string {
	tabs := make([]string, 0, len(addKinds))
	for i, a := range addKinds {
		st := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
		if i == m.addKind {
			st = st.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
		}
		tabs = append(tabs, st.Render(addKindLabel(a)))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if addKinds[m.addKind] != actions.AddSticky {
		body += "\n\n" + m.input.View()
	}
	body += "\n\n" + styleMuted().Render("tab: kind   enter: add   esc: cancel")
	return renderModalBox(m.width, "Add to desk", body)
}

func (m appModel) renderEditModal() string {
	title := "Edit"
	switch m.edit.kind {
	case model.KindDeskFolder:
		title = "Rename folder"
	case model.KindNotepad:
		title = "Notepad"
	}
	body := m.input.View() + "\n\n" + styleMuted().Render("enter: save   esc: cancel")
	return renderModalBox(m.width, title, body)
}

func (m appModel) renderListModal(title, help string) string {
	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = styleMuted().Render("(empty)")
	}
	return renderModalBox(m.width, title, body+"\n\n"+styleMuted().Render(help))
}

func (m appModel) renderConfirmModal() string {
	body := "Empty the recycle bin? Entries cannot be restored afterwards."
	if m.confirm == confirmPurge {
		name := m.confirmID
		for _, e := range m.sc.RecycleBin() {
			if e.ID == m.confirmID {
				name = e.Name
			}
		}
		body = fmt.Sprintf("Permanently delete %q? It cannot be restored afterwards.", name)
	}
	body += "\n\n" + styleMuted().Render("y: yes   n/esc: no")
	return renderModalBox(m.width, "Confirm", body)
}

func (m appModel) renderHelpModal() string {
	return renderModalBox(m.width, "Help", m.helpBody+"\n\n"+styleMuted().Render("esc: close"))
}
