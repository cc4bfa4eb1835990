package tui

import (
	"fmt"

	"desk-cli/internal/actions"
	"desk-cli/internal/model"
	"desk-cli/internal/mutate"
	"desk-cli/internal/scene"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sc.SetBounds(m.deskBounds())
		m.sizeList()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeBin:
			return m.updateBin(msg)
		case modeContents:
			return m.updateContents(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeHelp:
			if key.Matches(msg, m.keys.Close, m.keys.Help, m.keys.Quit) {
				m.closeOverlay()
			}
			return m, nil
		default:
			return m.updateDesk(msg)
		}
	}
	return m, nil
}

func (m appModel) updateDesk(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.cycle(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.cycle(-1)
		return m, nil
	case key.Matches(msg, m.keys.Left):
		return m.nudge(-1, 0)
	case key.Matches(msg, m.keys.Right):
		return m.nudge(1, 0)
	case key.Matches(msg, m.keys.Up):
		return m.nudge(0, -1)
	case key.Matches(msg, m.keys.Down):
		return m.nudge(0, 1)
	case key.Matches(msg, m.keys.FarLeft):
		return m.nudge(-4, 0)
	case key.Matches(msg, m.keys.FarRight):
		return m.nudge(4, 0)
	case key.Matches(msg, m.keys.FarUp):
		return m.nudge(0, -4)
	case key.Matches(msg, m.keys.FarDown):
		return m.nudge(0, 4)
	case key.Matches(msg, m.keys.New):
		if !m.sc.Bridge().AddSticky() {
			m.setStatus("adding is not available yet")
			return m, nil
		}
		m.selectTop()
		m.setStatus("sticky note added")
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.openAdd()
		return m, nil
	case key.Matches(msg, m.keys.Tear):
		p := m.sc.TearPage("")
		m.selected = p.ID
		m.setStatus("page torn off")
		return m, nil
	case key.Matches(msg, m.keys.Bin):
		m.openBin()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.openHelp()
		return m, nil
	}

	p, ok := m.selectedItem()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Open):
		if m.openContents(p) {
			return m, nil
		}
		if !m.openEdit(p) {
			m.setStatus(fmt.Sprintf("%s cannot be opened", p.ItemKind()))
		}
	case key.Matches(msg, m.keys.Edit):
		if !m.openEdit(p) {
			m.setStatus(fmt.Sprintf("%s cannot be edited", p.ItemKind()))
		}
	case key.Matches(msg, m.keys.Color):
		n, ok := p.(model.StickyNote)
		if !ok {
			m.setStatus("only sticky notes have a colour")
			return m, nil
		}
		next := nextPriority(n.Priority)
		if err := m.sc.SetPriority(n.ID, next); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("priority " + string(next))
	case key.Matches(msg, m.keys.ToTray):
		m.drop(p, scene.DropEvent{ItemID: p.ItemID(), Kind: p.ItemKind(), Target: model.ContainerTray})
	case key.Matches(msg, m.keys.DropHere):
		ext := m.opts.Extent / 2
		pos := p.Pos()
		m.drop(p, m.sc.TargetAt(p.ItemID(), p.ItemKind(), model.Point{X: pos.X + ext, Y: pos.Y + ext}))
	case key.Matches(msg, m.keys.Delete):
		if err := m.sc.Delete(p.ItemKind(), p.ItemID()); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("%s moved to the recycle bin", model.Label(p)))
		m.selectTop()
	}
	return m, nil
}

func nextPriority(p model.Priority) model.Priority {
	switch p {
	case model.PriorityUrgent:
		return model.PriorityLow
	case model.PriorityLow:
		return model.PriorityNormal
	default:
		return model.PriorityUrgent
	}
}

// nudge drags the selected item by whole cells.
func (m appModel) nudge(dx, dy int) (tea.Model, tea.Cmd) {
	p, ok := m.selectedItem()
	if !ok {
		return m, nil
	}
	pos := p.Pos()
	err := m.sc.Drag(scene.DragEvent{
		ItemID: p.ItemID(),
		Kind:   p.ItemKind(),
		X:      pos.X + float64(dx)*m.opts.CellW,
		Y:      pos.Y + float64(dy)*m.opts.CellH,
	})
	if err != nil {
		m.setError(err)
	}
	return m, nil
}

func (m *appModel) drop(p model.Placeable, ev scene.DropEvent) {
	where, err := m.sc.Drop(ev)
	if err != nil {
		m.setError(err)
		return
	}
	switch where {
	case model.ContainerDesk:
		if ev.Target == model.ContainerDesk {
			m.setStatus("dropped on the desk")
		} else {
			m.setStatus(fmt.Sprintf("the %s does not take a %s", ev.Target, p.ItemKind()))
		}
	case model.ContainerFolder:
		name := ev.FolderID
		if f, ok := m.sc.Item(ev.FolderID); ok {
			name = model.Label(f)
		}
		m.setStatus(fmt.Sprintf("%s moved into %s", model.Label(p), name))
		m.selectTop()
	default:
		m.setStatus(fmt.Sprintf("%s moved to the %s", model.Label(p), where))
		m.selectTop()
	}
}

func (m appModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.closeOverlay()
		return m, nil
	case key.Matches(msg, m.keys.Switch):
		m.addKind = (m.addKind + 1) % len(addKinds)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		a := addKinds[m.addKind]
		ran := m.sc.Bridge().Invoke(a, actions.CreateRequest{Name: m.input.Value()})
		m.closeOverlay()
		if !ran {
			m.setStatus("adding is not available yet")
			return m, nil
		}
		m.selectTop()
		m.setStatus(addKindLabel(a) + " added")
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.closeOverlay()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		v := m.input.Value()
		var err error
		switch m.edit.kind {
		case model.KindDeskFolder:
			err = m.sc.RenameFolder(m.edit.id, v)
		case model.KindNotepad:
			err = m.sc.SetNotes(v)
		default:
			err = m.sc.EditText(m.edit.id, v)
		}
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.closeOverlay()
		m.setStatus("saved")
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) selectedBinEntry() (model.DeletedItem, bool) {
	it, ok := m.list.SelectedItem().(binListItem)
	if !ok {
		return model.DeletedItem{}, false
	}
	return it.entry, true
}

func (m appModel) updateBin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close, m.keys.Bin, m.keys.Quit):
		m.closeOverlay()
		return m, nil
	case key.Matches(msg, m.keys.Restore):
		e, ok := m.selectedBinEntry()
		if !ok {
			return m, nil
		}
		p, err := m.sc.RestoreEntry(e)
		if err != nil {
			m.setError(err)
			m.openBin()
			return m, nil
		}
		m.closeOverlay()
		m.selected = p.ItemID()
		m.setStatus(e.Name + " restored")
		return m, nil
	case key.Matches(msg, m.keys.Purge):
		e, ok := m.selectedBinEntry()
		if !ok {
			return m, nil
		}
		m.confirm = confirmPurge
		m.confirmID = e.ID
		m.mode = modeConfirm
		return m, nil
	case key.Matches(msg, m.keys.Empty):
		if len(m.list.Items()) == 0 {
			return m, nil
		}
		m.confirm = confirmEmpty
		m.confirmID = ""
		m.mode = modeConfirm
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		if m.confirm == confirmEmpty {
			n, err := m.sc.EmptyBin(mutate.Confirmed)
			if err != nil {
				m.setError(err)
			} else {
				m.setStatus(fmt.Sprintf("recycle bin emptied (%d)", n))
			}
		} else {
			e, err := m.sc.PermanentlyDelete(m.confirmID, mutate.Confirmed)
			if err != nil {
				m.setError(err)
			} else {
				m.setStatus(e.Name + " permanently deleted")
			}
		}
		m.openBin()
		return m, nil
	case key.Matches(msg, m.keys.No):
		m.mode = modeBin
		return m, nil
	}
	return m, nil
}

func (m appModel) updateContents(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Close, m.keys.Open, m.keys.Quit) {
		m.closeOverlay()
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}
