package tui

import (
	"desk-cli/internal/actions"
	"desk-cli/internal/model"
	"desk-cli/internal/scene"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
)

type mode int

const (
	modeDesk mode = iota
	modeAdd
	modeEdit
	modeBin
	modeContents
	modeConfirm
	modeHelp
)

type confirmAction int

const (
	confirmPurge confirmAction = iota
	confirmEmpty
)

// Options tune how desk units map onto terminal cells.
type Options struct {
	// Extent is the side of an item's footprint in desk units.
	Extent float64
	// CellW and CellH are desk units per terminal column and row.
	CellW float64
	CellH float64
}

func (o Options) normalized() Options {
	if o.Extent <= 0 {
		o.Extent = scene.DefaultExtent
	}
	if o.CellW <= 0 {
		o.CellW = defaultCellW
	}
	if o.CellH <= 0 {
		o.CellH = defaultCellH
	}
	return o
}

// addKinds is the cycle order of the add modal.
var addKinds = []actions.Action{actions.AddFile, actions.AddFolder, actions.AddSticky}

type editTarget struct {
	kind model.Kind
	id   string
}

type appModel struct {
	sc   *scene.Scene
	keys keyMap
	opts Options

	width  int
	height int

	mode     mode
	selected string

	input   textinput.Model
	addKind int
	edit    editTarget

	// list backs the bin and the folder/tray contents overlays.
	list          list.Model
	contentsTitle string

	confirm   confirmAction
	confirmID string

	helpBody string

	status    string
	statusErr bool
}

func newAppModel(sc *scene.Scene, opts Options) appModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	m := appModel{
		sc:    sc,
		keys:  defaultKeyMap(),
		opts:  opts.normalized(),
		input: ti,
		list:  l,
	}
	m.selectTop()
	return m
}

// stack is the live paint order, bottom first.
func (m appModel) stack() []model.Placeable { return m.sc.Stack() }

func (m appModel) selectedItem() (model.Placeable, bool) {
	if m.selected == "" {
		return nil, false
	}
	return m.sc.Item(m.selected)
}

func (m *appModel) selectTop() {
	st := m.stack()
	if len(st) == 0 {
		m.selected = ""
		return
	}
	m.selected = st[len(st)-1].ItemID()
}

// cycle moves the selection through the stack; dir is +1 or -1.
func (m *appModel) cycle(dir int) {
	st := m.stack()
	if len(st) == 0 {
		m.selected = ""
		return
	}
	idx := -1
	for i, p := range st {
		if p.ItemID() == m.selected {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.selectTop()
		return
	}
	idx = (idx + dir + len(st)) % len(st)
	m.selected = st[idx].ItemID()
}

func (m *appModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *appModel) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// canvasRows is the height left for the desk after the status and help lines.
func (m appModel) canvasRows() int {
	return max(m.height-2, 1)
}

func (m appModel) deskBounds() model.Bounds {
	return model.Bounds{
		MaxX: max(float64(m.width)*m.opts.CellW-m.opts.Extent, 0),
		MaxY: max(float64(m.canvasRows())*m.opts.CellH-m.opts.Extent, 0),
	}
}
