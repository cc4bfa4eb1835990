package store

import (
	"sort"
	"strings"

	"desk-cli/internal/model"
)

// DB is the item registry: one ordered collection per kind, the two singletons and the
// recycle bin ledger. It is not safe for concurrent use; callers deliver one mutation at
// a time.
type DB struct {
	StickyNotes []model.StickyNote
	Files       []model.DeskFile
	Folders     []model.DeskFolder
	TornPages   []model.TornPage
	Notepad     model.Notepad
	Tray        model.FileTray
	Bin         Bin

	z   ZOrder
	ids IDSource
}

func New() *DB {
	return &DB{
		Notepad: model.Notepad{ID: model.NotepadID},
		Tray:    model.FileTray{ID: model.FileTrayID},
		ids:     UUIDSource{},
	}
}

// NewWithIDs is New with a custom id source (tests).
func NewWithIDs(src IDSource) *DB {
	db := New()
	db.ids = src
	return db
}

// ZOrder exposes the allocator so bootstrap code can seed it.
func (db *DB) ZOrder() *ZOrder { return &db.z }

// Patch carries optional fields for Update. Fields that do not apply to the target kind
// are ignored.
type Patch struct {
	X        *float64
	Y        *float64
	Text     *string
	Priority *model.Priority
	Name     *string
	Notes    *string
}

func (p Patch) Moves() bool { return p.X != nil || p.Y != nil }

func (db *DB) AddStickyNote(text string, priority model.Priority, pos model.Point) model.StickyNote {
	if priority == "" {
		priority = model.PriorityNormal
	}
	n := model.StickyNote{
		ID:       db.ids.NextID(prefixSticky),
		Text:     text,
		Priority: priority,
		X:        pos.X,
		Y:        pos.Y,
		ZIndex:   db.z.Next(),
	}
	db.StickyNotes = append(db.StickyNotes, n)
	return n
}

func (db *DB) AddFile(rec model.FileRecord, pos model.Point) model.DeskFile {
	f := model.DeskFile{
		FileRecord: rec,
		ID:         db.ids.NextID(prefixFile),
		X:          pos.X,
		Y:          pos.Y,
		ZIndex:     db.z.Next(),
	}
	db.Files = append(db.Files, f)
	return f
}

func (db *DB) AddFolder(name string, pos model.Point) model.DeskFolder {
	f := model.DeskFolder{
		ID:     db.ids.NextID(prefixFolder),
		Name:   name,
		X:      pos.X,
		Y:      pos.Y,
		ZIndex: db.z.Next(),
		Files:  []model.FileRecord{},
	}
	db.Folders = append(db.Folders, f)
	return f
}

func (db *DB) AddTornPage(text string, pos model.Point) model.TornPage {
	p := model.TornPage{
		ID:     db.ids.NextID(prefixPage),
		Text:   text,
		X:      pos.X,
		Y:      pos.Y,
		ZIndex: db.z.Next(),
	}
	db.TornPages = append(db.TornPages, p)
	return p
}

// Add stores payload under a fresh id and a top-most zIndex. Singletons are not addable.
func (db *DB) Add(payload model.Placeable) (model.Placeable, bool) {
	switch v := payload.(type) {
	case model.StickyNote:
		return db.AddStickyNote(v.Text, v.Priority, v.Pos()), true
	case model.DeskFile:
		return db.AddFile(v.FileRecord, v.Pos()), true
	case model.DeskFolder:
		f := db.AddFolder(v.Name, v.Pos())
		c := v.Clone()
		ff, _ := db.FindFolder(f.ID)
		ff.Files = c.Files
		if ff.Files == nil {
			ff.Files = []model.FileRecord{}
		}
		ff.Folders = c.Folders
		return *ff, true
	case model.TornPage:
		return db.AddTornPage(v.Text, v.Pos()), true
	default:
		return nil, false
	}
}

// Insert appends an item that already carries an id (restore path). The zIndex on the
// payload is replaced by a new top-most value. Returns false if the id is already live.
func (db *DB) Insert(payload model.Placeable) (model.Placeable, bool) {
	if _, ok := db.Find(payload.ItemKind(), payload.ItemID()); ok {
		return nil, false
	}
	switch v := payload.(type) {
	case model.StickyNote:
		v.ZIndex = db.z.Next()
		db.StickyNotes = append(db.StickyNotes, v)
		return v, true
	case model.DeskFile:
		v.ZIndex = db.z.Next()
		db.Files = append(db.Files, v)
		return v, true
	case model.DeskFolder:
		v = v.Clone()
		v.ZIndex = db.z.Next()
		db.Folders = append(db.Folders, v)
		return v, true
	case model.TornPage:
		v.ZIndex = db.z.Next()
		db.TornPages = append(db.TornPages, v)
		return v, true
	default:
		return nil, false
	}
}

// Update merges patch into the item. A patch that sets X or Y brings the item to the
// front; content-only patches leave zIndex alone. Unknown ids are a no-op.
func (db *DB) Update(kind model.Kind, id string, p Patch) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	switch kind {
	case model.KindStickyNote:
		n, ok := db.FindStickyNote(id)
		if !ok {
			return false
		}
		if p.Text != nil {
			n.Text = *p.Text
		}
		if p.Priority != nil {
			n.Priority = *p.Priority
		}
		db.move(&n.X, &n.Y, &n.ZIndex, p)
		return true
	case model.KindDeskFile:
		f, ok := db.FindFile(id)
		if !ok {
			return false
		}
		if p.Name != nil {
			f.Name = *p.Name
		}
		db.move(&f.X, &f.Y, &f.ZIndex, p)
		return true
	case model.KindDeskFolder:
		f, ok := db.FindFolder(id)
		if !ok {
			return false
		}
		if p.Name != nil {
			f.Name = *p.Name
		}
		db.move(&f.X, &f.Y, &f.ZIndex, p)
		return true
	case model.KindTornPage:
		pg, ok := db.FindTornPage(id)
		if !ok {
			return false
		}
		if p.Text != nil {
			pg.Text = *p.Text
		}
		db.move(&pg.X, &pg.Y, &pg.ZIndex, p)
		return true
	case model.KindNotepad:
		if id != db.Notepad.ID {
			return false
		}
		if p.Notes != nil {
			db.Notepad.Notes = *p.Notes
		}
		db.move(&db.Notepad.X, &db.Notepad.Y, &db.Notepad.ZIndex, p)
		return true
	case model.KindFileTray:
		if id != db.Tray.ID {
			return false
		}
		db.move(&db.Tray.X, &db.Tray.Y, &db.Tray.ZIndex, p)
		return true
	default:
		return false
	}
}

func (db *DB) move(x, y *float64, z *int, p Patch) {
	if !p.Moves() {
		return
	}
	if p.X != nil {
		*x = *p.X
	}
	if p.Y != nil {
		*y = *p.Y
	}
	*z = db.z.Next()
}

// Delete removes the item from its live collection and returns the full payload.
// Singletons and unknown ids yield ok=false.
func (db *DB) Delete(kind model.Kind, id string) (model.Placeable, bool) {
	id = strings.TrimSpace(id)
	switch kind {
	case model.KindStickyNote:
		for i := range db.StickyNotes {
			if db.StickyNotes[i].ID == id {
				n := db.StickyNotes[i]
				db.StickyNotes = append(db.StickyNotes[:i], db.StickyNotes[i+1:]...)
				return n, true
			}
		}
	case model.KindDeskFile:
		for i := range db.Files {
			if db.Files[i].ID == id {
				f := db.Files[i]
				db.Files = append(db.Files[:i], db.Files[i+1:]...)
				return f, true
			}
		}
	case model.KindDeskFolder:
		for i := range db.Folders {
			if db.Folders[i].ID == id {
				f := db.Folders[i]
				db.Folders = append(db.Folders[:i], db.Folders[i+1:]...)
				return f, true
			}
		}
	case model.KindTornPage:
		for i := range db.TornPages {
			if db.TornPages[i].ID == id {
				p := db.TornPages[i]
				db.TornPages = append(db.TornPages[:i], db.TornPages[i+1:]...)
				return p, true
			}
		}
	}
	return nil, false
}

func (db *DB) Find(kind model.Kind, id string) (model.Placeable, bool) {
	id = strings.TrimSpace(id)
	switch kind {
	case model.KindStickyNote:
		if n, ok := db.FindStickyNote(id); ok {
			return *n, true
		}
	case model.KindDeskFile:
		if f, ok := db.FindFile(id); ok {
			return *f, true
		}
	case model.KindDeskFolder:
		if f, ok := db.FindFolder(id); ok {
			return f.Clone(), true
		}
	case model.KindTornPage:
		if p, ok := db.FindTornPage(id); ok {
			return *p, true
		}
	case model.KindNotepad:
		if id == db.Notepad.ID {
			return db.Notepad, true
		}
	case model.KindFileTray:
		if id == db.Tray.ID {
			return db.Tray.Clone(), true
		}
	}
	return nil, false
}

func (db *DB) FindStickyNote(id string) (*model.StickyNote, bool) {
	for i := range db.StickyNotes {
		if db.StickyNotes[i].ID == id {
			return &db.StickyNotes[i], true
		}
	}
	return nil, false
}

func (db *DB) FindFile(id string) (*model.DeskFile, bool) {
	for i := range db.Files {
		if db.Files[i].ID == id {
			return &db.Files[i], true
		}
	}
	return nil, false
}

func (db *DB) FindFolder(id string) (*model.DeskFolder, bool) {
	for i := range db.Folders {
		if db.Folders[i].ID == id {
			return &db.Folders[i], true
		}
	}
	return nil, false
}

func (db *DB) FindTornPage(id string) (*model.TornPage, bool) {
	for i := range db.TornPages {
		if db.TornPages[i].ID == id {
			return &db.TornPages[i], true
		}
	}
	return nil, false
}

// KindOf resolves a live id to its kind.
func (db *DB) KindOf(id string) (model.Kind, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", false
	}
	for _, k := range model.Kinds {
		if _, ok := db.Find(k, id); ok {
			return k, true
		}
	}
	return "", false
}

// Stack returns every live item in paint order: ascending zIndex, ties in insertion order
// (collections in model.Kinds order, then slice order).
func (db *DB) Stack() []model.Placeable {
	out := make([]model.Placeable, 0, len(db.StickyNotes)+len(db.Files)+len(db.Folders)+len(db.TornPages)+2)
	for _, n := range db.StickyNotes {
		out = append(out, n)
	}
	for _, f := range db.Files {
		out = append(out, f)
	}
	for _, f := range db.Folders {
		out = append(out, f.Clone())
	}
	for _, p := range db.TornPages {
		out = append(out, p)
	}
	out = append(out, db.Notepad, db.Tray.Clone())
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z() < out[j].Z() })
	return out
}

// MaxZ is the largest zIndex on any live item (0 when empty).
func (db *DB) MaxZ() int {
	max := 0
	for _, p := range db.Stack() {
		if p.Z() > max {
			max = p.Z()
		}
	}
	return max
}

func (db *DB) Snapshot() model.Snapshot {
	s := model.Snapshot{
		StickyNotes: append([]model.StickyNote{}, db.StickyNotes...),
		Files:       append([]model.DeskFile{}, db.Files...),
		Folders:     make([]model.DeskFolder, 0, len(db.Folders)),
		TornPages:   append([]model.TornPage{}, db.TornPages...),
		Notepad:     db.Notepad,
		FileTray:    db.Tray.Clone(),
		RecycleBin:  db.Bin.Entries(),
	}
	for _, f := range db.Folders {
		s.Folders = append(s.Folders, f.Clone())
	}
	if s.FileTray.Files == nil {
		s.FileTray.Files = []model.FileRecord{}
	}
	return s
}
