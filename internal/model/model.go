package model

import (
	"fmt"
	"strings"
	"time"
)

type Kind string

const (
	KindStickyNote Kind = "stickyNote"
	KindDeskFile   Kind = "deskFile"
	KindDeskFolder Kind = "deskFolder"
	KindTornPage   Kind = "tornPage"
	KindNotepad    Kind = "notepad"
	KindFileTray   Kind = "fileTray"
)

// Kinds lists every item kind in paint-independent, stable order.
var Kinds = []Kind{KindStickyNote, KindDeskFile, KindDeskFolder, KindTornPage, KindNotepad, KindFileTray}

// ParseKind accepts the canonical tag or a short alias (sticky, file, folder, page, tray).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stickynote", "sticky", "note":
		return KindStickyNote, nil
	case "deskfile", "file":
		return KindDeskFile, nil
	case "deskfolder", "folder":
		return KindDeskFolder, nil
	case "tornpage", "page":
		return KindTornPage, nil
	case "notepad":
		return KindNotepad, nil
	case "filetray", "tray":
		return KindFileTray, nil
	default:
		return "", fmt.Errorf("invalid item kind: %q", s)
	}
}

func (k Kind) Singleton() bool { return k == KindNotepad || k == KindFileTray }

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "urgent":
		return PriorityUrgent, nil
	case "normal", "":
		return PriorityNormal, nil
	case "low":
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("invalid priority: %q (expected urgent|normal|low)", s)
	}
}

const (
	NotepadID  = "notepad"
	FileTrayID = "file-tray"
)

type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Bounds is the rectangle an item's position must stay inside, in container-local coordinates.
type Bounds struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Placeable is implemented by every item that can sit on the desk.
// The set of implementations is closed.
type Placeable interface {
	ItemID() string
	ItemKind() Kind
	Pos() Point
	Z() int
	placeable()
}

type StickyNote struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Priority Priority `json:"color"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	ZIndex   int      `json:"zIndex"`
}

// FileRecord describes a file without identity or position (inside a tray or folder).
type FileRecord struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size string `json:"size"`
	Date string `json:"date"`
}

type DeskFile struct {
	FileRecord
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	ZIndex int     `json:"zIndex"`
}

type DeskFolder struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	ZIndex  int          `json:"zIndex"`
	Files   []FileRecord `json:"files"`
	Folders []DeskFolder `json:"folders,omitempty"`
}

type TornPage struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	ZIndex int     `json:"zIndex"`
}

type Notepad struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	ZIndex int     `json:"zIndex"`
	Notes  string  `json:"notes"`
}

type FileTray struct {
	ID      string       `json:"id"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	ZIndex  int          `json:"zIndex"`
	Files   []FileRecord `json:"files"`
	Folders []DeskFolder `json:"folders,omitempty"`
}

func (n StickyNote) ItemID() string { return n.ID }
func (n StickyNote) ItemKind() Kind { return KindStickyNote }
func (n StickyNote) Pos() Point     { return Point{X: n.X, Y: n.Y} }
func (n StickyNote) Z() int         { return n.ZIndex }
func (StickyNote) placeable()       {}

func (f DeskFile) ItemID() string { return f.ID }
func (f DeskFile) ItemKind() Kind { return KindDeskFile }
func (f DeskFile) Pos() Point     { return Point{X: f.X, Y: f.Y} }
func (f DeskFile) Z() int         { return f.ZIndex }
func (DeskFile) placeable()       {}

func (f DeskFolder) ItemID() string { return f.ID }
func (f DeskFolder) ItemKind() Kind { return KindDeskFolder }
func (f DeskFolder) Pos() Point     { return Point{X: f.X, Y: f.Y} }
func (f DeskFolder) Z() int         { return f.ZIndex }
func (DeskFolder) placeable()       {}

func (p TornPage) ItemID() string { return p.ID }
func (p TornPage) ItemKind() Kind { return KindTornPage }
func (p TornPage) Pos() Point     { return Point{X: p.X, Y: p.Y} }
func (p TornPage) Z() int         { return p.ZIndex }
func (TornPage) placeable()       {}

func (n Notepad) ItemID() string { return n.ID }
func (n Notepad) ItemKind() Kind { return KindNotepad }
func (n Notepad) Pos() Point     { return Point{X: n.X, Y: n.Y} }
func (n Notepad) Z() int         { return n.ZIndex }
func (Notepad) placeable()       {}

func (t FileTray) ItemID() string { return t.ID }
func (t FileTray) ItemKind() Kind { return KindFileTray }
func (t FileTray) Pos() Point     { return Point{X: t.X, Y: t.Y} }
func (t FileTray) Z() int         { return t.ZIndex }
func (FileTray) placeable()       {}

// Record drops identity and position from a desk file.
func (f DeskFile) Record() FileRecord { return f.FileRecord }

// Clone deep-copies the folder's contents.
func (f DeskFolder) Clone() DeskFolder {
	out := f
	out.Files = append([]FileRecord{}, f.Files...)
	if f.Folders != nil {
		out.Folders = make([]DeskFolder, len(f.Folders))
		for i := range f.Folders {
			out.Folders[i] = f.Folders[i].Clone()
		}
	}
	return out
}

func (t FileTray) Clone() FileTray {
	out := t
	out.Files = append([]FileRecord{}, t.Files...)
	if t.Folders != nil {
		out.Folders = make([]DeskFolder, len(t.Folders))
		for i := range t.Folders {
			out.Folders[i] = t.Folders[i].Clone()
		}
	}
	return out
}

// Label is a short display name for any placeable.
func Label(p Placeable) string {
	switch v := p.(type) {
	case StickyNote:
		return v.Text
	case DeskFile:
		return v.Name
	case DeskFolder:
		return v.Name
	case TornPage:
		return v.Text
	case Notepad:
		return "Notepad"
	case FileTray:
		return "File tray"
	default:
		return ""
	}
}

type BinKind string

const (
	BinKindFile       BinKind = "file"
	BinKindFolder     BinKind = "folder"
	BinKindStickyNote BinKind = "stickyNote"
	BinKindTornPage   BinKind = "tornPage"
)

// DeletedItem is a recycle bin entry. Exactly one payload pointer is set and it matches Kind.
type DeletedItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      BinKind   `json:"type"`
	DeletedAt time.Time `json:"deletedAt"`
	// Seq is assigned by the ledger and tells two deletions of the same id apart.
	Seq       uint64    `json:"seq"`

	StickyNote *StickyNote `json:"stickyNote,omitempty"`
	File       *DeskFile   `json:"file,omitempty"`
	Folder     *DeskFolder `json:"folder,omitempty"`
	TornPage   *TornPage   `json:"tornPage,omitempty"`
}

// NewDeletedItem wraps a live item as a bin entry. Singletons are not deletable and
// yield ok=false.
func NewDeletedItem(p Placeable, now time.Time) (DeletedItem, bool) {
	d := DeletedItem{ID: p.ItemID(), Name: Label(p), DeletedAt: now}
	switch v := p.(type) {
	case StickyNote:
		d.Kind = BinKindStickyNote
		d.StickyNote = &v
		if strings.TrimSpace(d.Name) == "" {
			d.Name = "Sticky note"
		}
	case DeskFile:
		d.Kind = BinKindFile
		d.File = &v
	case DeskFolder:
		c := v.Clone()
		d.Kind = BinKindFolder
		d.Folder = &c
	case TornPage:
		d.Kind = BinKindTornPage
		d.TornPage = &v
		if strings.TrimSpace(d.Name) == "" {
			d.Name = "Torn page"
		}
	default:
		return DeletedItem{}, false
	}
	return d, true
}

// Payload returns the stored item if the payload matches the kind tag.
func (d DeletedItem) Payload() (Placeable, bool) {
	switch d.Kind {
	case BinKindStickyNote:
		if d.StickyNote == nil {
			return nil, false
		}
		return *d.StickyNote, true
	case BinKindFile:
		if d.File == nil {
			return nil, false
		}
		return *d.File, true
	case BinKindFolder:
		if d.Folder == nil {
			return nil, false
		}
		return d.Folder.Clone(), true
	case BinKindTornPage:
		if d.TornPage == nil {
			return nil, false
		}
		return *d.TornPage, true
	default:
		return nil, false
	}
}

type Container string

const (
	ContainerDesk   Container = "desk"
	ContainerTray   Container = "tray"
	ContainerFolder Container = "folder"
	ContainerBin    Container = "bin"
)

func ParseContainer(s string) (Container, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desk", "":
		return ContainerDesk, nil
	case "tray", "filetray":
		return ContainerTray, nil
	case "folder":
		return ContainerFolder, nil
	case "bin", "trash", "recycle":
		return ContainerBin, nil
	default:
		return "", fmt.Errorf("invalid container: %q (expected desk|tray|folder|bin)", s)
	}
}

// Snapshot is a read-only copy of the whole scene, safe to hand to renderers.
type Snapshot struct {
	StickyNotes []StickyNote  `json:"stickyNotes"`
	Files       []DeskFile    `json:"deskFiles"`
	Folders     []DeskFolder  `json:"deskFolders"`
	TornPages   []TornPage    `json:"tornPages"`
	Notepad     Notepad       `json:"notepad"`
	FileTray    FileTray      `json:"fileTray"`
	RecycleBin  []DeletedItem `json:"recycleBin"`
}

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     string    `json:"type"`
	Kind     string    `json:"kind,omitempty"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload,omitempty"`
}
