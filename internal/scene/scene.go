// Package scene owns the desk's item registry and is the single place mutations enter.
//
// A Scene is driven by one event loop (the TUI's Update, or the script runner) and is not
// safe for concurrent use. Every operation runs to completion before it returns; there is
// at most one drag in flight.
package scene

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"desk-cli/internal/actions"
	"desk-cli/internal/model"
	"desk-cli/internal/mutate"
	"desk-cli/internal/store"

	"github.com/sirupsen/logrus"
)

const (
	DefaultExtent = 80
	DateLayout    = "Jan 2, 2006"
	PendingSize   = "—"
)

var ErrAlreadyBootstrapped = errors.New("scene already bootstrapped")

type Options struct {
	// Bounds constrains item positions on the desk surface.
	Bounds model.Bounds
	// ItemExtent is the side of an item's square footprint, used for hit testing.
	ItemExtent float64

	Logger  *logrus.Logger
	Journal *store.Journal
	Now     func() time.Time
	Bridge  *actions.Bridge
	IDs     store.IDSource

	// RandSeed seeds initial placement. 0 picks a time-based seed.
	RandSeed uint64
}

type Scene struct {
	db      *store.DB
	bounds  model.Bounds
	extent  float64
	log     *logrus.Logger
	journal *store.Journal
	now     func() time.Time
	bridge  *actions.Bridge
	rng     *rand.Rand
	booted  bool
}

func New(opts Options) *Scene {
	db := store.New()
	if opts.IDs != nil {
		db = store.NewWithIDs(opts.IDs)
	}
	log := opts.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	bridge := opts.Bridge
	if bridge == nil {
		bridge = actions.NewBridge()
	}
	extent := opts.ItemExtent
	if extent <= 0 {
		extent = DefaultExtent
	}
	seed := opts.RandSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Scene{
		db:      db,
		bounds:  opts.Bounds,
		extent:  extent,
		log:     log,
		journal: opts.Journal,
		now:     now,
		bridge:  bridge,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Bootstrap loads the initial items and clamps their positions to the desk bounds. It
// runs once per scene.
func (s *Scene) Bootstrap(seed store.Seed) error {
	if s.booted {
		return ErrAlreadyBootstrapped
	}
	if err := store.Apply(s.db, seed); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	s.booted = true
	if n := s.db.ClampAll(s.bounds); n > 0 {
		s.log.WithFields(logrus.Fields{"op": "bootstrap", "moved": n}).Debug("seeded items clamped to desk bounds")
	}
	s.log.WithFields(logrus.Fields{"op": "bootstrap", "items": len(s.db.Stack()), "maxZ": s.db.MaxZ()}).Debug("scene bootstrapped")
	s.record("scene.bootstrap", "", "scene", map[string]any{"items": len(s.db.Stack())})
	return nil
}

// RegisterActions binds the bridge's three creation slots to this scene.
func (s *Scene) RegisterActions() error {
	regs := []struct {
		a  actions.Action
		fn actions.Func
	}{
		{actions.AddFile, func(r actions.CreateRequest) { s.AddFile(r.Name, r.Type) }},
		{actions.AddFolder, func(r actions.CreateRequest) { s.AddFolder(r.Name) }},
		{actions.AddSticky, func(actions.CreateRequest) { s.AddSticky() }},
	}
	for _, r := range regs {
		if err := s.bridge.Register(r.a, r.fn); err != nil {
			return fmt.Errorf("register %s: %w", r.a, err)
		}
	}
	s.log.WithField("op", "register").Debug("creation actions bound")
	return nil
}

func (s *Scene) Bridge() *actions.Bridge { return s.bridge }

func (s *Scene) Bounds() model.Bounds { return s.bounds }

// SetBounds replaces the desk bounds. Items already placed are not moved; later drags and
// placements use the new bounds.
func (s *Scene) SetBounds(b model.Bounds) {
	s.bounds = b
	s.log.WithFields(logrus.Fields{"op": "bounds", "maxX": b.MaxX, "maxY": b.MaxY}).Debug("desk bounds changed")
}

func (s *Scene) Extent() float64 { return s.extent }

func (s *Scene) randomPoint() model.Point {
	pick := func(lo, hi float64) float64 {
		if hi <= lo {
			return lo
		}
		return lo + s.rng.Float64()*(hi-lo)
	}
	return store.Clamp(s.bounds, model.Point{
		X: pick(s.bounds.MinX, s.bounds.MaxX),
		Y: pick(s.bounds.MinY, s.bounds.MaxY),
	})
}

func (s *Scene) AddFile(name, typ string) model.DeskFile {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Untitled"
	}
	typ = strings.TrimSpace(typ)
	if typ == "" {
		typ = strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	}
	if typ == "" {
		typ = "file"
	}
	rec := model.FileRecord{Name: name, Type: typ, Size: PendingSize, Date: s.now().Format(DateLayout)}
	f := s.db.AddFile(rec, s.randomPoint())
	s.created(f)
	return f
}

func (s *Scene) AddFolder(name string) model.DeskFolder {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "New Folder"
	}
	f := s.db.AddFolder(name, s.randomPoint())
	s.created(f)
	return f
}

func (s *Scene) AddSticky() model.StickyNote {
	n := s.db.AddStickyNote("New note", model.PriorityNormal, s.randomPoint())
	s.created(n)
	return n
}

// TearPage puts a torn page next to the notepad. An empty text takes the notepad's notes;
// the notepad keeps its notes either way.
func (s *Scene) TearPage(text string) model.TornPage {
	if strings.TrimSpace(text) == "" {
		text = s.db.Notepad.Notes
	}
	pad := s.db.Notepad.Pos()
	pos := store.Clamp(s.bounds, model.Point{X: pad.X + s.extent/2, Y: pad.Y + s.extent/2})
	p := s.db.AddTornPage(text, pos)
	s.created(p)
	return p
}

func (s *Scene) created(p model.Placeable) {
	s.log.WithFields(logrus.Fields{"op": "create", "kind": p.ItemKind(), "id": p.ItemID(), "z": p.Z()}).Debug("item created")
	s.record("item.create", p.ItemKind(), p.ItemID(), map[string]any{"label": model.Label(p), "x": p.Pos().X, "y": p.Pos().Y, "zIndex": p.Z()})
}

// EditText changes the text of a sticky note or torn page.
func (s *Scene) EditText(id, text string) error {
	kind, ok := s.db.KindOf(id)
	if !ok {
		return s.notFound("text", "", id)
	}
	if kind != model.KindStickyNote && kind != model.KindTornPage {
		return s.invalid("text", kind)
	}
	return s.update("text", kind, id, store.Patch{Text: &text}, map[string]any{"text": text})
}

func (s *Scene) SetPriority(id string, p model.Priority) error {
	if _, ok := s.db.FindStickyNote(strings.TrimSpace(id)); !ok {
		return s.notFound("priority", model.KindStickyNote, id)
	}
	return s.update("priority", model.KindStickyNote, id, store.Patch{Priority: &p}, map[string]any{"color": string(p)})
}

func (s *Scene) SetNotes(text string) error {
	return s.update("notes", model.KindNotepad, model.NotepadID, store.Patch{Notes: &text}, map[string]any{"notes": text})
}

func (s *Scene) RenameFolder(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("folder name is required")
	}
	return s.update("rename", model.KindDeskFolder, id, store.Patch{Name: &name}, map[string]any{"name": name})
}

func (s *Scene) update(op string, kind model.Kind, id string, p store.Patch, payload map[string]any) error {
	id = strings.TrimSpace(id)
	if !s.db.Update(kind, id, p) {
		return s.notFound(op, kind, id)
	}
	s.log.WithFields(logrus.Fields{"op": op, "kind": kind, "id": id}).Debug("item updated")
	s.record("item."+op, kind, id, payload)
	return nil
}

// Delete moves a live item into the recycle bin. An empty kind is resolved from the id.
func (s *Scene) Delete(kind model.Kind, id string) error {
	if kind == "" {
		k, ok := s.db.KindOf(id)
		if !ok {
			return s.notFound("delete", "", id)
		}
		kind = k
	}
	entry, err := mutate.MoveToRecycleBin(s.db, kind, id, s.now())
	if err != nil {
		return s.handle("delete", kind, id, err)
	}
	s.log.WithFields(logrus.Fields{"op": "delete", "kind": kind, "id": entry.ID, "bin": s.db.Bin.Len()}).Debug("item moved to recycle bin")
	s.record("item.delete", kind, entry.ID, map[string]any{"binKind": string(entry.Kind), "name": entry.Name})
	return nil
}

// Restore brings a bin entry back by id. Unlike the mutations above, a missing entry is
// returned to the caller.
func (s *Scene) Restore(id string) (model.Placeable, error) {
	entry, ok := s.db.Bin.Find(id)
	if !ok {
		err := mutate.NotFoundError{Kind: "bin entry", ID: strings.TrimSpace(id)}
		s.log.WithFields(logrus.Fields{"op": "restore", "id": id}).Debug(err.Error())
		return nil, err
	}
	return s.RestoreEntry(entry)
}

// RestoreEntry restores from a copy of a ledger entry. A copy taken before the entry was
// restored, purged or emptied fails.
func (s *Scene) RestoreEntry(entry model.DeletedItem) (model.Placeable, error) {
	res, err := mutate.Restore(s.db, clampEntry(entry, s.bounds))
	if err != nil {
		fields := logrus.Fields{"op": "restore", "kind": entry.Kind, "id": entry.ID}
		if mutate.IsInvalidKind(err) {
			s.log.WithFields(fields).Warn(err.Error())
		} else {
			s.log.WithFields(fields).Debug(err.Error())
		}
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"op": "restore", "kind": res.Item.ItemKind(), "id": res.Item.ItemID(), "z": res.Item.Z()}).Debug("item restored")
	s.record("bin.restore", res.Item.ItemKind(), res.Item.ItemID(), res.EventPayload)
	return res.Item, nil
}

func clampEntry(e model.DeletedItem, b model.Bounds) model.DeletedItem {
	switch {
	case e.StickyNote != nil:
		n := *e.StickyNote
		p := store.Clamp(b, n.Pos())
		n.X, n.Y = p.X, p.Y
		e.StickyNote = &n
	case e.File != nil:
		f := *e.File
		p := store.Clamp(b, f.Pos())
		f.X, f.Y = p.X, p.Y
		e.File = &f
	case e.Folder != nil:
		f := e.Folder.Clone()
		p := store.Clamp(b, f.Pos())
		f.X, f.Y = p.X, p.Y
		e.Folder = &f
	case e.TornPage != nil:
		pg := *e.TornPage
		p := store.Clamp(b, pg.Pos())
		pg.X, pg.Y = p.X, p.Y
		e.TornPage = &pg
	}
	return e
}

func (s *Scene) PermanentlyDelete(id string, confirm mutate.Confirmation) (model.DeletedItem, error) {
	entry, err := mutate.PermanentlyDelete(s.db, id, confirm)
	if err != nil {
		s.log.WithFields(logrus.Fields{"op": "purge", "id": id}).Debug(err.Error())
		return model.DeletedItem{}, err
	}
	s.log.WithFields(logrus.Fields{"op": "purge", "kind": entry.Kind, "id": entry.ID}).Info("bin entry permanently deleted")
	s.record("bin.purge", model.Kind(entry.Kind), entry.ID, map[string]any{"name": entry.Name})
	return entry, nil
}

func (s *Scene) EmptyBin(confirm mutate.Confirmation) (int, error) {
	n, err := mutate.EmptyBin(s.db, confirm)
	if err != nil {
		s.log.WithField("op", "empty").Debug(err.Error())
		return 0, err
	}
	s.log.WithFields(logrus.Fields{"op": "empty", "count": n}).Info("recycle bin emptied")
	s.record("bin.empty", "", "recycle-bin", map[string]any{"count": n})
	return n, nil
}

// handle maps coordinator errors: NotFound is a benign race and becomes a no-op, the rest
// are surfaced.
func (s *Scene) handle(op string, kind model.Kind, id string, err error) error {
	if mutate.IsNotFound(err) {
		s.log.WithFields(logrus.Fields{"op": op, "kind": kind, "id": id}).Debug(err.Error())
		return nil
	}
	if mutate.IsInvalidKind(err) {
		s.log.WithFields(logrus.Fields{"op": op, "kind": kind, "id": id}).Warn(err.Error())
	}
	return err
}

func (s *Scene) notFound(op string, kind model.Kind, id string) error {
	what := string(kind)
	if what == "" {
		what = "item"
	}
	return s.handle(op, kind, id, mutate.NotFoundError{Kind: what, ID: strings.TrimSpace(id)})
}

func (s *Scene) invalid(op string, kind model.Kind) error {
	return s.handle(op, kind, "", mutate.InvalidKindError{Kind: string(kind), Op: op})
}

// record appends to the journal. A journal failure is logged and never fails the
// operation that produced the event.
func (s *Scene) record(typ string, kind model.Kind, id string, payload map[string]any) {
	if s.journal == nil {
		return
	}
	if _, err := s.journal.Append(context.Background(), model.Event{TS: s.now().UTC(), Type: typ, Kind: string(kind), EntityID: id, Payload: payload}); err != nil {
		s.log.WithFields(logrus.Fields{"op": "journal", "type": typ, "id": id}).Warn(err.Error())
	}
}
