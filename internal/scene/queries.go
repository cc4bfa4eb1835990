package scene

import (
	"context"
	"strings"

	"desk-cli/internal/model"
	"desk-cli/internal/mutate"
)

func (s *Scene) Snapshot() model.Snapshot { return s.db.Snapshot() }

// Stack lists live items in paint order, bottom first.
func (s *Scene) Stack() []model.Placeable { return s.db.Stack() }

func (s *Scene) Item(id string) (model.Placeable, bool) {
	kind, ok := s.db.KindOf(id)
	if !ok {
		return nil, false
	}
	return s.db.Find(kind, id)
}

func (s *Scene) OpenFolder(id string) (model.DeskFolder, error) {
	id = strings.TrimSpace(id)
	f, ok := s.db.FindFolder(id)
	if !ok {
		return model.DeskFolder{}, mutate.NotFoundError{Kind: string(model.KindDeskFolder), ID: id}
	}
	return f.Clone(), nil
}

func (s *Scene) TrayContents() model.FileTray { return s.db.Tray.Clone() }

// RecycleBin lists ledger entries newest first.
func (s *Scene) RecycleBin() []model.DeletedItem { return s.db.Bin.Entries() }

// Events returns the last limit journal events, oldest first. Without a journal it
// returns an empty list.
func (s *Scene) Events(limit int) ([]model.Event, error) {
	if s.journal == nil {
		return []model.Event{}, nil
	}
	return s.journal.Tail(context.Background(), limit)
}

func (s *Scene) EventsFor(id string, limit int) ([]model.Event, error) {
	if s.journal == nil {
		return []model.Event{}, nil
	}
	return s.journal.ForEntity(context.Background(), id, limit)
}
