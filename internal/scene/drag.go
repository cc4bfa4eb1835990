package scene

import (
	"errors"
	"strings"

	"desk-cli/internal/model"
	"desk-cli/internal/mutate"
	"desk-cli/internal/store"

	"github.com/sirupsen/logrus"
)

// DragEvent is one pointer-move frame for an item. Kind may be empty; it is then resolved
// from the id.
type DragEvent struct {
	ItemID string
	Kind   model.Kind
	X, Y   float64
}

// DropEvent ends a drag over a resolved target. FolderID is only read for folder targets.
type DropEvent struct {
	ItemID   string
	Kind     model.Kind
	Target   model.Container
	FolderID string
}

func (s *Scene) resolveKind(id string, kind model.Kind) (model.Kind, bool) {
	if kind != "" {
		return kind, true
	}
	return s.db.KindOf(id)
}

// Drag clamps the requested position to the desk bounds and moves the item there,
// bringing it to the front. Nothing about earlier frames is kept.
func (s *Scene) Drag(ev DragEvent) error {
	id := strings.TrimSpace(ev.ItemID)
	kind, ok := s.resolveKind(id, ev.Kind)
	if !ok {
		return s.notFound("drag", "", id)
	}
	p := store.Clamp(s.bounds, model.Point{X: ev.X, Y: ev.Y})
	if !s.db.Update(kind, id, store.Patch{X: &p.X, Y: &p.Y}) {
		return s.notFound("drag", kind, id)
	}
	s.log.WithFields(logrus.Fields{"op": "drag", "kind": kind, "id": id, "x": p.X, "y": p.Y}).Trace("item dragged")
	return nil
}

// Drop hands the item to the target container. It returns where the item ended up; a
// target that does not take the item leaves it on the desk where the last drag put it.
func (s *Scene) Drop(ev DropEvent) (model.Container, error) {
	id := strings.TrimSpace(ev.ItemID)
	kind, ok := s.resolveKind(id, ev.Kind)
	if !ok {
		return model.ContainerDesk, s.notFound("drop", "", id)
	}
	fields := logrus.Fields{"op": "drop", "kind": kind, "id": id, "target": ev.Target}

	var (
		res mutate.TransferResult
		err error
	)
	switch ev.Target {
	case model.ContainerDesk, "":
		if _, ok := s.db.Find(kind, id); !ok {
			return model.ContainerDesk, s.notFound("drop", kind, id)
		}
		return model.ContainerDesk, nil
	case model.ContainerBin:
		if err := s.Delete(kind, id); err != nil {
			return model.ContainerDesk, err
		}
		return model.ContainerBin, nil
	case model.ContainerTray:
		switch kind {
		case model.KindDeskFile:
			res, err = mutate.MoveToTray(s.db, id)
		case model.KindDeskFolder:
			res, err = mutate.MoveFolderToTray(s.db, id)
		default:
			err = mutate.UnsupportedTransferError{Kind: string(kind), Target: string(model.ContainerTray)}
		}
	case model.ContainerFolder:
		res, err = mutate.MoveToFolder(s.db, kind, id, ev.FolderID)
		fields["folder"] = ev.FolderID
	default:
		return model.ContainerDesk, s.invalid("drop", model.Kind(ev.Target))
	}

	if err != nil {
		var ut mutate.UnsupportedTransferError
		if errors.As(err, &ut) {
			s.log.WithFields(fields).Debug(err.Error())
			return model.ContainerDesk, nil
		}
		return model.ContainerDesk, s.handle("drop", kind, id, err)
	}
	s.log.WithFields(fields).Debug("item transferred")
	payload := res.EventPayload
	if payload == nil {
		payload = map[string]any{}
	}
	payload["to"] = string(res.To)
	s.record("item.transfer", kind, id, payload)
	return res.To, nil
}

// DropAt resolves the container under pt and drops the item there: the topmost folder
// other than the item itself, then the tray, then the desk.
func (s *Scene) DropAt(itemID string, kind model.Kind, pt model.Point) (model.Container, error) {
	itemID = strings.TrimSpace(itemID)
	return s.Drop(s.TargetAt(itemID, kind, pt))
}

// TargetAt is DropAt without the drop.
func (s *Scene) TargetAt(itemID string, kind model.Kind, pt model.Point) DropEvent {
	ev := DropEvent{ItemID: itemID, Kind: kind, Target: model.ContainerDesk}
	folder, ok := mutate.TopmostAt(s.db, pt, s.extent, func(p model.Placeable) bool {
		return p.ItemKind() == model.KindDeskFolder && p.ItemID() != itemID
	})
	if ok {
		ev.Target = model.ContainerFolder
		ev.FolderID = folder.ItemID()
		return ev
	}
	if _, ok := mutate.TopmostAt(s.db, pt, s.extent, func(p model.Placeable) bool {
		return p.ItemKind() == model.KindFileTray
	}); ok {
		ev.Target = model.ContainerTray
	}
	return ev
}
