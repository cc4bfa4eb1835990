package mutate

import (
	"strings"
	"time"

	"desk-cli/internal/model"
	"desk-cli/internal/store"
)

type TransferResult struct {
	ID           string
	Kind         model.Kind
	To           model.Container
	EventPayload map[string]any
}

// MoveToTray turns a desk file into a bare FileRecord on the tray. The file's id and
// position are discarded.
func MoveToTray(db *store.DB, fileID string) (TransferResult, error) {
	fileID = strings.TrimSpace(fileID)
	f, ok := db.Delete(model.KindDeskFile, fileID)
	if !ok {
		return TransferResult{}, NotFoundError{Kind: string(model.KindDeskFile), ID: fileID}
	}
	rec := f.(model.DeskFile).Record()
	db.Tray.Files = append(db.Tray.Files, rec)
	return TransferResult{
		ID:   fileID,
		Kind: model.KindDeskFile,
		To:   model.ContainerTray,
		EventPayload: map[string]any{
			"name": rec.Name,
			"type": rec.Type,
		},
	}, nil
}

// MoveFolderToTray files a whole desk folder into the tray. Position fields are cleared;
// the id stays so the folder can be told apart from others of the same name.
func MoveFolderToTray(db *store.DB, folderID string) (TransferResult, error) {
	folderID = strings.TrimSpace(folderID)
	p, ok := db.Delete(model.KindDeskFolder, folderID)
	if !ok {
		return TransferResult{}, NotFoundError{Kind: string(model.KindDeskFolder), ID: folderID}
	}
	folder := unplace(p.(model.DeskFolder))
	db.Tray.Folders = append(db.Tray.Folders, folder)
	return TransferResult{
		ID:           folderID,
		Kind:         model.KindDeskFolder,
		To:           model.ContainerTray,
		EventPayload: map[string]any{"name": folder.Name, "files": len(folder.Files)},
	}, nil
}

// MoveToFolder puts a desk file (as a FileRecord) or a desk folder (nested) into the
// target folder.
func MoveToFolder(db *store.DB, kind model.Kind, id, folderID string) (TransferResult, error) {
	id = strings.TrimSpace(id)
	folderID = strings.TrimSpace(folderID)
	if _, ok := db.FindFolder(folderID); !ok {
		return TransferResult{}, NotFoundError{Kind: string(model.KindDeskFolder), ID: folderID}
	}

	switch kind {
	case model.KindDeskFile:
		p, ok := db.Delete(model.KindDeskFile, id)
		if !ok {
			return TransferResult{}, NotFoundError{Kind: string(kind), ID: id}
		}
		rec := p.(model.DeskFile).Record()
		target, _ := db.FindFolder(folderID)
		target.Files = append(target.Files, rec)
		return TransferResult{
			ID:           id,
			Kind:         kind,
			To:           model.ContainerFolder,
			EventPayload: map[string]any{"folder": folderID, "name": rec.Name},
		}, nil

	case model.KindDeskFolder:
		if id == folderID {
			return TransferResult{}, UnsupportedTransferError{Kind: string(kind), Target: "itself"}
		}
		p, ok := db.Delete(model.KindDeskFolder, id)
		if !ok {
			return TransferResult{}, NotFoundError{Kind: string(kind), ID: id}
		}
		nested := unplace(p.(model.DeskFolder))
		// Re-find after Delete: the slice shifted.
		target, _ := db.FindFolder(folderID)
		target.Folders = append(target.Folders, nested)
		return TransferResult{
			ID:           id,
			Kind:         kind,
			To:           model.ContainerFolder,
			EventPayload: map[string]any{"folder": folderID, "name": nested.Name},
		}, nil

	default:
		return TransferResult{}, UnsupportedTransferError{Kind: string(kind), Target: string(model.ContainerFolder)}
	}
}

// MoveToRecycleBin removes the item and records it in the ledger with its complete
// payload and the deletion time.
func MoveToRecycleBin(db *store.DB, kind model.Kind, id string, now time.Time) (model.DeletedItem, error) {
	id = strings.TrimSpace(id)
	switch kind {
	case model.KindStickyNote, model.KindDeskFile, model.KindDeskFolder, model.KindTornPage:
	default:
		return model.DeletedItem{}, InvalidKindError{Kind: string(kind), Op: "delete"}
	}
	p, ok := db.Delete(kind, id)
	if !ok {
		return model.DeletedItem{}, NotFoundError{Kind: string(kind), ID: id}
	}
	entry, ok := model.NewDeletedItem(p, now)
	if !ok {
		// Unreachable for the kinds accepted above; put the item back rather than lose it.
		db.Insert(p)
		return model.DeletedItem{}, InvalidKindError{Kind: string(kind), Op: "delete"}
	}
	return db.Bin.Add(entry), nil
}

func unplace(f model.DeskFolder) model.DeskFolder {
	f = f.Clone()
	f.X, f.Y, f.ZIndex = 0, 0, 0
	return f
}
