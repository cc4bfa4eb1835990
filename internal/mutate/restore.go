package mutate

import (
	"fmt"
	"strings"

	"desk-cli/internal/model"
	"desk-cli/internal/store"
)

type RestoreResult struct {
	Item         model.Placeable
	EventPayload map[string]any
}

// Restore puts a bin entry back into the live collection for its kind, keeping its id and
// giving it a new top-most zIndex. The entry must still be in the ledger: a stale copy of
// an entry that was restored, purged or emptied yields NotFoundError, and so does a copy
// from an earlier deletion of an id that has since been deleted again.
func Restore(db *store.DB, entry model.DeletedItem) (RestoreResult, error) {
	payload, ok := entry.Payload()
	if !ok {
		return RestoreResult{}, fmt.Errorf("%w: %w", ErrRestoreFailed, InvalidKindError{Kind: string(entry.Kind), Op: "restore"})
	}
	id := strings.TrimSpace(entry.ID)
	live, ok := db.Bin.Find(id)
	if !ok || live.Seq != entry.Seq || live.Kind != entry.Kind {
		return RestoreResult{}, NotFoundError{Kind: "bin entry", ID: id}
	}
	if payload.ItemID() != id {
		return RestoreResult{}, fmt.Errorf("%w: entry %s carries payload for %s", ErrRestoreFailed, id, payload.ItemID())
	}

	restored, ok := db.Insert(payload)
	if !ok {
		return RestoreResult{}, fmt.Errorf("%w: %s %s is already on the desk", ErrRestoreFailed, payload.ItemKind(), id)
	}
	db.Bin.Remove(id)
	return RestoreResult{
		Item: restored,
		EventPayload: map[string]any{
			"kind":   string(restored.ItemKind()),
			"zIndex": restored.Z(),
		},
	}, nil
}

// PermanentlyDelete erases one bin entry. There is no way back.
func PermanentlyDelete(db *store.DB, id string, confirm Confirmation) (model.DeletedItem, error) {
	if confirm != Confirmed {
		return model.DeletedItem{}, ErrConfirmationRequired
	}
	id = strings.TrimSpace(id)
	entry, ok := db.Bin.Find(id)
	if !ok {
		return model.DeletedItem{}, NotFoundError{Kind: "bin entry", ID: id}
	}
	db.Bin.Remove(id)
	return entry, nil
}

// EmptyBin erases every bin entry and reports how many were dropped.
func EmptyBin(db *store.DB, confirm Confirmation) (int, error) {
	if confirm != Confirmed {
		return 0, ErrConfirmationRequired
	}
	return db.Bin.Clear(), nil
}
