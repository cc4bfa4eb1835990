package mutate

import (
	"errors"
	"testing"
	"time"

	"desk-cli/internal/model"
	"desk-cli/internal/store"
)

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func TestMoveToTray_DropsIdentityAndPosition(t *testing.T) {
	db := store.New()
	f := db.AddFile(model.FileRecord{Name: "Report.pdf", Type: "pdf", Size: "1 MB", Date: "Mar 1, 2025"}, model.Point{X: 10, Y: 10})

	res, err := MoveToTray(db, f.ID)
	if err != nil {
		t.Fatalf("MoveToTray: %v", err)
	}
	if res.To != model.ContainerTray {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(db.Files) != 0 {
		t.Fatalf("desk file should be gone")
	}
	if len(db.Tray.Files) != 1 {
		t.Fatalf("expected 1 tray file, got %d", len(db.Tray.Files))
	}
	if got := db.Tray.Files[0]; got != f.FileRecord {
		t.Fatalf("tray record = %+v, want %+v", got, f.FileRecord)
	}
}

func TestMoveToTray_DoubleDropIsNotFound(t *testing.T) {
	db := store.New()
	f := db.AddFile(model.FileRecord{Name: "a"}, model.Point{})
	if _, err := MoveToTray(db, f.ID); err != nil {
		t.Fatalf("first drop: %v", err)
	}
	_, err := MoveToTray(db, f.ID)
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(db.Tray.Files) != 1 {
		t.Fatalf("second drop must not duplicate, tray has %d", len(db.Tray.Files))
	}
}

func TestMoveFolderToTray(t *testing.T) {
	db := store.New()
	f := db.AddFolder("Taxes", model.Point{X: 40, Y: 40})
	if _, err := MoveFolderToTray(db, f.ID); err != nil {
		t.Fatalf("MoveFolderToTray: %v", err)
	}
	if len(db.Folders) != 0 || len(db.Tray.Folders) != 1 {
		t.Fatalf("folder not moved: desk=%d tray=%d", len(db.Folders), len(db.Tray.Folders))
	}
	if got := db.Tray.Folders[0]; got.X != 0 || got.ZIndex != 0 || got.ID != f.ID {
		t.Fatalf("tray folder should keep id but not position: %+v", got)
	}
}

func TestMoveToFolder(t *testing.T) {
	db := store.New()
	a := db.AddFolder("A", model.Point{})
	b := db.AddFolder("B", model.Point{})
	file := db.AddFile(model.FileRecord{Name: "x.txt", Type: "txt"}, model.Point{})

	if _, err := MoveToFolder(db, model.KindDeskFile, file.ID, b.ID); err != nil {
		t.Fatalf("file into folder: %v", err)
	}
	// A precedes B in the slice; moving A must not break the lookup of B.
	if _, err := MoveToFolder(db, model.KindDeskFolder, a.ID, b.ID); err != nil {
		t.Fatalf("folder into folder: %v", err)
	}
	got, ok := db.FindFolder(b.ID)
	if !ok {
		t.Fatalf("target folder vanished")
	}
	if len(got.Files) != 1 || got.Files[0].Name != "x.txt" {
		t.Fatalf("expected x.txt inside B, got %+v", got.Files)
	}
	if len(got.Folders) != 1 || got.Folders[0].ID != a.ID {
		t.Fatalf("expected A nested in B, got %+v", got.Folders)
	}
	if len(db.Files) != 0 || len(db.Folders) != 1 {
		t.Fatalf("sources not removed: files=%d folders=%d", len(db.Files), len(db.Folders))
	}
}

func TestMoveToFolder_Rejections(t *testing.T) {
	db := store.New()
	f := db.AddFolder("A", model.Point{})
	n := db.AddStickyNote("s", model.PriorityNormal, model.Point{})

	var ut UnsupportedTransferError
	if _, err := MoveToFolder(db, model.KindDeskFolder, f.ID, f.ID); !errors.As(err, &ut) {
		t.Fatalf("expected self-move rejection, got %v", err)
	}
	if _, err := MoveToFolder(db, model.KindStickyNote, n.ID, f.ID); !errors.As(err, &ut) {
		t.Fatalf("expected sticky rejection, got %v", err)
	}
	if _, err := MoveToFolder(db, model.KindDeskFile, "file-x", "folder-missing"); !IsNotFound(err) {
		t.Fatalf("expected missing target NotFound, got %v", err)
	}
	if len(db.StickyNotes) != 1 || len(db.Folders) != 1 {
		t.Fatalf("rejected transfers must not mutate")
	}
}

func TestMoveToRecycleBin_FolderKeepsContents(t *testing.T) {
	db := store.New()
	f := db.AddFolder("Projects", model.Point{X: 5, Y: 6})
	ff, _ := db.FindFolder(f.ID)
	ff.Files = []model.FileRecord{{Name: "one"}, {Name: "two"}}

	entry, err := MoveToRecycleBin(db, model.KindDeskFolder, f.ID, t0)
	if err != nil {
		t.Fatalf("MoveToRecycleBin: %v", err)
	}
	if entry.Kind != model.BinKindFolder || entry.Folder == nil || len(entry.Folder.Files) != 2 {
		t.Fatalf("bad entry: %+v", entry)
	}
	if !entry.DeletedAt.Equal(t0) {
		t.Fatalf("deletedAt = %v", entry.DeletedAt)
	}
	if db.Bin.Len() != 1 || len(db.Folders) != 0 {
		t.Fatalf("bin=%d folders=%d", db.Bin.Len(), len(db.Folders))
	}
}

func TestMoveToRecycleBin_SingletonsAreInvalid(t *testing.T) {
	db := store.New()
	_, err := MoveToRecycleBin(db, model.KindNotepad, model.NotepadID, t0)
	if !IsInvalidKind(err) {
		t.Fatalf("expected InvalidKindError, got %v", err)
	}
	if _, err := MoveToRecycleBin(db, model.Kind("garbage"), "x", t0); !IsInvalidKind(err) {
		t.Fatalf("expected InvalidKindError, got %v", err)
	}
}

func TestMoveToRecycleBin_MissingIsNotFound(t *testing.T) {
	db := store.New()
	if _, err := MoveToRecycleBin(db, model.KindStickyNote, "sticky-x", t0); !IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if db.Bin.Len() != 0 {
		t.Fatalf("nothing should be recorded")
	}
}
