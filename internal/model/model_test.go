package model

import (
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"sticky":     KindStickyNote,
		"stickyNote": KindStickyNote,
		" file ":     KindDeskFile,
		"folder":     KindDeskFolder,
		"page":       KindTornPage,
		"notepad":    KindNotepad,
		"tray":       KindFileTray,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseKind(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseKind("window"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestNewDeletedItem(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	f := DeskFolder{ID: "folder-1", Name: "Projects", Files: []FileRecord{{Name: "a.txt"}}}
	d, ok := NewDeletedItem(f, now)
	if !ok || d.Kind != BinKindFolder || d.Folder == nil || d.Name != "Projects" || !d.DeletedAt.Equal(now) {
		t.Fatalf("unexpected entry: %+v", d)
	}
	// The entry must not alias the live folder's slice.
	f.Files[0].Name = "changed"
	if d.Folder.Files[0].Name != "a.txt" {
		t.Fatalf("expected deleted folder contents to be copied")
	}

	if d, _ := NewDeletedItem(StickyNote{ID: "s"}, now); d.Name != "Sticky note" {
		t.Fatalf("expected placeholder name for empty sticky, got %q", d.Name)
	}
	if _, ok := NewDeletedItem(Notepad{ID: NotepadID}, now); ok {
		t.Fatalf("expected notepad to be rejected")
	}
	if _, ok := NewDeletedItem(FileTray{ID: FileTrayID}, now); ok {
		t.Fatalf("expected tray to be rejected")
	}
}

func TestDeletedItemPayloadNeedsMatchingTag(t *testing.T) {
	n := StickyNote{ID: "s", Text: "hi"}
	d := DeletedItem{ID: "s", Kind: BinKindFile, StickyNote: &n}
	if _, ok := d.Payload(); ok {
		t.Fatalf("expected mismatched tag to be rejected")
	}
	d.Kind = BinKindStickyNote
	p, ok := d.Payload()
	if !ok || p.(StickyNote).Text != "hi" {
		t.Fatalf("unexpected payload %#v", p)
	}
	if _, ok := (DeletedItem{Kind: "gadget"}).Payload(); ok {
		t.Fatalf("expected unknown tag to be rejected")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 80, H: 80}
	if !r.Contains(Point{X: 10, Y: 90}) || r.Contains(Point{X: 91, Y: 50}) {
		t.Fatalf("unexpected Contains results")
	}
}
