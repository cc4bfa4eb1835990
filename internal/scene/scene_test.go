package scene

import (
	"context"
	"fmt"
	"testing"
	"time"

	"desk-cli/internal/actions"
	"desk-cli/internal/model"
	"desk-cli/internal/mutate"
	"desk-cli/internal/store"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIDs struct{ n int }

func (s *seqIDs) NextID(prefix string) string {
	s.n++
	return fmt.Sprintf("%s-%d", prefix, s.n)
}

var t0 = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func testSeed() store.Seed {
	return store.Seed{
		Notepad:  &store.SeedNotepad{SeedPlacement: store.SeedPlacement{X: 20, Y: 20, Z: 1}, Notes: "draft"},
		FileTray: &store.SeedTray{SeedPlacement: store.SeedPlacement{X: 400, Y: 0, Z: 2}},
		StickyNotes: []store.SeedStickyNote{
			{SeedPlacement: store.SeedPlacement{ID: "sticky-a", X: 100, Y: 40, Z: 3}, Text: "one", Priority: "urgent"},
		},
		Files: []store.SeedFile{
			{SeedPlacement: store.SeedPlacement{ID: "file-a", X: 10, Y: 10, Z: 4}, SeedRecord: store.SeedRecord{Name: "a.txt", Type: "txt", Size: "1 KB", Date: "Jan 1, 2025"}},
		},
		Folders: []store.SeedFolder{
			{
				SeedPlacement: store.SeedPlacement{ID: "folder-a", X: 200, Y: 100, Z: 5},
				Name:          "Projects",
				Files: []store.SeedRecord{
					{Name: "r.pdf", Type: "pdf", Size: "1 MB", Date: "Mar 1, 2025"},
					{Name: "n.md", Type: "md", Size: "4 KB", Date: "Mar 4, 2025"},
				},
			},
		},
	}
}

type fixture struct {
	sc   *Scene
	hook *logtest.Hook
}

func newScene(t *testing.T, opts Options) fixture {
	t.Helper()
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	if opts.Bounds == (model.Bounds{}) {
		opts.Bounds = model.Bounds{MinX: 0, MaxX: 300, MinY: 0, MaxY: 300}
	}
	opts.Logger = log
	if opts.IDs == nil {
		opts.IDs = &seqIDs{}
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return t0 }
	}
	if opts.RandSeed == 0 {
		opts.RandSeed = 7
	}
	sc := New(opts)
	require.NoError(t, sc.Bootstrap(testSeed()))
	require.NoError(t, sc.RegisterActions())
	return fixture{sc: sc, hook: hook}
}

func maxZ(stack []model.Placeable) int {
	m := 0
	for _, p := range stack {
		if p.Z() > m {
			m = p.Z()
		}
	}
	return m
}

func TestAddStickyGetsNextZ(t *testing.T) {
	f := newScene(t, Options{})
	before := f.sc.Snapshot()
	prevMax := maxZ(f.sc.Stack())

	n := f.sc.AddSticky()
	require.NoError(t, f.sc.EditText(n.ID, "Test"))

	after := f.sc.Snapshot()
	assert.Len(t, after.StickyNotes, len(before.StickyNotes)+1)
	assert.Equal(t, prevMax+1, n.ZIndex)
	for _, other := range before.StickyNotes {
		assert.NotEqual(t, other.ID, n.ID)
	}
	got, ok := f.sc.Item(n.ID)
	require.True(t, ok)
	assert.Equal(t, "Test", got.(model.StickyNote).Text)
	assert.Equal(t, n.ZIndex, got.Z(), "content edits keep zIndex")

	b := f.sc.Bounds()
	assert.True(t, n.X >= b.MinX && n.X <= b.MaxX && n.Y >= b.MinY && n.Y <= b.MaxY, "placed inside bounds: %+v", n)
}

func TestDragClampsToBounds(t *testing.T) {
	f := newScene(t, Options{Bounds: model.Bounds{MinX: 0, MaxX: 300, MinY: 0, MaxY: 300}})
	prevMax := maxZ(f.sc.Stack())

	require.NoError(t, f.sc.Drag(DragEvent{ItemID: "file-a", Kind: model.KindDeskFile, X: 9999, Y: 9999}))

	got, ok := f.sc.Item("file-a")
	require.True(t, ok)
	assert.Equal(t, model.Point{X: 300, Y: 300}, got.Pos())
	assert.Equal(t, prevMax+1, got.Z(), "drag brings the item to the front")

	require.NoError(t, f.sc.Drag(DragEvent{ItemID: "file-a", X: -50, Y: 120}))
	got, _ = f.sc.Item("file-a")
	assert.Equal(t, model.Point{X: 0, Y: 120}, got.Pos())
}

func TestDropFileOnTrayKeepsOnlyRecord(t *testing.T) {
	f := newScene(t, Options{})

	to, err := f.sc.Drop(DropEvent{ItemID: "file-a", Kind: model.KindDeskFile, Target: model.ContainerTray})
	require.NoError(t, err)
	assert.Equal(t, model.ContainerTray, to)

	_, ok := f.sc.Item("file-a")
	assert.False(t, ok)
	tray := f.sc.TrayContents()
	require.Len(t, tray.Files, 1)
	assert.Equal(t, model.FileRecord{Name: "a.txt", Type: "txt", Size: "1 KB", Date: "Jan 1, 2025"}, tray.Files[0])
}

func TestDeleteFolderKeepsContents(t *testing.T) {
	f := newScene(t, Options{})

	require.NoError(t, f.sc.Delete(model.KindDeskFolder, "folder-a"))

	assert.Empty(t, f.sc.Snapshot().Folders)
	bin := f.sc.RecycleBin()
	require.Len(t, bin, 1)
	assert.Equal(t, model.BinKindFolder, bin[0].Kind)
	require.NotNil(t, bin[0].Folder)
	assert.Len(t, bin[0].Folder.Files, 2)
	assert.Equal(t, t0, bin[0].DeletedAt)
}

func TestBridgeBeforeAndAfterRegistration(t *testing.T) {
	bridge := actions.NewBridge()
	sc := New(Options{Bridge: bridge, IDs: &seqIDs{}, RandSeed: 1, Bounds: model.Bounds{MaxX: 100, MaxY: 100}})
	require.NoError(t, sc.Bootstrap(testSeed()))

	before := sc.Snapshot()
	assert.NotPanics(t, func() { assert.False(t, bridge.AddFile("early.txt", "txt")) })
	assert.Equal(t, before, sc.Snapshot())

	require.NoError(t, sc.RegisterActions())
	assert.True(t, bridge.AddFile("late.txt", ""))
	files := sc.Snapshot().Files
	require.Len(t, files, len(before.Files)+1)
	last := files[len(files)-1]
	assert.Equal(t, "late.txt", last.Name)
	assert.Equal(t, "txt", last.Type, "type defaults from the extension")
	assert.Equal(t, PendingSize, last.Size)

	assert.ErrorIs(t, sc.RegisterActions(), actions.ErrAlreadyRegistered)
}

func TestEmptyBinMakesEntriesUnrecoverable(t *testing.T) {
	f := newScene(t, Options{})
	require.NoError(t, f.sc.Delete(model.KindStickyNote, "sticky-a"))
	require.NoError(t, f.sc.Delete(model.KindDeskFile, "file-a"))
	require.NoError(t, f.sc.Delete(model.KindDeskFolder, "folder-a"))
	stale := f.sc.RecycleBin()
	require.Len(t, stale, 3)

	_, err := f.sc.EmptyBin(mutate.Unconfirmed)
	assert.ErrorIs(t, err, mutate.ErrConfirmationRequired)
	assert.Len(t, f.sc.RecycleBin(), 3)

	n, err := f.sc.EmptyBin(mutate.Confirmed)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Empty(t, f.sc.RecycleBin())

	for _, e := range stale {
		_, err := f.sc.RestoreEntry(e)
		assert.True(t, mutate.IsNotFound(err), "stale %s: %v", e.ID, err)
	}

	entries := f.hook.AllEntries()
	require.NotEmpty(t, entries)
	last := f.hook.LastEntry()
	assert.Equal(t, logrus.DebugLevel, last.Level)
	found := false
	for _, e := range entries {
		if e.Data["op"] == "empty" && e.Level == logrus.InfoLevel {
			found = true
		}
	}
	assert.True(t, found, "empty bin logs at info")
}

func TestRestoreRoundTripClampsToCurrentBounds(t *testing.T) {
	f := newScene(t, Options{})
	require.NoError(t, f.sc.Drag(DragEvent{ItemID: "sticky-a", X: 250, Y: 250}))
	require.NoError(t, f.sc.Delete(model.KindStickyNote, "sticky-a"))

	f.sc.SetBounds(model.Bounds{MaxX: 100, MaxY: 100})
	prevMax := maxZ(f.sc.Stack())

	item, err := f.sc.Restore("sticky-a")
	require.NoError(t, err)
	n := item.(model.StickyNote)
	assert.Equal(t, "sticky-a", n.ID)
	assert.Equal(t, "one", n.Text)
	assert.Equal(t, model.PriorityUrgent, n.Priority)
	assert.Equal(t, model.Point{X: 100, Y: 100}, n.Pos())
	assert.Greater(t, n.ZIndex, prevMax)
	assert.Empty(t, f.sc.RecycleBin())

	_, err = f.sc.Restore("sticky-a")
	assert.True(t, mutate.IsNotFound(err))
}

func TestNotFoundIsANoop(t *testing.T) {
	f := newScene(t, Options{})
	before := f.sc.Snapshot()

	assert.NoError(t, f.sc.Drag(DragEvent{ItemID: "ghost", X: 1, Y: 1}))
	assert.NoError(t, f.sc.Delete(model.KindDeskFile, "ghost"))
	assert.NoError(t, f.sc.EditText("ghost", "x"))
	_, err := f.sc.Drop(DropEvent{ItemID: "ghost", Kind: model.KindDeskFile, Target: model.ContainerTray})
	assert.NoError(t, err)

	assert.Equal(t, before, f.sc.Snapshot())
}

func TestDeleteSingletonIsInvalidKind(t *testing.T) {
	f := newScene(t, Options{})
	err := f.sc.Delete(model.KindNotepad, model.NotepadID)
	require.Error(t, err)
	assert.True(t, mutate.IsInvalidKind(err))
	assert.Equal(t, logrus.WarnLevel, f.hook.LastEntry().Level)
}

func TestDropUnacceptedTargetLeavesItemInPlace(t *testing.T) {
	f := newScene(t, Options{})
	require.NoError(t, f.sc.Drag(DragEvent{ItemID: "sticky-a", X: 50, Y: 60}))

	to, err := f.sc.Drop(DropEvent{ItemID: "sticky-a", Target: model.ContainerTray})
	require.NoError(t, err)
	assert.Equal(t, model.ContainerDesk, to)

	to, err = f.sc.Drop(DropEvent{ItemID: "sticky-a", Target: model.ContainerFolder, FolderID: "folder-a"})
	require.NoError(t, err)
	assert.Equal(t, model.ContainerDesk, to)

	got, ok := f.sc.Item("sticky-a")
	require.True(t, ok)
	assert.Equal(t, model.Point{X: 50, Y: 60}, got.Pos())
}

func TestDropAtResolvesTarget(t *testing.T) {
	f := newScene(t, Options{Bounds: model.Bounds{MaxX: 560, MaxY: 180}})

	to, err := f.sc.DropAt("file-a", model.KindDeskFile, model.Point{X: 210, Y: 110})
	require.NoError(t, err)
	assert.Equal(t, model.ContainerFolder, to)
	folder, err := f.sc.OpenFolder("folder-a")
	require.NoError(t, err)
	assert.Len(t, folder.Files, 3)

	g := f.sc.AddFolder("Archive")
	to, err = f.sc.DropAt(g.ID, model.KindDeskFolder, model.Point{X: 410, Y: 10})
	require.NoError(t, err)
	assert.Equal(t, model.ContainerTray, to)
	tray := f.sc.TrayContents()
	require.Len(t, tray.Folders, 1)
	assert.Equal(t, "Archive", tray.Folders[0].Name)
	assert.Zero(t, tray.Folders[0].ZIndex)

	n := f.sc.AddSticky()
	ev := f.sc.TargetAt(n.ID, model.KindStickyNote, model.Point{X: 5, Y: 295})
	assert.Equal(t, model.ContainerDesk, ev.Target)
}

func TestDropFolderIntoItselfStaysOnDesk(t *testing.T) {
	f := newScene(t, Options{})
	to, err := f.sc.Drop(DropEvent{ItemID: "folder-a", Target: model.ContainerFolder, FolderID: "folder-a"})
	require.NoError(t, err)
	assert.Equal(t, model.ContainerDesk, to)
	_, err = f.sc.OpenFolder("folder-a")
	assert.NoError(t, err)
}

func TestTearPageKeepsNotes(t *testing.T) {
	f := newScene(t, Options{})
	p := f.sc.TearPage("")
	assert.Equal(t, "draft", p.Text)
	assert.Equal(t, "draft", f.sc.Snapshot().Notepad.Notes)

	require.NoError(t, f.sc.SetNotes("new"))
	p2 := f.sc.TearPage("explicit")
	assert.Equal(t, "explicit", p2.Text)
	assert.Greater(t, p2.ZIndex, p.ZIndex)
}

func TestSetPriorityAndRenameFolder(t *testing.T) {
	f := newScene(t, Options{})
	require.NoError(t, f.sc.SetPriority("sticky-a", model.PriorityLow))
	require.NoError(t, f.sc.RenameFolder("folder-a", "Work"))
	assert.Error(t, f.sc.RenameFolder("folder-a", "  "))

	s := f.sc.Snapshot()
	assert.Equal(t, model.PriorityLow, s.StickyNotes[0].Priority)
	assert.Equal(t, "Work", s.Folders[0].Name)

	err := f.sc.EditText("folder-a", "nope")
	assert.True(t, mutate.IsInvalidKind(err))
}

func TestPermanentlyDeleteRequiresConfirmation(t *testing.T) {
	f := newScene(t, Options{})
	require.NoError(t, f.sc.Delete(model.KindDeskFile, "file-a"))

	_, err := f.sc.PermanentlyDelete("file-a", mutate.Unconfirmed)
	assert.ErrorIs(t, err, mutate.ErrConfirmationRequired)
	require.Len(t, f.sc.RecycleBin(), 1)

	entry, err := f.sc.PermanentlyDelete("file-a", mutate.Confirmed)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", entry.Name)
	assert.Empty(t, f.sc.RecycleBin())

	_, err = f.sc.PermanentlyDelete("file-a", mutate.Confirmed)
	assert.True(t, mutate.IsNotFound(err))
}

func TestBootstrapClampsSeededPositions(t *testing.T) {
	sc := New(Options{IDs: &seqIDs{}, RandSeed: 1, Bounds: model.Bounds{MaxX: 300, MaxY: 300}})
	seed := testSeed()
	seed.StickyNotes = append(seed.StickyNotes, store.SeedStickyNote{
		SeedPlacement: store.SeedPlacement{ID: "sticky-far", X: 9999, Y: -50, Z: 9},
		Text:          "far",
	})
	require.NoError(t, sc.Bootstrap(seed))

	got, ok := sc.Item("sticky-far")
	require.True(t, ok)
	assert.Equal(t, model.Point{X: 300, Y: 0}, got.Pos())
	assert.Equal(t, 9, got.Z(), "clamping keeps the seeded zIndex")
	assert.Equal(t, model.Point{X: 300, Y: 0}, sc.TrayContents().Pos(), "singletons are clamped too")
}

func TestBootstrapOnce(t *testing.T) {
	f := newScene(t, Options{})
	assert.ErrorIs(t, f.sc.Bootstrap(testSeed()), ErrAlreadyBootstrapped)
}

func TestJournalRecordsMutations(t *testing.T) {
	ctx := context.Background()
	j, err := store.OpenJournal(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	f := newScene(t, Options{Journal: j})
	require.NoError(t, f.sc.Drag(DragEvent{ItemID: "file-a", X: 1, Y: 1}))
	_, err = f.sc.Drop(DropEvent{ItemID: "file-a", Target: model.ContainerTray})
	require.NoError(t, err)
	require.NoError(t, f.sc.Delete(model.KindStickyNote, "sticky-a"))

	evs, err := f.sc.Events(0)
	require.NoError(t, err)
	var types []string
	for _, e := range evs {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{"scene.bootstrap", "item.transfer", "item.delete"}, types, "drags are not journaled")
	assert.True(t, t0.Equal(evs[1].TS))

	forFile, err := f.sc.EventsFor("file-a", 10)
	require.NoError(t, err)
	require.Len(t, forFile, 1)
	assert.Equal(t, "item.transfer", forFile[0].Type)
}

func TestJournalFailureDoesNotFailOperation(t *testing.T) {
	j, err := store.OpenJournal(context.Background())
	require.NoError(t, err)
	f := newScene(t, Options{Journal: j})
	require.NoError(t, j.Close())

	require.NoError(t, f.sc.Delete(model.KindDeskFile, "file-a"))
	assert.Len(t, f.sc.RecycleBin(), 1)
	assert.Equal(t, logrus.WarnLevel, f.hook.LastEntry().Level)
}
