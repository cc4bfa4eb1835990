package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"desk-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{
		StickyNotes: []model.StickyNote{{ID: "sticky-1", Text: "Call", Priority: model.PriorityUrgent, X: 10, Y: 20.5, ZIndex: 3}},
		Files:       []model.DeskFile{{FileRecord: model.FileRecord{Name: "a.txt", Type: "txt", Size: "1 KB", Date: "Jan 1, 2025"}, ID: "file-1", X: 1, Y: 2, ZIndex: 4}},
		Folders:     []model.DeskFolder{},
		TornPages:   []model.TornPage{},
		Notepad:     model.Notepad{ID: model.NotepadID, ZIndex: 1},
		FileTray:    model.FileTray{ID: model.FileTrayID, ZIndex: 2, Files: []model.FileRecord{{Name: "in.txt", Type: "txt"}}},
		RecycleBin:  []model.DeletedItem{},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]int{"a": 1}, "", false))
	assert.Equal(t, "{\"a\":1}\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, map[string]int{"a": 1}, "json", true))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestWriteYAMLUsesJSONNamesInOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleSnapshot(), "yaml", false))
	out := buf.String()

	assert.Contains(t, out, "stickyNotes:\n")
	assert.Contains(t, out, "color: urgent")
	assert.Contains(t, out, "deskFolders: []")
	assert.Contains(t, out, "name: a.txt", "embedded record fields are flattened")
	assert.Less(t, strings.Index(out, "stickyNotes:"), strings.Index(out, "deskFiles:"))
	assert.Less(t, strings.Index(out, "notepad:"), strings.Index(out, "recycleBin:"))
	assert.Contains(t, out, `notes: ""`, "empty strings stay quoted")
	assert.NotContains(t, out, `"Call"`)
}

func TestWriteTextSnapshotInPaintOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleSnapshot(), "text", false))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	require.GreaterOrEqual(t, len(lines), 7)
	assert.Equal(t, "desk: 4 items", lines[0])
	assert.Equal(t, `  [z1] notepad notepad "Notepad" @0,0`, lines[1])
	assert.Equal(t, `  [z2] fileTray file-tray "File tray" (1 files) @0,0`, lines[2])
	assert.Equal(t, `  [z3] stickyNote sticky-1 "Call" (urgent) @10,20.5`, lines[3])
	assert.Equal(t, `  [z4] deskFile file-1 "a.txt" (txt) @1,2`, lines[4])
	assert.Equal(t, "tray: 1 files, 0 folders", lines[5])
	assert.Equal(t, "bin: 0 entries", lines[len(lines)-1])
}

func TestWriteTextBinAndFolder(t *testing.T) {
	var buf bytes.Buffer
	entries := []model.DeletedItem{{ID: "folder-1", Name: "Old", Kind: model.BinKindFolder, DeletedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}}
	require.NoError(t, WriteText(&buf, entries))
	assert.Equal(t, "bin: 1 entries\n  folder folder-1 \"Old\" deleted 2025-01-02 03:04:05\n", buf.String())

	buf.Reset()
	f := model.DeskFolder{ID: "folder-2", Name: "P", Files: []model.FileRecord{{Name: "x.md", Type: "md", Size: "1 KB", Date: "d"}}, Folders: []model.DeskFolder{{ID: "folder-3", Name: "Sub"}}}
	require.NoError(t, WriteText(&buf, f))
	assert.Equal(t, "P/ (folder-2)\n  x.md (md, 1 KB, d)\n  Sub/ (folder-3)\n", buf.String())
}

func TestWriteTextFallsBackToYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, map[string]string{"k": "v"}))
	assert.Equal(t, "k: v\n", buf.String())
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, 1, "edn", false)
	assert.EqualError(t, err, "unknown format: edn")
}
