package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"desk-cli/internal/model"
)

// Liner is implemented by values that know their own text rendering.
type Liner interface {
	Lines() []string
}

// WriteText renders desk values as an indented listing. Values it has no rendering for
// fall back to yaml.
func WriteText(w io.Writer, v any) error {
	var lines []string
	switch x := v.(type) {
	case Liner:
		lines = x.Lines()
	case model.Snapshot:
		lines = snapshotLines(x)
	case *model.Snapshot:
		lines = snapshotLines(*x)
	case model.DeskFolder:
		lines = folderLines(x, "")
	case model.FileTray:
		lines = trayLines(x)
	case []model.DeletedItem:
		lines = binLines(x)
	case []model.Event:
		lines = eventLines(x)
	case model.Placeable:
		lines = []string{ItemLine(x)}
	default:
		return WriteYAML(w, v)
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// ItemLine is the one-line form of a placed item: zIndex, kind, id, label, extras and
// position.
func ItemLine(p model.Placeable) string {
	var extra string
	switch v := p.(type) {
	case model.StickyNote:
		extra = " (" + string(v.Priority) + ")"
	case model.DeskFile:
		extra = " (" + v.Type + ")"
	case model.DeskFolder:
		extra = fmt.Sprintf(" (%d files)", len(v.Files)+len(v.Folders))
	case model.FileTray:
		extra = fmt.Sprintf(" (%d files)", len(v.Files)+len(v.Folders))
	}
	pos := p.Pos()
	return fmt.Sprintf("[z%d] %s %s %q%s @%s,%s", p.Z(), p.ItemKind(), p.ItemID(), model.Label(p), extra, num(pos.X), num(pos.Y))
}

func num(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

func recordLine(r model.FileRecord) string {
	return fmt.Sprintf("%s (%s, %s, %s)", r.Name, r.Type, r.Size, r.Date)
}

func snapshotLines(s model.Snapshot) []string {
	var items []model.Placeable
	for _, n := range s.StickyNotes {
		items = append(items, n)
	}
	for _, f := range s.Files {
		items = append(items, f)
	}
	for _, f := range s.Folders {
		items = append(items, f)
	}
	for _, p := range s.TornPages {
		items = append(items, p)
	}
	items = append(items, s.Notepad, s.FileTray)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Z() < items[j].Z() })

	out := []string{fmt.Sprintf("desk: %d items", len(items))}
	for _, p := range items {
		out = append(out, "  "+ItemLine(p))
	}
	out = append(out, trayLines(s.FileTray)...)
	out = append(out, binLines(s.RecycleBin)...)
	return out
}

func trayLines(t model.FileTray) []string {
	out := []string{fmt.Sprintf("tray: %d files, %d folders", len(t.Files), len(t.Folders))}
	for _, r := range t.Files {
		out = append(out, "  "+recordLine(r))
	}
	for _, f := range t.Folders {
		out = append(out, folderLines(f, "  ")...)
	}
	return out
}

func folderLines(f model.DeskFolder, indent string) []string {
	out := []string{fmt.Sprintf("%s%s/ (%s)", indent, f.Name, f.ID)}
	for _, r := range f.Files {
		out = append(out, indent+"  "+recordLine(r))
	}
	for _, sub := range f.Folders {
		out = append(out, folderLines(sub, indent+"  ")...)
	}
	return out
}

func binLines(entries []model.DeletedItem) []string {
	out := []string{fmt.Sprintf("bin: %d entries", len(entries))}
	for _, e := range entries {
		out = append(out, fmt.Sprintf("  %s %s %q deleted %s", e.Kind, e.ID, e.Name, e.DeletedAt.Format("2006-01-02 15:04:05")))
	}
	return out
}

func eventLines(evs []model.Event) []string {
	out := make([]string, 0, len(evs))
	for _, e := range evs {
		line := fmt.Sprintf("%s %s %s", e.TS.Format("15:04:05.000"), e.Type, e.EntityID)
		if e.Kind != "" {
			line += " (" + e.Kind + ")"
		}
		out = append(out, line)
	}
	return out
}
