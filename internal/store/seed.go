package store

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"desk-cli/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed default_scene.yaml
var defaultSceneYAML []byte

type Seed struct {
	Notepad     *SeedNotepad     `yaml:"notepad,omitempty"`
	FileTray    *SeedTray        `yaml:"fileTray,omitempty"`
	StickyNotes []SeedStickyNote `yaml:"stickyNotes,omitempty"`
	Files       []SeedFile       `yaml:"files,omitempty"`
	Folders     []SeedFolder     `yaml:"folders,omitempty"`
	TornPages   []SeedTornPage   `yaml:"tornPages,omitempty"`
}

type SeedPlacement struct {
	ID string  `yaml:"id,omitempty"`
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	Z  int     `yaml:"z,omitempty"`
}

type SeedRecord struct {
	Name string `yaml:"name"`
	Type string `yaml:"type,omitempty"`
	Size string `yaml:"size,omitempty"`
	Date string `yaml:"date,omitempty"`
}

func (r SeedRecord) record() model.FileRecord {
	return model.FileRecord{Name: r.Name, Type: r.Type, Size: r.Size, Date: r.Date}
}

type SeedNotepad struct {
	SeedPlacement `yaml:",inline"`
	Notes         string `yaml:"notes,omitempty"`
}

type SeedTray struct {
	SeedPlacement `yaml:",inline"`
	Files         []SeedRecord `yaml:"files,omitempty"`
	Folders       []SeedFolder `yaml:"folders,omitempty"`
}

type SeedStickyNote struct {
	SeedPlacement `yaml:",inline"`
	Text          string `yaml:"text"`
	Priority      string `yaml:"priority,omitempty"`
}

type SeedFile struct {
	SeedPlacement `yaml:",inline"`
	SeedRecord    `yaml:",inline"`
}

type SeedFolder struct {
	SeedPlacement `yaml:",inline"`
	Name          string       `yaml:"name"`
	Files         []SeedRecord `yaml:"files,omitempty"`
	Folders       []SeedFolder `yaml:"folders,omitempty"`
}

type SeedTornPage struct {
	SeedPlacement `yaml:",inline"`
	Text          string `yaml:"text"`
}

func LoadSeed(r io.Reader) (Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Seed{}, nil
		}
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	return s, nil
}

func DefaultSeed() Seed {
	s, err := LoadSeed(bytes.NewReader(defaultSceneYAML))
	if err != nil {
		panic("store: embedded default scene is invalid: " + err.Error())
	}
	return s
}

// Apply fills an empty DB from the seed. Explicit ids and z values are kept; items without
// a z are stacked above every explicit one in document order. The allocator is left above
// every bootstrap value.
func Apply(db *DB, s Seed) error {
	seen := map[string]bool{}
	claim := func(prefix, id string) (string, error) {
		id = strings.TrimSpace(id)
		if id == "" {
			return db.ids.NextID(prefix), nil
		}
		// The singletons own these ids.
		if id == model.NotepadID || id == model.FileTrayID {
			return "", fmt.Errorf("seed: id %q is reserved", id)
		}
		if seen[id] {
			return "", fmt.Errorf("seed: duplicate id %q", id)
		}
		seen[id] = true
		return id, nil
	}

	maxExplicit := 0
	note := func(z int) {
		if z > maxExplicit {
			maxExplicit = z
		}
	}
	if s.Notepad != nil {
		note(s.Notepad.Z)
	}
	if s.FileTray != nil {
		note(s.FileTray.Z)
	}
	for _, n := range s.StickyNotes {
		note(n.Z)
	}
	for _, f := range s.Files {
		note(f.Z)
	}
	for _, f := range s.Folders {
		note(f.Z)
	}
	for _, p := range s.TornPages {
		note(p.Z)
	}
	db.z.SeedAbove(maxExplicit)
	zOf := func(z int) int {
		if z > 0 {
			return z
		}
		return db.z.Next()
	}

	if s.Notepad != nil {
		db.Notepad = model.Notepad{ID: model.NotepadID, X: s.Notepad.X, Y: s.Notepad.Y, ZIndex: zOf(s.Notepad.Z), Notes: s.Notepad.Notes}
	}
	if s.FileTray != nil {
		db.Tray = model.FileTray{ID: model.FileTrayID, X: s.FileTray.X, Y: s.FileTray.Y, ZIndex: zOf(s.FileTray.Z), Files: records(s.FileTray.Files)}
		for _, f := range s.FileTray.Folders {
			child, err := seedFolder(f, claim, func(int) int { return 0 })
			if err != nil {
				return err
			}
			child.X, child.Y = 0, 0
			db.Tray.Folders = append(db.Tray.Folders, child)
		}
	}
	for _, n := range s.StickyNotes {
		id, err := claim(prefixSticky, n.ID)
		if err != nil {
			return err
		}
		pr, err := model.ParsePriority(n.Priority)
		if err != nil {
			return fmt.Errorf("seed: sticky note %q: %w", n.Text, err)
		}
		db.StickyNotes = append(db.StickyNotes, model.StickyNote{ID: id, Text: n.Text, Priority: pr, X: n.X, Y: n.Y, ZIndex: zOf(n.Z)})
	}
	for _, f := range s.Files {
		id, err := claim(prefixFile, f.ID)
		if err != nil {
			return err
		}
		db.Files = append(db.Files, model.DeskFile{FileRecord: f.record(), ID: id, X: f.X, Y: f.Y, ZIndex: zOf(f.Z)})
	}
	for _, f := range s.Folders {
		folder, err := seedFolder(f, claim, zOf)
		if err != nil {
			return err
		}
		db.Folders = append(db.Folders, folder)
	}
	for _, p := range s.TornPages {
		id, err := claim(prefixPage, p.ID)
		if err != nil {
			return err
		}
		db.TornPages = append(db.TornPages, model.TornPage{ID: id, Text: p.Text, X: p.X, Y: p.Y, ZIndex: zOf(p.Z)})
	}
	db.z.SeedAbove(db.MaxZ())
	return nil
}

func seedFolder(f SeedFolder, claim func(prefix, id string) (string, error), zOf func(int) int) (model.DeskFolder, error) {
	id, err := claim(prefixFolder, f.ID)
	if err != nil {
		return model.DeskFolder{}, err
	}
	out := model.DeskFolder{ID: id, Name: f.Name, X: f.X, Y: f.Y, ZIndex: zOf(f.Z), Files: records(f.Files)}
	for _, sub := range f.Folders {
		child, err := seedFolder(sub, claim, func(int) int { return 0 })
		if err != nil {
			return model.DeskFolder{}, err
		}
		child.X, child.Y = 0, 0
		out.Folders = append(out.Folders, child)
	}
	return out, nil
}

func records(in []SeedRecord) []model.FileRecord {
	out := make([]model.FileRecord, 0, len(in))
	for _, r := range in {
		out = append(out, r.record())
	}
	return out
}
