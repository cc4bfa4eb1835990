package store

import (
	"math"

	"desk-cli/internal/model"
)

// Clamp constrains p to b. An inverted range (container smaller than the item) pins the
// coordinate to the minimum. NaN coordinates also resolve to the minimum.
func Clamp(b model.Bounds, p model.Point) model.Point {
	return model.Point{
		X: clamp1(p.X, b.MinX, b.MaxX),
		Y: clamp1(p.Y, b.MinY, b.MaxY),
	}
}

func clamp1(v, lo, hi float64) float64 {
	if math.IsNaN(lo) {
		lo = 0
	}
	if math.IsNaN(hi) || hi < lo {
		hi = lo
	}
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampAll pulls every live item inside b without touching its zIndex and reports how
// many items moved. Bootstrap uses it on seeded positions.
func (db *DB) ClampAll(b model.Bounds) int {
	moved := 0
	fix := func(x, y *float64) {
		p := Clamp(b, model.Point{X: *x, Y: *y})
		if p.X != *x || p.Y != *y {
			*x, *y = p.X, p.Y
			moved++
		}
	}
	for i := range db.StickyNotes {
		fix(&db.StickyNotes[i].X, &db.StickyNotes[i].Y)
	}
	for i := range db.Files {
		fix(&db.Files[i].X, &db.Files[i].Y)
	}
	for i := range db.Folders {
		fix(&db.Folders[i].X, &db.Folders[i].Y)
	}
	for i := range db.TornPages {
		fix(&db.TornPages[i].X, &db.TornPages[i].Y)
	}
	fix(&db.Notepad.X, &db.Notepad.Y)
	fix(&db.Tray.X, &db.Tray.Y)
	return moved
}
