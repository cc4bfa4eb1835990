package mutate

import (
	"desk-cli/internal/model"
	"desk-cli/internal/store"
)

// TopmostAt returns the live item under pt with the largest zIndex. Each item's footprint
// is an extent x extent square anchored at its position. keep may be nil; when set, only
// items it accepts are considered.
func TopmostAt(db *store.DB, pt model.Point, extent float64, keep func(model.Placeable) bool) (model.Placeable, bool) {
	var best model.Placeable
	for _, p := range db.Stack() {
		if keep != nil && !keep(p) {
			continue
		}
		pos := p.Pos()
		if !(model.Rect{X: pos.X, Y: pos.Y, W: extent, H: extent}).Contains(pt) {
			continue
		}
		// Stack is ascending by z with stable ties, so a later hit is on top.
		best = p
	}
	return best, best != nil
}
