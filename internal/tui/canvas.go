package tui

import (
	"strconv"
	"strings"

	"desk-cli/internal/model"

	xansi "github.com/charmbracelet/x/ansi"
)

// Desk units per terminal cell.
const (
	defaultCellW = 8.0
	defaultCellH = 20.0
)

type cell struct {
	r     rune
	owner int // index into the painted items, -1 for bare desk
}

// canvas is a fixed grid the desk items are painted into, bottom of the stack first.
type canvas struct {
	cols, rows int
	cells      []cell
}

func newCanvas(cols, rows int) *canvas {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c := &canvas{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', owner: -1}
	}
	return c
}

func (c *canvas) set(col, row int, r rune, owner int) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] = cell{r: r, owner: owner}
}

func glyph(k model.Kind) string {
	switch k {
	case model.KindStickyNote:
		return "note"
	case model.KindDeskFile:
		return "file"
	case model.KindDeskFolder:
		return "dir"
	case model.KindTornPage:
		return "page"
	case model.KindNotepad:
		return "pad"
	case model.KindFileTray:
		return "tray"
	default:
		return "?"
	}
}

// fit truncates s to w cells and pads it with spaces. Runes wider than one cell are
// replaced so the grid stays aligned.
func fit(s string, w int) []rune {
	if w <= 0 {
		return nil
	}
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\t' {
			r = ' '
		}
		if xansi.StringWidth(string(r)) != 1 {
			r = '·'
		}
		b.WriteRune(r)
	}
	out := []rune(xansi.Truncate(b.String(), w, "…"))
	for len(out) < w {
		out = append(out, ' ')
	}
	return out
}

func boxLines(p model.Placeable, bw, bh int) [][]rune {
	inner := bw - 2
	lines := make([][]rune, 0, bh)

	top := []rune("┌" + strings.Repeat("─", inner) + "┐")
	tag := []rune(glyph(p.ItemKind()))
	for i := 0; i < len(tag) && i+1 < len(top)-1; i++ {
		top[i+1] = tag[i]
	}
	lines = append(lines, top)

	body := []string{model.Label(p)}
	switch v := p.(type) {
	case model.DeskFile:
		body = append(body, v.Type)
	case model.DeskFolder:
		body = append(body, strconv.Itoa(len(v.Files)+len(v.Folders))+" items")
	case model.FileTray:
		body = append(body, strconv.Itoa(len(v.Files)+len(v.Folders))+" items")
	case model.StickyNote:
		body = append(body, string(v.Priority))
	}
	for i := 0; i < bh-2; i++ {
		text := ""
		if i < len(body) {
			text = body[i]
		}
		lines = append(lines, append(append([]rune("│"), fit(text, inner)...), '│'))
	}
	lines = append(lines, []rune("└"+strings.Repeat("─", inner)+"┘"))
	return lines
}

// renderDesk paints items (already in paint order) and returns the styled rows.
func renderDesk(items []model.Placeable, selected string, cols, rows int, cellW, cellH, extent float64) string {
	c := newCanvas(cols, rows)
	bw := max(int(extent/cellW), 4)
	bh := max(int(extent/cellH), 3)
	for idx, p := range items {
		pos := p.Pos()
		col, row := int(pos.X/cellW), int(pos.Y/cellH)
		for dy, line := range boxLines(p, bw, bh) {
			for dx, r := range line {
				c.set(col+dx, row+dy, r, idx)
			}
		}
	}

	bare := styleMuted()
	var out strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			out.WriteByte('\n')
		}
		start := 0
		for start < c.cols {
			owner := c.cells[row*c.cols+start].owner
			end := start
			var run []rune
			for end < c.cols && c.cells[row*c.cols+end].owner == owner {
				run = append(run, c.cells[row*c.cols+end].r)
				end++
			}
			st := bare
			if owner >= 0 {
				st = itemStyle(items[owner], items[owner].ItemID() == selected)
			}
			out.WriteString(st.Render(string(run)))
			start = end
		}
	}
	return out.String()
}
