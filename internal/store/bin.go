package store

import (
	"strings"

	"desk-cli/internal/model"
)

// Bin is the recycle bin ledger, kept newest-first.
type Bin struct {
	entries []model.DeletedItem
	seq     uint64
}

// Add stamps d with the next ledger sequence number and returns the stored entry.
func (b *Bin) Add(d model.DeletedItem) model.DeletedItem {
	b.seq++
	d.Seq = b.seq
	b.entries = append([]model.DeletedItem{d}, b.entries...)
	return d
}

// Remove drops the entry for id. Used after restore or permanent delete.
func (b *Bin) Remove(id string) bool {
	id = strings.TrimSpace(id)
	for i := range b.entries {
		if b.entries[i].ID == id {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Bin) Find(id string) (model.DeletedItem, bool) {
	id = strings.TrimSpace(id)
	for _, d := range b.entries {
		if d.ID == id {
			return d, true
		}
	}
	return model.DeletedItem{}, false
}

// Entries returns a copy, newest first.
func (b *Bin) Entries() []model.DeletedItem {
	return append([]model.DeletedItem{}, b.entries...)
}

func (b *Bin) Len() int { return len(b.entries) }

// Clear discards every entry. Nothing else in the module calls it implicitly.
func (b *Bin) Clear() int {
	n := len(b.entries)
	b.entries = nil
	return n
}
