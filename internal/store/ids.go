package store

import (
	"github.com/google/uuid"
)

const (
	prefixSticky = "sticky"
	prefixFile   = "file"
	prefixFolder = "folder"
	prefixPage   = "page"
)

// IDSource issues item ids. Ids must never repeat within a process.
type IDSource interface {
	NextID(prefix string) string
}

// UUIDSource returns prefix-<uuidv7>. V7 values are time-ordered and monotonic within
// the process, so ids sort by creation.
type UUIDSource struct{}

func (UUIDSource) NextID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + "-" + id.String()
}
