package mutate

import (
	"errors"
	"fmt"
)

// NotFoundError means the id is not in the collection the operation looked at. The usual
// cause is a benign race (a late drag event after a delete), so callers typically ignore it.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// InvalidKindError means a kind tag was not recognized for the operation. It points at a
// data-model bug and must be surfaced.
type InvalidKindError struct {
	Kind string
	Op   string
}

func (e InvalidKindError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("invalid kind: %q", e.Kind)
	}
	return fmt.Sprintf("%s: invalid kind: %q", e.Op, e.Kind)
}

type UnsupportedTransferError struct {
	Kind   string
	Target string
}

func (e UnsupportedTransferError) Error() string {
	return fmt.Sprintf("cannot move %s into %s", e.Kind, e.Target)
}

var (
	ErrConfirmationRequired = errors.New("destructive operation requires explicit confirmation")
	ErrRestoreFailed        = errors.New("restore failed")
)

// Confirmation is passed to the destructive operations. Only Confirmed lets them run.
type Confirmation bool

const (
	Unconfirmed Confirmation = false
	Confirmed   Confirmation = true
)

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

func IsInvalidKind(err error) bool {
	var ik InvalidKindError
	return errors.As(err, &ik)
}
