// Package actions lets a creation trigger that lives outside the scene (a floating "add"
// control, a script line) reach the scene's creation functions without holding the scene.
//
// A Bridge has exactly three slots. Each starts unbound; the scene binds each slot once
// after it initializes. Invoking an unbound slot does nothing and reports false; nothing
// is queued for later.
//
// A Bridge is not safe for concurrent use. It is driven from the same event loop as the
// scene it forwards to.
package actions

import (
	"errors"
	"fmt"
	"strings"
)

type Action string

const (
	AddFile   Action = "file"
	AddFolder Action = "folder"
	AddSticky Action = "sticky"
)

var (
	ErrAlreadyRegistered = errors.New("action already registered")
	ErrUnknownAction     = errors.New("unknown action")
	ErrNilAction         = errors.New("nil action func")
)

// CreateRequest is what the add dialog collects. Type is only meaningful for files.
type CreateRequest struct {
	Name string
	Type string
}

type Func func(CreateRequest)

func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return AddFile, nil
	case "folder":
		return AddFolder, nil
	case "sticky", "note", "stickynote":
		return AddSticky, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

type Bridge struct {
	file   Func
	folder Func
	sticky Func
}

func NewBridge() *Bridge { return &Bridge{} }

func (b *Bridge) slot(a Action) (*Func, error) {
	switch a {
	case AddFile:
		return &b.file, nil
	case AddFolder:
		return &b.folder, nil
	case AddSticky:
		return &b.sticky, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, string(a))
	}
}

// Register binds fn to the slot. Each slot can be bound once per bridge.
func (b *Bridge) Register(a Action, fn Func) error {
	if fn == nil {
		return ErrNilAction
	}
	s, err := b.slot(a)
	if err != nil {
		return err
	}
	if *s != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, a)
	}
	*s = fn
	return nil
}

func (b *Bridge) Registered(a Action) bool {
	if b == nil {
		return false
	}
	s, err := b.slot(a)
	return err == nil && *s != nil
}

// Invoke forwards req to the bound func and reports whether anything ran.
func (b *Bridge) Invoke(a Action, req CreateRequest) bool {
	if b == nil {
		return false
	}
	s, err := b.slot(a)
	if err != nil || *s == nil {
		return false
	}
	(*s)(req)
	return true
}

func (b *Bridge) AddFile(name, typ string) bool {
	return b.Invoke(AddFile, CreateRequest{Name: name, Type: typ})
}

func (b *Bridge) AddFolder(name string) bool {
	return b.Invoke(AddFolder, CreateRequest{Name: name})
}

func (b *Bridge) AddSticky() bool {
	return b.Invoke(AddSticky, CreateRequest{})
}
