package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvokeBeforeRegisterIsNoop(t *testing.T) {
	b := NewBridge()
	assert.NotPanics(t, func() {
		assert.False(t, b.AddFile("a.txt", "txt"))
		assert.False(t, b.AddFolder("f"))
		assert.False(t, b.AddSticky())
	})

	var nilBridge *Bridge
	assert.False(t, nilBridge.AddSticky())
	assert.False(t, nilBridge.Registered(AddSticky))
}

func TestInvokeBeforeRegisterDoesNotQueue(t *testing.T) {
	b := NewBridge()
	b.AddFile("early.txt", "txt")

	var got []CreateRequest
	require.NoError(t, b.Register(AddFile, func(r CreateRequest) { got = append(got, r) }))
	assert.Empty(t, got, "calls made before registration must be dropped")

	assert.True(t, b.AddFile("late.txt", "txt"))
	require.Len(t, got, 1)
	assert.Equal(t, CreateRequest{Name: "late.txt", Type: "txt"}, got[0])
}

func TestRegisterOncePerSlot(t *testing.T) {
	b := NewBridge()
	calls := 0
	require.NoError(t, b.Register(AddSticky, func(CreateRequest) { calls++ }))
	err := b.Register(AddSticky, func(CreateRequest) { calls += 100 })
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	b.AddSticky()
	assert.Equal(t, 1, calls, "first binding stays in place")

	assert.ErrorIs(t, b.Register(Action("bogus"), func(CreateRequest) {}), ErrUnknownAction)
	assert.ErrorIs(t, b.Register(AddFolder, nil), ErrNilAction)
	assert.False(t, b.Registered(AddFolder))
}

func TestParseAction(t *testing.T) {
	for in, want := range map[string]Action{"file": AddFile, " Folder ": AddFolder, "note": AddSticky} {
		got, err := ParseAction(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseAction("page")
	assert.ErrorIs(t, err, ErrUnknownAction)
}
