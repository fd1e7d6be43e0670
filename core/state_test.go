package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateDefaults(t *testing.T) {
	var s State

	assert.Equal(t, 0, s.LastExitCode())
	assert.Equal(t, 0, s.LastSignal())
	assert.False(t, s.ForegroundOnly())
}

// Exactly one of the exit-code/signal pair is meaningful after any update.
func TestStateMutualExclusion(t *testing.T) {
	var s State

	s.SetExitCode(5)
	assert.Equal(t, 5, s.LastExitCode())
	assert.Equal(t, 0, s.LastSignal())

	s.SetSignal(2)
	assert.Equal(t, 0, s.LastExitCode())
	assert.Equal(t, 2, s.LastSignal())

	s.SetExitCode(0)
	assert.Equal(t, 0, s.LastExitCode())
	assert.Equal(t, 0, s.LastSignal())
}

func TestToggleForegroundOnly(t *testing.T) {
	var s State

	assert.True(t, s.ToggleForegroundOnly())
	assert.True(t, s.ForegroundOnly())

	assert.False(t, s.ToggleForegroundOnly())
	assert.False(t, s.ForegroundOnly())
}
