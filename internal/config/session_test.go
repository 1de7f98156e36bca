package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionConfig_Derived(t *testing.T) {
	a, err := NewSessionConfig("a-long-enough-session-secret")
	require.NoError(t, err)
	b, err := NewSessionConfig("a-long-enough-session-secret")
	require.NoError(t, err)

	assert.Len(t, a.SigningKey, 32)
	assert.Equal(t, a.SigningKey, b.SigningKey, "derivation is deterministic")
	assert.NotEqual(t, []byte("a-long-enough-session-secret"), a.SigningKey)
	assert.False(t, a.Ephemeral)
}

func TestNewSessionConfig_Ephemeral(t *testing.T) {
	a, err := NewSessionConfig("")
	require.NoError(t, err)
	b, err := NewSessionConfig("")
	require.NoError(t, err)

	assert.True(t, a.Ephemeral)
	assert.NotEqual(t, a.SigningKey, b.SigningKey)
}

func TestNewSessionConfig_TooShort(t *testing.T) {
	_, err := NewSessionConfig("short")
	assert.Error(t, err)
}
