package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCodesSetAndGet(t *testing.T) {
	codes := NewCodes()

	codes.Set("user@example.com", "abc123", time.Minute)

	value, ok := codes.Get("user@example.com")
	assert.True(t, ok)
	assert.Equal(t, "abc123", value)

	_, ok = codes.Get("other@example.com")
	assert.False(t, ok)
}

func TestCodesExpiry(t *testing.T) {
	codes := NewCodes()

	codes.Set("user@example.com", "abc123", -time.Second)

	_, ok := codes.Get("user@example.com")
	assert.False(t, ok)
	assert.Equal(t, 0, codes.Len())
}

func TestCodesDelete(t *testing.T) {
	codes := NewCodes()

	codes.Set("user@example.com", "abc123", time.Minute)
	codes.Delete("user@example.com")

	_, ok := codes.Get("user@example.com")
	assert.False(t, ok)
}

func TestCodesSweep(t *testing.T) {
	codes := NewCodes()

	codes.Set("expired@example.com", "abc123", -time.Second)
	codes.Set("alive@example.com", "def456", time.Minute)

	codes.Sweep()

	assert.Equal(t, 1, codes.Len())
	value, ok := codes.Get("alive@example.com")
	assert.True(t, ok)
	assert.Equal(t, "def456", value)
}
