package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bacmap/internal/config"
)

func TestGetBeforeInitializeIsNop(t *testing.T) {
	l := Get(CategoryNormalize)
	require.NotNil(t, l)
	// Must not panic even without Initialize.
	l.Info("normalized point")
}

func TestInitializeRejectsBadLevel(t *testing.T) {
	err := Initialize(config.LoggingConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestInitializeAndGet(t *testing.T) {
	require.NoError(t, Initialize(config.LoggingConfig{Level: "debug", Format: "text"}))

	a := Get(CategoryMatch)
	b := Get(CategoryMatch)
	assert.Same(t, a, b)

	c := Get(CategoryStore)
	assert.NotSame(t, a, c)
}
