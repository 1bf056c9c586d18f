package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_InvalidValuesStayDisabled(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	for _, v := range []string{"", "0", "-1", "yes", "banana"} {
		t.Setenv(EnvVar, v)
		Init()
		Info().Msg("discarded")

		_, err := os.Stat(filepath.Join(home, ".claude", "hooks", "readonly_bash.log"))
		assert.True(t, os.IsNotExist(err), "no log file for %q", v)
	}
}

func TestInit_WritesToLogFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvVar, "1")
	Init()
	t.Cleanup(func() {
		os.Unsetenv(EnvVar)
		Init()
	})

	Info().Str("command", "ls").Msg("approve")

	data, err := os.ReadFile(filepath.Join(home, ".claude", "hooks", "readonly_bash.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "approve")

	// Debug is below the level for verbosity 1 and must not appear.
	Debug().Msg("too detailed")
	data, err = os.ReadFile(filepath.Join(home, ".claude", "hooks", "readonly_bash.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "too detailed")
}

func TestLevelMapping(t *testing.T) {
	assert.Equal(t, "info", level(1).String())
	assert.Equal(t, "debug", level(2).String())
	assert.Equal(t, "trace", level(3).String())
	assert.Equal(t, "trace", level(7).String())
}
