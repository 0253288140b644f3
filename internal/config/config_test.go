package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/edkeys/internal/config"
	"github.com/ja-he/edkeys/internal/input"
)

func TestDefaultResolves(t *testing.T) {
	r, err := config.Default().Input.Resolve()
	require.NoError(t, err)
	assert.False(t, r.StrictChords)
	assert.True(t, r.Terminfo)
	assert.Equal(t, 50*time.Millisecond, r.EscapeTimeout)
	assert.Equal(t, 100*time.Millisecond, r.Tick)
	assert.Equal(t, 2*time.Minute, r.RecoveryInterval)
}

func TestDefaultBindingsAreValidKeyspecs(t *testing.T) {
	for spec := range config.Default().Bindings {
		keys, err := input.ConfigKeyspecToKeys(spec)
		require.NoError(t, err, "keyspec '%s'", spec)
		assert.NotEmpty(t, keys)
		assert.LessOrEqual(t, len(keys), input.MaxChordLength)
	}
}

func TestParseConfigAugmentDefaults(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		c, err := config.ParseConfigAugmentDefaults([]byte{})
		require.NoError(t, err)
		assert.Equal(t, config.Default(), c)
	})

	t.Run("overrides", func(t *testing.T) {
		c, err := config.ParseConfigAugmentDefaults([]byte(`
input:
  strict-chords: true
  escape-timeout: 25ms
  recovery-interval: 0s
  terminfo: false
bindings:
  "<c-k>x": quit
  "<c-k>q": ""
  "<c-s>": find
`))
		require.NoError(t, err)

		r, err := c.Input.Resolve()
		require.NoError(t, err)
		assert.True(t, r.StrictChords)
		assert.False(t, r.Terminfo)
		assert.Equal(t, 25*time.Millisecond, r.EscapeTimeout)
		assert.Equal(t, 100*time.Millisecond, r.Tick, "unset value not taken from defaults")
		assert.Equal(t, time.Duration(0), r.RecoveryInterval)

		assert.Equal(t, "quit", c.Bindings["<c-k>x"])
		assert.NotContains(t, c.Bindings, input.Keyspec("<c-k>q"))
		assert.Equal(t, "find", c.Bindings["<c-s>"])
		assert.Equal(t, "block-begin", c.Bindings["<c-k>b"], "default binding lost")
	})

	t.Run("defaults are not modified", func(t *testing.T) {
		_, err := config.ParseConfigAugmentDefaults([]byte("bindings: {\"<c-k>b\": \"\"}"))
		require.NoError(t, err)
		assert.Contains(t, config.Default().Bindings, input.Keyspec("<c-k>b"))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := config.ParseConfigAugmentDefaults([]byte("input: [1, 2"))
		assert.Error(t, err)
	})
}

func TestResolveInvalid(t *testing.T) {
	for name, yamlData := range map[string]string{
		"bad duration":      "input: {escape-timeout: soon}",
		"negative duration": "input: {recovery-interval: -1s}",
		"zero tick":         "input: {tick: 0s}",
	} {
		t.Run(name, func(t *testing.T) {
			c, err := config.ParseConfigAugmentDefaults([]byte(yamlData))
			require.NoError(t, err)
			_, err = c.Input.Resolve()
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	c, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c, "missing file should yield defaults")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("input: {term: vt100}"), 0644))
	c, err = config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "vt100", c.Input.Term)
}

func TestBaseDir(t *testing.T) {
	t.Setenv("EDKEYS_HOME", "/tmp/edkeys-home/")
	assert.Equal(t, "/tmp/edkeys-home", config.BaseDir())

	t.Setenv("EDKEYS_HOME", "")
	assert.Equal(t, "edkeys", filepath.Base(config.BaseDir()))
}
