package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "ltl3ba", cfg.TranslatorPath())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
log_level: debug
translator:
  name: spot
  hoa: true
  timeout: 30s
search:
  strategy: exponential
  max_bound: "16"
render:
  formats: dot,verilog
  ascii_aiger: true
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "spot", cfg.Translator.Name)
	assert.True(t, cfg.Translator.HOA)
	assert.Equal(t, 30*time.Second, cfg.Translator.Timeout)
	assert.Equal(t, "ltl2tgba", cfg.TranslatorPath())
	assert.Equal(t, "exponential", cfg.Search.Strategy)
	assert.Equal(t, 16, cfg.Search.MaxBound)
	assert.Equal(t, []string{"dot", "verilog"}, cfg.Render.Formats)
	assert.True(t, cfg.Render.ASCIIAiger)
	// untouched defaults survive
	assert.Equal(t, ".", cfg.Render.OutputDir)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "translater:\n  name: spot\n"},
		{"unknown translator", "translator:\n  name: ltl2ba\n"},
		{"hoa without spot", "translator:\n  hoa: true\n"},
		{"bad duration", "translator:\n  timeout: soon\n"},
		{"unknown format", "render:\n  formats: [blif]\n"},
		{"unknown strategy", "search:\n  strategy: binary\n"},
		{"bad level", "log_level: loud\n"},
		{"not yaml", "render: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bosy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("translator:\n  path: /opt/ltl3ba/bin/ltl3ba\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/ltl3ba/bin/ltl3ba", cfg.TranslatorPath())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
