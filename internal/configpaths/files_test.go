package configpaths

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCandidatePathsUserFirst(t *testing.T) {
	tests := []struct {
		user string
		pick func(j, y, tm []string) []string
	}{
		{"/tmp/custom.json", func(j, _, _ []string) []string { return j }},
		{"/tmp/custom.yml", func(_, y, _ []string) []string { return y }},
		{"/tmp/custom.toml", func(_, _, tm []string) []string { return tm }},
		{"/tmp/custom", func(j, _, _ []string) []string { return j }},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			j, y, tm := ConfigCandidatePaths(tt.user)
			got := tt.pick(j, y, tm)
			require.NotEmpty(t, got)
			assert.Equal(t, tt.user, got[0])
		})
	}
}

func TestConfigCandidatePathsSearchOrder(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG layout only")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	j, y, tm := ConfigCandidatePaths("")
	assert.Contains(t, j, filepath.Join(xdg, "rsgen", "rsgen.json"))
	assert.Contains(t, y, filepath.Join(xdg, "rsgen", "config.yml"))
	assert.Contains(t, tm, "/etc/rsgen/config.toml")
	assert.Equal(t, "rsgen.json", filepath.Base(j[0]))
}

func TestDefaultNamedConfigPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG layout only")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	p, err := DefaultNamedConfigPath("config", "yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "rsgen", "config.yaml"), p)

	p, err = DefaultNamedConfigPath("config", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "rsgen", "config.json"), p)
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c.json")
	require.NoError(t, EnsureDir(target))
	assert.DirExists(t, filepath.Join(dir, "a", "b"))
}
