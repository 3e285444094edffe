package rust

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thriftrs/rsgen/internal/codegen/common"
)

func TestOutputLifecycle(t *testing.T) {
	dir := t.TempDir()

	out, err := Open(dir, "Billing", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "gen-rs", "billing", "mod.rs"), out.Path())

	require.NoError(t, out.Append("A", "// a\n"))
	require.NoError(t, out.Append("B", "// b\n"))
	require.NoError(t, out.Close())
	require.NoError(t, out.Close())
	assert.Error(t, out.Append("C", "// c\n"))

	data, err := os.ReadFile(out.Path())
	require.NoError(t, err)
	assert.Equal(t, testPreamble+"// a\n// b\n", string(data))

	// Opening again reuses the directory.
	again, err := Open(dir, "Billing", nil)
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestOutputBannerVersion(t *testing.T) {
	orig := common.Version
	t.Cleanup(func() { common.Version = orig })

	common.Version = "v2.1.0"
	var buf strings.Builder
	out, err := NewOutput(&buf, "m", nil)
	require.NoError(t, err)
	require.NoError(t, out.Close())
	assert.Contains(t, buf.String(), "// Autogenerated by rsgen (2.1.0)\n")
	assert.Empty(t, out.Path())

	common.Version = "broken"
	_, err = NewOutput(&buf, "m", nil)
	assert.Error(t, err)
}

func TestOpenInvalidVersionCreatesNothing(t *testing.T) {
	orig := common.Version
	t.Cleanup(func() { common.Version = orig })
	common.Version = "broken"

	dir := t.TempDir()
	_, err := Open(dir, "Billing", nil)
	require.Error(t, err)

	_, statErr := os.Stat(ModulePath(dir, "Billing"))
	assert.True(t, os.IsNotExist(statErr))
	assert.NoDirExists(t, filepath.Join(dir, "gen-rs"))
}
