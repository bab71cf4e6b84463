package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveToken_FlagWinsOverEnvAndFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BLOGCTL_TOKEN", "env-token")
	writeTokenFile(t, home, "file-token")

	tokenFlag = "flag-token"
	defer func() { tokenFlag = "" }()

	assert.Equal(t, "flag-token", resolveToken())
}

func TestResolveToken_EnvWinsOverFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BLOGCTL_TOKEN", "env-token")
	writeTokenFile(t, home, "file-token")

	assert.Equal(t, "env-token", resolveToken())
}

func TestResolveToken_FallsBackToFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BLOGCTL_TOKEN", "")
	writeTokenFile(t, home, "file-token")

	assert.Equal(t, "file-token", resolveToken())
}

func TestResolveToken_EmptyWhenNothingConfigured(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BLOGCTL_TOKEN", "")

	assert.Equal(t, "", resolveToken())
}

func TestSaveTokenRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BLOGCTL_TOKEN", "")

	require.NoError(t, saveToken("fresh-token"))

	info, err := os.Stat(filepath.Join(home, ".blogctl", "token"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	assert.Equal(t, "fresh-token", resolveToken())
}

func writeTokenFile(t *testing.T, home, token string) {
	t.Helper()
	dir := filepath.Join(home, ".blogctl")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte(token+"\n"), 0600))
}
