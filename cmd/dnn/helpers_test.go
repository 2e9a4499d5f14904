package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeEmptyEnv returns an env file with no settings so tests do not pick
// up a stray .env from the working tree.
func writeEmptyEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(path, []byte("# no settings\n"), 0o600))
	return path
}
