package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// EnvVars lists the environment variables that override configuration.
var EnvVars = []string{
	"PRETTYCUE_LOG_LEVEL",
	"PRETTYCUE_LOG_FORMAT",
	"PRETTYCUE_INPUT_ENCODING",
}

// Isolate points HOME and the working directory at fresh temp directories
// and clears PRETTYCUE_* overrides for the duration of the test. It returns
// the new working directory.
func Isolate(t testing.TB) string {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	work := filepath.Join(base, "work")
	for _, dir := range []string{home, work} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	t.Setenv("HOME", home)
	for _, key := range EnvVars {
		t.Setenv(key, "")
	}
	t.Chdir(work)
	return work
}
