package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestWriteAtomicCreatesFile(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "album.cue")

	if err := WriteAtomic(dst, []byte("PERFORMER \"A\"\n"), WriteOptions{Lock: true}); err != nil {
		t.Fatalf("WriteAtomic returned error: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "PERFORMER \"A\"\n" {
		t.Fatalf("content mismatch: got %q", got)
	}
	if names := listDir(t, dir); len(names) != 1 {
		t.Fatalf("expected only the destination, got %v", names)
	}
}

func TestWriteAtomicPreservesMode(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "album.cue")
	if err := os.WriteFile(dst, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(dst, 0o600); err != nil {
		t.Fatal(err)
	}

	if err := WriteAtomic(dst, []byte("new"), WriteOptions{}); err != nil {
		t.Fatalf("WriteAtomic returned error: %v", err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode: got %o want %o", info.Mode().Perm(), 0o600)
	}
}

func TestWriteAtomicThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	realDir := filepath.Join(dir, "rips")
	if err := os.Mkdir(realDir, 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(realDir, "album.cue")
	if err := os.WriteFile(target, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "album.cue")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	if err := WriteAtomic(link, []byte("new"), WriteOptions{}); err != nil {
		t.Fatalf("WriteAtomic returned error: %v", err)
	}

	info, err := os.Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatalf("symlink was replaced by a regular file: mode %v", info.Mode())
	}
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("target content: got %q want %q", got, "new")
	}
	if names := listDir(t, realDir); len(names) != 1 {
		t.Fatalf("expected only the target in %s, got %v", realDir, names)
	}
}

func TestWriteAtomicFailureLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "album.cue")
	original := []byte("FILE \"x.wav\" WAVE\r\n")
	if err := os.WriteFile(dst, original, 0o644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("render failed")
	err := WriteAtomicFunc(dst, WriteOptions{Lock: true}, func(w io.Writer) error {
		if _, err := w.Write([]byte("partial")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fill error, got %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(original) {
		t.Fatalf("original modified: got %q want %q", got, original)
	}
	if names := listDir(t, dir); len(names) != 1 || names[0] != "album.cue" {
		t.Fatalf("expected no leftover files, got %v", names)
	}
}

func TestWriteAtomicMissingDirectory(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "missing", "album.cue")
	if err := WriteAtomic(dst, []byte("x"), WriteOptions{}); err == nil {
		t.Fatal("expected error for missing parent directory")
	}
}

func TestWriteAtomicRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := WriteAtomic(dir, []byte("x"), WriteOptions{}); err == nil {
		t.Fatal("expected error when destination is a directory")
	}
}

func TestWriteAtomicLockHeld(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "album.cue")
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	lock, err := AcquireLock(dst)
	if err != nil {
		t.Fatalf("AcquireLock returned error: %v", err)
	}

	err = WriteAtomic(dst, []byte("new"), WriteOptions{Lock: true})
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "old" {
		t.Fatalf("destination changed while locked: %q", got)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
	if _, err := os.Stat(LockPath(dst)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected lock file removed, stat err = %v", err)
	}
	if err := WriteAtomic(dst, []byte("new"), WriteOptions{Lock: true}); err != nil {
		t.Fatalf("WriteAtomic after release: %v", err)
	}
}

func TestWriteAtomicWithBackup(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "album.cue")
	backup := dst + ".bak"
	if err := os.WriteFile(dst, []byte("old"), 0o640); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(dst, 0o640); err != nil {
		t.Fatal(err)
	}

	if err := WriteAtomic(dst, []byte("new"), WriteOptions{BackupPath: backup}); err != nil {
		t.Fatalf("WriteAtomic returned error: %v", err)
	}

	got, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(got) != "old" {
		t.Fatalf("backup content: got %q want %q", got, "old")
	}
	info, err := os.Stat(backup)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Fatalf("backup mode: got %o want %o", info.Mode().Perm(), 0o640)
	}
	current, _ := os.ReadFile(dst)
	if string(current) != "new" {
		t.Fatalf("destination content: got %q want %q", current, "new")
	}
}

func TestTempPathIsHiddenSibling(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "album.cue")
	a, b := TempPath(dst), TempPath(dst)
	if a == b {
		t.Fatalf("expected unique temp paths, got %q twice", a)
	}
	if filepath.Dir(a) != dir {
		t.Fatalf("temp path %q not beside destination", a)
	}
	base := filepath.Base(a)
	if !strings.HasPrefix(base, ".album.cue.") || !strings.HasSuffix(base, ".tmp") {
		t.Fatalf("unexpected temp name %q", base)
	}
}
