package updater

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCommitPartial_ReplacesExisting(t *testing.T) {
	tmp := t.TempDir()
	dest := filepath.Join(tmp, "nvim")
	partial := partialPath(dest)

	os.WriteFile(dest, []byte("old"), 0755)
	os.WriteFile(partial, []byte("new"), 0755)

	if err := commitPartial(partial, dest); err != nil {
		t.Fatalf("commitPartial failed: %v", err)
	}

	data, _ := os.ReadFile(dest)
	if string(data) != "new" {
		t.Errorf("dest = %q, want new", data)
	}
	if _, err := os.Stat(dest + ".backup"); !os.IsNotExist(err) {
		t.Error("backup file was not cleaned up")
	}
	if _, err := os.Stat(partial); !os.IsNotExist(err) {
		t.Error("partial file was not moved")
	}
}

func TestCommitPartial_NoExistingDest(t *testing.T) {
	tmp := t.TempDir()
	dest := filepath.Join(tmp, "nvim")
	partial := partialPath(dest)
	os.WriteFile(partial, []byte("fresh"), 0755)

	if err := commitPartial(partial, dest); err != nil {
		t.Fatalf("commitPartial failed: %v", err)
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "fresh" {
		t.Errorf("dest = %q, want fresh", data)
	}
}

func TestCommitPartial_MissingPartialRestoresBackup(t *testing.T) {
	tmp := t.TempDir()
	dest := filepath.Join(tmp, "nvim")
	os.WriteFile(dest, []byte("old"), 0755)

	if err := commitPartial(partialPath(dest), dest); err == nil {
		t.Fatal("expected error when the partial file is missing")
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("original binary was lost: %v", err)
	}
	if string(data) != "old" {
		t.Errorf("dest = %q, want old", data)
	}
}

func TestRollback(t *testing.T) {
	tmp := t.TempDir()

	backupPath := filepath.Join(tmp, "nvim.backup")
	dest := filepath.Join(tmp, "nvim")

	os.WriteFile(backupPath, []byte("original binary"), 0755)

	if err := rollback(backupPath, dest); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading restored binary: %v", err)
	}
	if string(data) != "original binary" {
		t.Errorf("restored content mismatch: %s", data)
	}
	if _, err := os.Stat(backupPath); !os.IsNotExist(err) {
		t.Error("backup file was not cleaned up")
	}
}

func TestCopyFile(t *testing.T) {
	tmp := t.TempDir()

	src := filepath.Join(tmp, "src")
	dst := filepath.Join(tmp, "dst")

	os.WriteFile(src, []byte("copy test"), 0644)

	if err := copyFile(src, dst); err != nil {
		t.Fatalf("copyFile failed: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("reading dst: %v", err)
	}
	if string(data) != "copy test" {
		t.Errorf("content mismatch: %s", data)
	}
}

func TestCommitPartial_KeepsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no permission bits on Windows")
	}
	tmp := t.TempDir()
	dest := filepath.Join(tmp, "nvim")
	partial := partialPath(dest)

	os.WriteFile(dest, []byte("old"), 0700)
	os.Chmod(dest, 0700)
	os.WriteFile(partial, []byte("new"), 0755)
	os.Chmod(partial, 0755)

	if err := commitPartial(partial, dest); err != nil {
		t.Fatalf("commitPartial failed: %v", err)
	}
	info, err := os.Stat(dest)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0700 {
		t.Errorf("permissions = %o, want 700", perm)
	}
}
