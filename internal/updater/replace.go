package updater

import (
	"fmt"
	"io"
	"os"

	"github.com/nvup/nvup/internal/platform"
)

func partialPath(dest string) string {
	return dest + ".partial"
}

// commitPartial moves a verified download over dest. An existing dest is kept
// as "<dest>.backup" until the new file is in place and restored if the move
// fails. The new file takes over the permissions of the one it replaces.
func commitPartial(partial, dest string) error {
	backupPath := dest + ".backup"

	hadCurrent := true
	var origPerm os.FileMode
	info, err := os.Stat(dest)
	switch {
	case os.IsNotExist(err):
		hadCurrent = false
	case err != nil:
		return fmt.Errorf("stat %s: %w", dest, err)
	default:
		origPerm = info.Mode().Perm()
	}

	if hadCurrent {
		if err := os.Rename(dest, backupPath); err != nil {
			return fmt.Errorf("creating backup of %s: %w", dest, err)
		}
	}

	if err := os.Rename(partial, dest); err != nil {
		// Some network filesystems refuse the rename; fall back to copying.
		if copyErr := copyFile(partial, dest); copyErr != nil {
			if hadCurrent {
				if rbErr := rollback(backupPath, dest); rbErr != nil {
					return fmt.Errorf("installing %s: %w (%v)", dest, copyErr, rbErr)
				}
			}
			return fmt.Errorf("installing %s: %w", dest, copyErr)
		}
		os.Remove(partial)
	}

	if hadCurrent {
		if err := platform.Chmod(dest, origPerm); err != nil {
			return fmt.Errorf("restoring permissions on %s: %w", dest, err)
		}
		os.Remove(backupPath)
	}
	return nil
}

// rollback restores the backup to dest.
func rollback(backupPath, dest string) error {
	if err := os.Rename(backupPath, dest); err != nil {
		if copyErr := copyFile(backupPath, dest); copyErr != nil {
			return fmt.Errorf("rollback failed: %w (original rename error: %v)", copyErr, err)
		}
		os.Remove(backupPath)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
