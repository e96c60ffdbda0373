package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// backupLayout is the timestamp inside backup file names.
const backupLayout = "2006-01-02_15-04-05"

// BackupName returns the backup path for path taken at t:
// "dir/part.scad" becomes "dir/part_2024-01-02_15-04-05.scadbak".
func BackupName(path string, t time.Time) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_" + t.Format(backupLayout) + ".scadbak"
}

// writeBackup stores the original bytes next to path.
func writeBackup(path string, original []byte, mode os.FileMode, t time.Time) (string, error) {
	name := BackupName(path, t)
	if err := os.WriteFile(name, original, mode.Perm()); err != nil {
		return "", fmt.Errorf("backup %s: %w", name, err)
	}
	return name, nil
}

// writeAtomic replaces path with data through a temp file in the same
// directory, so readers see either the old or the new content.
func writeAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	fail := func(err error) error {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if _, err := f.Write(data); err != nil {
		return fail(err)
	}
	if err := f.Chmod(mode.Perm()); err != nil {
		return fail(err)
	}
	if err := f.Sync(); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// restoreModTime puts back the modification time recorded before the rewrite.
func restoreModTime(path string, info os.FileInfo) error {
	return os.Chtimes(path, time.Now(), info.ModTime())
}
