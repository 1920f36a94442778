// Package store holds the application's persisted state: the per-date
// event store and the class template / daily task store. Both persist as
// whole-file replacements with optional timestamped backup copies.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// writeFileAtomic writes data to path via a temp file in the same
// directory followed by a rename, so a crash mid-write never leaves a
// truncated store behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".classcal-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// writeBackup copies data to a timestamped sibling of path, e.g.
// calendar_events.json -> calendar_events_backup_20250825_153000.json.
func writeBackup(path string, data []byte) error {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	name := fmt.Sprintf("%s_backup_%s%s", base, time.Now().Format("20060102_150405"), ext)
	return os.WriteFile(name, data, 0o600)
}
