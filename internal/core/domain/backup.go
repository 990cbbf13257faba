package domain

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// JSONFileSuffix is the extension of JSON storage files and their backups.
const JSONFileSuffix = ".json"

// SettingsDirectoryName is the directory under the data root holding storage files.
const SettingsDirectoryName = "Settings"

// backupSecondsLayout formats the whole-second part of a backup timestamp.
// The 100ns fraction is appended separately as seven digits.
const backupSecondsLayout = "2006-01-02-15-04-05"

// ticksPerSecond is the number of 100ns units in a second.
const ticksPerSecond = 10_000_000

// Backup describes a timestamped copy of a discarded storage file.
type Backup struct {
	Path      string
	CreatedAt time.Time
	Size      int64
}

// BackupTimestamp formats t as YYYY-MM-DD-HH-mm-ss-fffffff in t's location.
func BackupTimestamp(t time.Time) string {
	ticks := t.Nanosecond() / 100
	return fmt.Sprintf("%s-%07d", t.Format(backupSecondsLayout), ticks)
}

// BackupPath returns the sibling backup path for filePath at time t:
// <dir>/<stem>-<timestamp>.json.
func BackupPath(filePath string, t time.Time) string {
	dir := filepath.Dir(filePath)
	name := FileStem(filePath) + "-" + BackupTimestamp(t) + JSONFileSuffix
	return filepath.Join(dir, name)
}

// FileStem returns the base name of path without its extension.
func FileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseBackupName reports whether name is a backup of a file with the given stem,
// returning the timestamp encoded in it (interpreted in loc).
func ParseBackupName(stem, name string, loc *time.Location) (time.Time, bool) {
	prefix := stem + "-"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, JSONFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, prefix), JSONFileSuffix)

	// "2006-01-02-15-04-05" is 19 characters, followed by "-fffffff".
	if len(stamp) != len(backupSecondsLayout)+8 || stamp[len(backupSecondsLayout)] != '-' {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(backupSecondsLayout, stamp[:len(backupSecondsLayout)], loc)
	if err != nil {
		return time.Time{}, false
	}
	ticks, err := strconv.Atoi(stamp[len(backupSecondsLayout)+1:])
	if err != nil || ticks < 0 || ticks >= ticksPerSecond {
		return time.Time{}, false
	}
	return t.Add(time.Duration(ticks) * 100), true
}
