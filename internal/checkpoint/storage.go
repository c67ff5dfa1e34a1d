package checkpoint

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const checkpointTimeLayout = "2006-01-02_15-04-05"

// CreatePath builds a timestamped checkpoint filename under directory,
// matching original_source/src/checkpoint/storage.rs's
// create_checkpoint_path.
func CreatePath(directory string) string {
	name := fmt.Sprintf("checkpoint_%s.json", time.Now().UTC().Format(checkpointTimeLayout))
	return filepath.Join(directory, name)
}

type checkpointFile struct {
	path     string
	modified time.Time
}

func listCheckpoints(directory string) []checkpointFile {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil
	}

	var files []checkpointFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, checkpointFile{
			path:     filepath.Join(directory, entry.Name()),
			modified: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].modified.After(files[j].modified) })
	return files
}

// FindLatest returns the most recently modified .json checkpoint file in
// directory, or "" if none exist.
func FindLatest(directory string) string {
	files := listCheckpoints(directory)
	if len(files) == 0 {
		return ""
	}
	return files[0].path
}

// CleanupOld deletes every checkpoint beyond the keepLastN most recent,
// matching original_source's cleanup_old_checkpoints.
func CleanupOld(directory string, keepLastN int) error {
	files := listCheckpoints(directory)
	if keepLastN < 0 {
		keepLastN = 0
	}
	if len(files) <= keepLastN {
		return nil
	}

	for _, f := range files[keepLastN:] {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("checkpoint: removing %s: %w", f.path, err)
		}
	}
	return nil
}

// SaveWithRotation writes a new checkpoint into directory and prunes old
// ones beyond keepLastN, returning the path written.
func SaveWithRotation(directory string, keepLastN int, save func(path string) error) (string, error) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return "", fmt.Errorf("checkpoint: creating %s: %w", directory, err)
	}

	path := CreatePath(directory)
	if err := save(path); err != nil {
		return "", err
	}

	if err := CleanupOld(directory, keepLastN); err != nil {
		return "", err
	}
	return path, nil
}

// QuarantineCorrupt renames a checkpoint file that failed to parse,
// appending a timestamp suffix, so a fresh simulation can start without
// losing the broken file. Mirrors load_checkpoint's backup-and-continue
// behavior for a deserialization error.
func QuarantineCorrupt(path string) error {
	backupPath := fmt.Sprintf("%s.backup.%s", path, time.Now().UTC().Format(checkpointTimeLayout))
	if err := os.Rename(path, backupPath); err != nil {
		return fmt.Errorf("checkpoint: quarantining %s: %w", path, err)
	}
	return nil
}

// IsCorruptJSON reports whether msg looks like a JSON decode error,
// distinguishing a corrupt checkpoint from a missing file.
func IsCorruptJSON(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "unmarshal") || strings.Contains(msg, "invalid character")
}
