// Package jsonfile persists the activity log as a single pretty-printed JSON object.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rpggio/burstguard/internal/domain/activity"
)

// EnsureFile creates an empty file at path, and its directory, if it does not exist.
func EnsureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: accessing %s: %v", activity.ErrStorageRead, path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating directory %s: %v", activity.ErrStorageWrite, dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", activity.ErrStorageWrite, path, err)
	}
	return f.Close()
}

// LoadStore reads the activity log at path, creating an empty file if needed.
// An empty file is an empty log.
func LoadStore(path string) (activity.ActivityLog, error) {
	if err := EnsureFile(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", activity.ErrStorageRead, path, err)
	}

	log := activity.ActivityLog{}
	if len(bytes.TrimSpace(data)) == 0 {
		return log, nil
	}
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", activity.ErrStorageParse, path, err)
	}
	if log == nil {
		// a literal "null" document
		log = activity.ActivityLog{}
	}
	return log, nil
}

// SaveStore overwrites path with log, indented by two spaces. The content is
// written to a temporary file in the same directory and renamed into place.
func SaveStore(path string, log activity.ActivityLog) error {
	if log == nil {
		log = activity.ActivityLog{}
	}
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding: %v", activity.ErrStorageWrite, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", activity.ErrStorageWrite, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing %s: %v", activity.ErrStorageWrite, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", activity.ErrStorageWrite, tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", activity.ErrStorageWrite, tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", activity.ErrStorageWrite, path, err)
	}
	return nil
}
