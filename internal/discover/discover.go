package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	sourceExt = ".png"
	destExt   = ".jpg"
)

// Item is one unit of conversion work: a source file, its size at scan time,
// and the destination path that mirrors its position under the output root.
// Immutable once created; consumed by exactly one worker.
type Item struct {
	Source string
	Dest   string
	Size   int64
}

// Scan recursively collects every PNG file under inputRoot (extension matched
// case-insensitively) and computes its destination under outputRoot with the
// extension rewritten. Destination parent directories are created eagerly so
// workers never race on directory creation for sibling files.
//
// An empty result is a valid terminal state, not an error. A missing or
// unreadable input root is an error and aborts the run before any work is
// scheduled.
func Scan(inputRoot, outputRoot string) ([]Item, error) {
	info, err := os.Stat(inputRoot)
	if err != nil {
		return nil, fmt.Errorf("input root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input root %s is not a directory", inputRoot)
	}

	var items []Item
	err = filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			// Never descend into the output tree when it nests under the input.
			if path != inputRoot && path == outputRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), sourceExt) {
			return nil
		}

		rel, err := filepath.Rel(inputRoot, path)
		if err != nil {
			return err
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		dest := filepath.Join(outputRoot, strings.TrimSuffix(rel, filepath.Ext(rel))+destExt)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("create destination directory for %s: %w", rel, err)
		}

		items = append(items, Item{Source: path, Dest: dest, Size: fi.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", inputRoot, err)
	}

	return items, nil
}
