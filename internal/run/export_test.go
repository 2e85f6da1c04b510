package run

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// AcquireLockForTest grabs the run lock for an output root so tests can
// simulate a concurrent run.
func AcquireLockForTest(outputDir string) (*flock.Flock, error) {
	lock := flock.New(filepath.Join(outputDir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("lock already held for %s", outputDir)
	}
	return lock, nil
}
