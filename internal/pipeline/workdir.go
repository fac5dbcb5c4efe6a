package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout maps a fetch run onto the filesystem: transient per-segment
// files live under <Root>/work/<kind>/<name>, final concatenated outputs
// at <Root>/<kind><ext>. The work tree is removed after assembly.
type Layout struct {
	Root string
}

// WorkRoot returns the transient working directory for the run.
func (l Layout) WorkRoot() string {
	return filepath.Join(l.Root, "work")
}

// WorkDir returns the working directory for one output kind.
func (l Layout) WorkDir(kind Kind) string {
	return filepath.Join(l.WorkRoot(), string(kind))
}

// SegmentPath returns the destination path for a task's segment file.
func (l Layout) SegmentPath(t Task) string {
	return filepath.Join(l.WorkDir(t.Kind), t.Name)
}

// OutputPath returns the final output file for a kind, e.g. video.ts.
func (l Layout) OutputPath(kind Kind, ext string) string {
	return filepath.Join(l.Root, string(kind)+ext)
}

// EnsureWorkDirs creates the per-kind working directories, with parents.
func (l Layout) EnsureWorkDirs() error {
	for _, kind := range kinds {
		dir := l.WorkDir(kind)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create working directory %s: %w", dir, err)
		}
	}
	return nil
}

// RemoveWork recursively removes the working directory tree.
func (l Layout) RemoveWork() error {
	if err := os.RemoveAll(l.WorkRoot()); err != nil {
		return fmt.Errorf("remove working directory %s: %w", l.WorkRoot(), err)
	}
	return nil
}
