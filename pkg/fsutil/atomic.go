package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for files written without one.
const DefaultFileMode os.FileMode = 0644

// staged is content written to a temp file beside its destination and not
// yet visible under the destination name.
type staged struct {
	dest string
	tmp  string
}

// stage writes content to a synced temp file in the directory of dest.
func stage(dest string, content []byte, mode os.FileMode) (*staged, error) {
	file, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	s := &staged{dest: dest, tmp: file.Name()}

	_, err = file.Write(content)
	if err == nil {
		err = file.Sync()
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(s.tmp, mode.Perm())
	}
	if err != nil {
		s.discard()
		return nil, fmt.Errorf("stage %s: %w", dest, err)
	}
	return s, nil
}

// commit replaces dest with the staged content.
func (s *staged) commit() error {
	if err := os.Rename(s.tmp, s.dest); err != nil {
		s.discard()
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// commitNew publishes the staged content only if dest does not exist yet.
// It reports false when dest was already present.
func (s *staged) commitNew() (bool, error) {
	defer s.discard()

	err := os.Link(s.tmp, s.dest)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrExist):
		return false, nil
	}

	// Hard links are unsupported on some filesystems.
	if _, statErr := os.Lstat(s.dest); statErr == nil {
		return false, nil
	}
	if err := os.Rename(s.tmp, s.dest); err != nil {
		return false, fmt.Errorf("publish %s: %w", s.dest, err)
	}
	return true, nil
}

func (s *staged) discard() {
	_ = os.Remove(s.tmp)
}

// WriteAtomic replaces path with content so readers see either the old or
// the new bytes. On error the target is untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	s, err := stage(path, content, mode)
	if err != nil {
		return err
	}
	return s.commit()
}

// Replace overwrites the snapshotted file with content, keeping its mode.
// It fails with ErrConcurrentModification when the file no longer matches
// the snapshot.
func Replace(ctx context.Context, snap *Snapshot, content []byte) error {
	changed, err := snap.Changed(ctx, true)
	if err != nil {
		return err
	}
	if changed {
		return fmt.Errorf("%w: %s", ErrConcurrentModification, snap.Path)
	}
	return WriteAtomic(ctx, snap.Path, content, snap.Mode)
}
