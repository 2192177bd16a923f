package fsutil

import (
	"context"
	"fmt"
)

// BackupMode specifies how backups are stored.
type BackupMode string

const (
	// BackupModeSidecar stores the backup next to the file with BackupSuffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to the file name of sidecar backups.
const BackupSuffix = ".wsfmt.orig"

// BackupConfig controls backup behavior.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// keeps reports whether the configuration stores backups at all.
func (c BackupConfig) keeps() bool {
	return c.Enabled && c.Mode != BackupModeNone
}

// BackupPath returns where the backup of path is stored, or "" when mode
// keeps none. Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup stores the original content of a file about to be
// rewritten and reports whether a backup was written. The first backup
// wins: an existing one is never replaced.
func CreateBackup(ctx context.Context, snap *Snapshot, content []byte, cfg BackupConfig) (bool, error) {
	if snap == nil {
		return false, ErrNilSnapshot
	}
	if !cfg.keeps() {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("backup %s: %w", snap.Path, err)
	}

	mode := snap.Mode
	if mode == 0 {
		mode = DefaultFileMode
	}

	s, err := stage(BackupPath(snap.Path, cfg.Mode), content, mode)
	if err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	created, err := s.commitNew()
	if err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return created, nil
}
