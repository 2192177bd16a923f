package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/yaklabco/wsfmt/pkg/fsutil"
)

func writeTemp(t *testing.T, content string, mode os.FileMode) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.bc")
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	t.Parallel()

	t.Run("returns content and snapshot", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "x = 1;\n", 0644)
		content, snap, err := fsutil.Read(context.Background(), path)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if string(content) != "x = 1;\n" {
			t.Errorf("content = %q", content)
		}
		if snap.Path != path || snap.Size != int64(len(content)) {
			t.Errorf("unexpected snapshot %+v", snap)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.Read(context.Background(), filepath.Join(t.TempDir(), "nope.bc"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.Read(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := fsutil.Read(ctx, writeTemp(t, "x;", 0644))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestSnapshot_Changed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		_, snap, err := fsutil.Read(ctx, writeTemp(t, "a;\n", 0644))
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		changed, err := snap.Changed(ctx, true)
		if err != nil || changed {
			t.Errorf("Changed() = %v, %v; want false, nil", changed, err)
		}
	})

	t.Run("size change", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a;\n", 0644)
		_, snap, err := fsutil.Read(ctx, path)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if err := os.WriteFile(path, []byte("a; b;\n"), 0644); err != nil {
			t.Fatalf("modify: %v", err)
		}
		changed, err := snap.Changed(ctx, false)
		if err != nil || !changed {
			t.Errorf("Changed() = %v, %v; want true, nil", changed, err)
		}
	})

	t.Run("same size and time needs strict check", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a;\n", 0644)
		_, snap, err := fsutil.Read(ctx, path)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if err := os.WriteFile(path, []byte("b;\n"), 0644); err != nil {
			t.Fatalf("modify: %v", err)
		}
		if err := os.Chtimes(path, snap.ModTime, snap.ModTime); err != nil {
			t.Fatalf("chtimes: %v", err)
		}

		quick, err := snap.Changed(ctx, false)
		if err != nil || quick {
			t.Errorf("quick Changed() = %v, %v; want false, nil", quick, err)
		}
		strict, err := snap.Changed(ctx, true)
		if err != nil || !strict {
			t.Errorf("strict Changed() = %v, %v; want true, nil", strict, err)
		}
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a;\n", 0644)
		_, snap, err := fsutil.Read(ctx, path)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if err := os.Remove(path); err != nil {
			t.Fatalf("remove: %v", err)
		}
		changed, err := snap.Changed(ctx, true)
		if err != nil || !changed {
			t.Errorf("Changed() = %v, %v; want true, nil", changed, err)
		}
	})

	t.Run("nil snapshot", func(t *testing.T) {
		t.Parallel()

		var snap *fsutil.Snapshot
		if _, err := snap.Changed(ctx, true); !errors.Is(err, fsutil.ErrNilSnapshot) {
			t.Errorf("error = %v, want ErrNilSnapshot", err)
		}
	})
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes with mode and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.bc")
		if err := fsutil.WriteAtomic(ctx, path, []byte("x;\n"), 0600); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil || string(got) != "x;\n" {
			t.Fatalf("read back = %q, %v", got, err)
		}

		if runtime.GOOS != "windows" {
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat: %v", err)
			}
			if info.Mode().Perm() != 0600 {
				t.Errorf("mode = %v, want 0600", info.Mode().Perm())
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("readdir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected only the target file, found %d entries", len(entries))
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "out.bc")
		if err := fsutil.WriteAtomic(ctx, path, []byte("x"), 0); err == nil {
			t.Fatal("expected error for missing directory")
		}
	})
}

func TestReplace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("rewrites unchanged file", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a;b;", 0644)
		_, snap, err := fsutil.Read(ctx, path)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if err := fsutil.Replace(ctx, snap, []byte("a;\nb;\n")); err != nil {
			t.Fatalf("Replace() error = %v", err)
		}
		got, _ := os.ReadFile(path)
		if string(got) != "a;\nb;\n" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("refuses concurrently modified file", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a;b;", 0644)
		_, snap, err := fsutil.Read(ctx, path)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if err := os.WriteFile(path, []byte("edited elsewhere"), 0644); err != nil {
			t.Fatalf("modify: %v", err)
		}

		err = fsutil.Replace(ctx, snap, []byte("a;\nb;\n"))
		if !errors.Is(err, fsutil.ErrConcurrentModification) {
			t.Fatalf("error = %v, want ErrConcurrentModification", err)
		}
		got, _ := os.ReadFile(path)
		if string(got) != "edited elsewhere" {
			t.Errorf("concurrent edit was overwritten: %q", got)
		}
	})
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes sidecar once", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "original", 0644)
		content, snap, err := fsutil.Read(ctx, path)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

		created, err := fsutil.CreateBackup(ctx, snap, content, cfg)
		if err != nil || !created {
			t.Fatalf("CreateBackup() = %v, %v; want true, nil", created, err)
		}

		created, err = fsutil.CreateBackup(ctx, snap, []byte("second"), cfg)
		if err != nil || created {
			t.Fatalf("second CreateBackup() = %v, %v; want false, nil", created, err)
		}

		got, err := os.ReadFile(path + fsutil.BackupSuffix)
		if err != nil || string(got) != "original" {
			t.Errorf("backup = %q, %v; want original", got, err)
		}
	})

	t.Run("disabled and none modes", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "original", 0644)
		content, snap, err := fsutil.Read(ctx, path)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}

		for _, cfg := range []fsutil.BackupConfig{
			{Enabled: false, Mode: fsutil.BackupModeSidecar},
			{Enabled: true, Mode: fsutil.BackupModeNone},
		} {
			created, err := fsutil.CreateBackup(ctx, snap, content, cfg)
			if err != nil || created {
				t.Errorf("CreateBackup(%+v) = %v, %v; want false, nil", cfg, created, err)
			}
		}
		if _, err := os.Stat(path + fsutil.BackupSuffix); !os.IsNotExist(err) {
			t.Errorf("unexpected backup file: %v", err)
		}
	})

	t.Run("backup path", func(t *testing.T) {
		t.Parallel()

		if got := fsutil.BackupPath("a.bc", fsutil.BackupModeNone); got != "" {
			t.Errorf("BackupPath(none) = %q", got)
		}
		if got := fsutil.BackupPath("a.bc", "unknown"); got != "a.bc"+fsutil.BackupSuffix {
			t.Errorf("BackupPath(unknown) = %q", got)
		}
	})
}
