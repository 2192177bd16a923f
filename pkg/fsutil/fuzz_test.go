package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/wsfmt/pkg/fsutil"
)

func FuzzReplace(f *testing.F) {
	f.Add([]byte(""), []byte("x;\n"))
	f.Add([]byte("if(a){b;}"), []byte("if (a) { b; }\n"))
	f.Add([]byte("\x00\x01"), []byte("\r\n\r\n"))
	f.Add(make([]byte, 1024), []byte{})

	f.Fuzz(func(t *testing.T, original, replacement []byte) {
		path := filepath.Join(t.TempDir(), "fuzz.bc")
		if err := os.WriteFile(path, original, 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		ctx := context.Background()
		content, snap, err := fsutil.Read(ctx, path)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if !bytes.Equal(content, original) {
			t.Fatalf("Read returned %q, want %q", content, original)
		}

		if err := fsutil.Replace(ctx, snap, replacement); err != nil {
			t.Fatalf("Replace failed: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !bytes.Equal(got, replacement) {
			t.Errorf("content = %q, want %q", got, replacement)
		}
	})
}
