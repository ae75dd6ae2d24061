package mentor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadPicture(t *testing.T) {
	dir := t.TempDir()

	small := filepath.Join(dir, "me.png")
	if err := os.WriteFile(small, []byte("\x89PNG\r\n\x1a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Truncate sets the size without writing the bytes.
	huge := filepath.Join(dir, "huge.png")
	f, err := os.Create(huge)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Truncate(1 << 30); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tests := []struct {
		name      string
		path      string
		wantBytes int
		wantValid bool
	}{
		{"small file", small, 8, false},
		{"over the limit", huge, 0, true},
		{"directory", dir, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadPicture(tt.path)
			var verr *ValidationError
			if tt.wantValid {
				if !errors.As(err, &verr) {
					t.Fatalf("err = %v, want *ValidationError", err)
				}
				if data != nil {
					t.Errorf("rejected file returned %d bytes", len(data))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(data) != tt.wantBytes {
				t.Errorf("read %d bytes, want %d", len(data), tt.wantBytes)
			}
		})
	}
}

func TestReadPictureMissingFile(t *testing.T) {
	_, err := ReadPicture(filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}
