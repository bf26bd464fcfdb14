package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"
)

func TestSave_CreatesDirectory(t *testing.T) {
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(10, 20, 30, 0), 32, 48, gocv.MatTypeCV8UC3)
	defer img.Close()

	path := filepath.Join(t.TempDir(), "assets", "nested", "sampleoutput.jpg")
	if err := Save(path, img); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Snapshot not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Snapshot is empty")
	}

	// Round trip: the file decodes to the same geometry.
	back := gocv.IMRead(path, gocv.IMReadColor)
	defer back.Close()
	if back.Rows() != 32 || back.Cols() != 48 {
		t.Errorf("Decoded snapshot is %dx%d, want 48x32", back.Cols(), back.Rows())
	}
}

func TestSave_Overwrites(t *testing.T) {
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 8, 8, gocv.MatTypeCV8UC3)
	defer img.Close()

	path := filepath.Join(t.TempDir(), "out.jpg")
	for i := 0; i < 2; i++ {
		if err := Save(path, img); err != nil {
			t.Fatalf("Save #%d failed: %v", i+1, err)
		}
	}
}

func TestSave_EmptyFrame(t *testing.T) {
	img := gocv.NewMat()
	defer img.Close()

	err := Save(filepath.Join(t.TempDir(), "out.jpg"), img)
	if !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("Expected ErrEmptyFrame, got %v", err)
	}
}

func TestSave_DirectoryBlockedByFile(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "assets")
	if err := os.WriteFile(blocker, []byte("not a dir"), 0644); err != nil {
		t.Fatal(err)
	}

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 8, 8, gocv.MatTypeCV8UC3)
	defer img.Close()

	if err := Save(filepath.Join(blocker, "sampleoutput.jpg"), img); err == nil {
		t.Error("Expected an error when the directory path is a file")
	}
}
