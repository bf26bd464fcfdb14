package cmd

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andresmejia3/tonematch/internal/detector"
	"github.com/andresmejia3/tonematch/internal/palette"
	"github.com/andresmejia3/tonematch/internal/pipeline"
	"github.com/andresmejia3/tonematch/internal/tone"
	"github.com/andresmejia3/tonematch/internal/types"
	"github.com/spf13/cobra"
	"gocv.io/x/gocv"
)

func TestParseFaces(t *testing.T) {
	tests := []struct {
		name    string
		specs   []string
		want    []image.Rectangle
		wantErr bool
	}{
		{
			name:  "Single face",
			specs: []string{"10,20,100,150"},
			want:  []image.Rectangle{image.Rect(10, 20, 110, 170)},
		},
		{
			name:  "Spaces are tolerated",
			specs: []string{" 1, 2, 3, 4", "5,6,7,8"},
			want:  []image.Rectangle{image.Rect(1, 2, 4, 6), image.Rect(5, 6, 12, 14)},
		},
		{name: "Too few parts", specs: []string{"1,2,3"}, wantErr: true},
		{name: "Not a number", specs: []string{"a,2,3,4"}, wantErr: true},
		{name: "Zero width", specs: []string{"1,2,0,4"}, wantErr: true},
		{name: "None", specs: nil, want: []image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFaces(tt.specs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFaces() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseFaces() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("face %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAnnotatedName(t *testing.T) {
	tests := map[string]string{
		"photo.png":           "photo_annotated.jpg",
		"/tmp/shots/me.jpeg":  "me_annotated.jpg",
		"no_extension":        "no_extension_annotated.jpg",
		"dir/archive.tar.png": "archive.tar_annotated.jpg",
	}
	for in, want := range tests {
		if got := annotatedName(in); got != want {
			t.Errorf("annotatedName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateAnnotateDir(t *testing.T) {
	dir := t.TempDir()
	if err := validateAnnotateDir(""); err != nil {
		t.Errorf("Empty dir should be accepted: %v", err)
	}
	if err := validateAnnotateDir(dir); err != nil {
		t.Errorf("Existing dir should be accepted: %v", err)
	}
	if err := validateAnnotateDir(filepath.Join(dir, "new")); err != nil {
		t.Errorf("Missing dir should be accepted: %v", err)
	}

	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := validateAnnotateDir(file); err == nil {
		t.Error("Expected an error for a regular file")
	}
}

func TestWriteReport(t *testing.T) {
	results := []fileResult{
		{
			Path: "a.jpg",
			Readings: []types.Reading{{
				Color:      tone.RGB{R: 220, G: 210, B: 215},
				Brightness: 215,
				Tier:       tone.Fair,
				Best:       []string{"Navy", "Soft Pink", "Burgundy"},
				Avoid:      []string{"Orange", "Bright Yellow"},
			}},
		},
		{Path: "empty.jpg"},
	}

	var buf bytes.Buffer
	if err := writeReport(&buf, results); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{"FILE", "a.jpg", "Fair", "215.0", "(220, 210, 215)", "#dcd2d7", "Navy, Soft Pink, Burgundy", "Orange, Bright Yellow", "no face detected"} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	face := image.Rect(50, 50, 250, 250)

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 300, 400, gocv.MatTypeCV8UC3)
	sub := img.Region(face)
	sub.SetTo(gocv.NewScalar(40, 60, 90, 0)) // RGB (90,60,40): brightness 63.3
	sub.Close()
	src := filepath.Join(dir, "sample.png")
	ok := gocv.IMWrite(src, img)
	img.Close()
	if !ok {
		t.Fatal("Failed to write test image")
	}

	p := pipeline.New(detector.Static{face}, palette.Default())
	annotate := filepath.Join(dir, "out")

	res, ok := analyzeFile(p, src, annotate)
	if !ok {
		t.Fatal("Expected the image to be readable")
	}
	if len(res.Readings) != 1 || res.Readings[0].Tier != tone.Tan {
		t.Fatalf("Unexpected readings %+v", res.Readings)
	}
	if _, err := os.Stat(filepath.Join(annotate, "sample_annotated.jpg")); err != nil {
		t.Errorf("Annotated copy not written: %v", err)
	}

	if _, ok := analyzeFile(p, filepath.Join(dir, "missing.png"), ""); ok {
		t.Error("Expected a missing image to be reported as unreadable")
	}
}

func TestEnvFallback(t *testing.T) {
	var device string
	c := &cobra.Command{Use: "test"}
	c.Flags().StringVar(&device, "device", "0", "")

	t.Setenv("TONEMATCH_DEVICE", "clip.mp4")
	envFallback(c, "device", "TONEMATCH_DEVICE")
	if device != "clip.mp4" {
		t.Errorf("Expected env value, got %q", device)
	}

	// An explicit flag wins over the environment.
	if err := c.Flags().Set("device", "2"); err != nil {
		t.Fatal(err)
	}
	envFallback(c, "device", "TONEMATCH_DEVICE")
	if device != "2" {
		t.Errorf("Expected flag value, got %q", device)
	}

	// Unknown flags are ignored.
	envFallback(c, "missing", "TONEMATCH_DEVICE")
}
