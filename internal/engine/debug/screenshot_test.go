package debug

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/bmp"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", PNG, false},
		{"PNG", PNG, false},
		{".bmp", BMP, false},
		{"jpeg", PNG, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := FormatFromPath("out/preview.BMP"); got != BMP {
		t.Errorf("FormatFromPath(bmp) = %v", got)
	}
	if got := FormatFromPath("preview"); got != PNG {
		t.Errorf("FormatFromPath(no ext) = %v", got)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	for _, f := range []Format{PNG, BMP} {
		var buf bytes.Buffer
		if err := Encode(&buf, img, f); err != nil {
			t.Fatalf("Encode(%v): %v", f, err)
		}
		var decoded image.Image
		var err error
		if f == BMP {
			decoded, err = bmp.Decode(&buf)
		} else {
			decoded, err = png.Decode(&buf)
		}
		if err != nil {
			t.Fatalf("decode %v: %v", f, err)
		}
		r, g, b, _ := decoded.At(1, 1).RGBA()
		if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
			t.Errorf("%v pixel = %d,%d,%d", f, r>>8, g>>8, b>>8)
		}
	}
}

func TestCaptureFromPixelsFlips(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(filepath.Join(dir, "shots"), "terrain", PNG)
	sc.now = fixedClock

	// 1x2 image: bottom row red, top row blue (GL order is bottom-up).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}
	if !strings.HasSuffix(path, "terrain_2024-03-01_12-30-45.000.png") {
		t.Errorf("path = %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, b, _ := img.At(0, 0).RGBA(); b>>8 != 255 {
		t.Error("top row should be blue")
	}
	if r, _, _, _ := img.At(0, 1).RGBA(); r>>8 != 255 {
		t.Error("bottom row should be red")
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x", PNG)
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

var errDiskFull = errors.New("disk full")

// closeFailer buffers writes and fails on Close, as a file on a full disk
// may.
type closeFailer struct {
	bytes.Buffer
	closed bool
}

func (c *closeFailer) Close() error {
	c.closed = true
	return errDiskFull
}

func TestEncodeToReportsCloseError(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var w closeFailer

	err := encodeTo(&w, img, PNG)
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("err = %v, want close error", err)
	}
	if !w.closed {
		t.Error("writer was not closed")
	}
	if w.Len() == 0 {
		t.Error("image was not flushed before close")
	}
}

func TestWriteFileCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "shot.bmp")
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	if err := WriteFile(path, img, BMP); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := bmp.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
}
