package debug

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/midgard-ocean/pkg/math"
	"github.com/Faultbox/midgard-ocean/pkg/wave"
)

func TestTexelImageKeepsRowOrder(t *testing.T) {
	// Row 0 (texture v = 0) red, row 1 blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := TexelImage(pixels, 1, 2)
	if err != nil {
		t.Fatalf("TexelImage: %v", err)
	}
	if img.Pix[0] != 255 || img.Pix[2] != 0 {
		t.Errorf("row 0 = %v, want red", img.Pix[0:4])
	}
	if img.Pix[4] != 0 || img.Pix[6] != 255 {
		t.Errorf("row 1 = %v, want blue", img.Pix[4:8])
	}
}

// A GPU read-back and a CPU bake of the same waves must land in the same
// orientation, otherwise the green channel flips sign between captures.
func TestTexelImageMatchesCPUBakeOrientation(t *testing.T) {
	waves := wave.Flatten([]wave.Wave{{Parameters: wave.Parameters{
		Wavelength: 0.5,
		Steepness:  2,
		Speed:      0,
		AmpOverLen: 0.05,
		Direction:  math.Vec2{Y: 1},
	}}})
	const size = 8

	baked, err := wave.BakeNormalMap(context.Background(), waves, 0, size, size)
	if err != nil {
		t.Fatalf("bake: %v", err)
	}

	// Texels as GL stores them: row v first, v = 0 at the start of the buffer.
	texels := make([]byte, 0, size*size*4)
	for v := 0; v < size; v++ {
		for u := 0; u < size; u++ {
			uv := math.Vec2{X: float32(u) / size, Y: float32(v) / size}
			c := wave.EncodeNormal(wave.NormalMapNormal(waves, 0, uv))
			texels = append(texels, toByte(c[0]), toByte(c[1]), toByte(c[2]), 255)
		}
	}
	img, err := TexelImage(texels, size, size)
	if err != nil {
		t.Fatalf("TexelImage: %v", err)
	}

	for y := 0; y < size; y++ {
		got := img.RGBAAt(3, y).G
		want := baked.RGBAAt(3, y).G
		if d := int(got) - int(want); d < -1 || d > 1 {
			t.Errorf("row %d green = %d, CPU bake has %d", y, got, want)
		}
	}
}

func toByte(c float32) uint8 {
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return uint8(c*255 + 0.5)
}

func TestTexelImageRejectsBadInput(t *testing.T) {
	if _, err := TexelImage(make([]byte, 12), 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
	if _, err := TexelImage(nil, 0, 2); err == nil {
		t.Error("expected invalid size error")
	}
}

func TestCaptureFromTexels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "captures")
	c := NewCapture(dir, "normalmap")
	c.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	pixels := make([]byte, 4*4*4)
	for i := range pixels {
		pixels[i] = byte(i)
	}

	path, err := c.FromTexels(pixels, 4, 4)
	if err != nil {
		t.Fatalf("FromTexels: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "normalmap_2024-05-01_12-30-00") {
		t.Errorf("unexpected filename %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("bounds = %v, want 4x4", b)
	}
}
