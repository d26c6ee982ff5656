package media

import (
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestCanThumbnail(t *testing.T) {
	for _, ext := range []string{"jpg", ".jpeg", "PNG", ".webp", "gif"} {
		if !CanThumbnail(ext) {
			t.Errorf("CanThumbnail(%q) = false", ext)
		}
	}
	for _, ext := range []string{"heic", ".avif", "mp4", ""} {
		if CanThumbnail(ext) {
			t.Errorf("CanThumbnail(%q) = true", ext)
		}
	}
}

func TestGenerateThumbnail(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "thumb.jpg")

	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for x := 0; x < 640; x++ {
		for y := 0; y < 480; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 40, A: 255})
		}
	}
	f, err := os.Create(src)
	if err != nil {
		t.Fatalf("create src: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode src: %v", err)
	}
	_ = f.Close()

	if err := GenerateThumbnail(src, dst); err != nil {
		t.Fatalf("GenerateThumbnail: %v", err)
	}

	out, err := os.Open(dst)
	if err != nil {
		t.Fatalf("open thumb: %v", err)
	}
	defer out.Close()
	cfg, _, err := image.DecodeConfig(out)
	if err != nil {
		t.Fatalf("decode thumb: %v", err)
	}
	if cfg.Width != ThumbWidth {
		t.Fatalf("thumb width = %d, want %d", cfg.Width, ThumbWidth)
	}
	if cfg.Height != 240 {
		t.Fatalf("thumb height = %d, want 240", cfg.Height)
	}
}
