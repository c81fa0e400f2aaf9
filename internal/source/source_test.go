package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/sitemotion/internal/track"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		preserve bool
		want     []track.UnitID
	}{
		{"plain", "hey", false, []track.UnitID{"t-00", "t-01", "t-02"}},
		{"drop spaces", "a b", false, []track.UnitID{"t-00", "t-01"}},
		{"keep spaces", "a b", true, []track.UnitID{"t-00", "t-01-space", "t-02"}},
		{"empty", "", true, []track.UnitID{}},
		{"multibyte", "né", false, []track.UnitID{"t-00", "t-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitChars("t", tt.text, tt.preserve)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("unit %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}

	g := Split("t", "né", false)
	if g[1].Char != 'é' {
		t.Errorf("expected é, got %q", g[1].Char)
	}
}

func TestImageBackdrop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.png")
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	b, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()

	got, err := b.Render(72)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got.Bounds().Dx() != 8 || got.Bounds().Dy() != 4 {
		t.Errorf("bounds %v", got.Bounds())
	}
}

func TestMissingBackdrop(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
