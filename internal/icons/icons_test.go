package icons_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"voirank/internal/icons"
)

func writePNG(t *testing.T, path string, fill func(x, y int) color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, fill(x, y))
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestDominantColorSkipsWhiteGreyAndTransparent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	writePNG(t, path, func(x, y int) color.NRGBA {
		switch {
		case y == 0:
			return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		case y == 1:
			return color.NRGBA{R: 85, G: 85, B: 85, A: 255}
		case y == 2:
			return color.NRGBA{R: 0, G: 255, B: 0, A: 10}
		default:
			return color.NRGBA{R: 200, G: 100, B: 0, A: 255}
		}
	})
	hex, ok, err := icons.DominantColor(path)
	if err != nil || !ok {
		t.Fatalf("DominantColor failed: %v %v", ok, err)
	}
	if hex != "#c86400" {
		t.Fatalf("DominantColor = %s, want #c86400", hex)
	}
}

func TestDominantColorWithoutUsablePixels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "white.png")
	writePNG(t, path, func(x, y int) color.NRGBA { return color.NRGBA{R: 250, G: 250, B: 250, A: 255} })
	if _, ok, err := icons.DominantColor(path); err != nil || ok {
		t.Fatalf("expected no colour, got ok=%v err=%v", ok, err)
	}
}

func TestMatchAndAssign(t *testing.T) {
	dir := t.TempDir()
	red := func(x, y int) color.NRGBA { return color.NRGBA{R: 200, A: 255} }
	writePNG(t, filepath.Join(dir, "結月 ゆかり.png"), red)
	writePNG(t, filepath.Join(dir, "きりたん.png"), red)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	set, err := icons.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 icons, got %d", set.Len())
	}
	if path, ok := set.Match("結月ゆかり"); !ok || filepath.Base(path) != "結月 ゆかり.png" {
		t.Fatalf("exact match failed: %s %v", path, ok)
	}
	if path, ok := set.Match("東北きりたん"); !ok || filepath.Base(path) != "きりたん.png" {
		t.Fatalf("containment match failed: %s %v", path, ok)
	}

	got := icons.Assign(set, []string{"結月ゆかり", "東北きりたん", "ずんだもん"}, map[string]string{"結月ゆかり": "#a05daf"}, nil)
	if got.Colors["結月ゆかり"] != "#a05daf" {
		t.Fatalf("fixed colour must win, got %s", got.Colors["結月ゆかり"])
	}
	if got.Colors["東北きりたん"] != "#c80000" {
		t.Fatalf("derived colour = %s", got.Colors["東北きりたん"])
	}
	if !reflect.DeepEqual(got.Missing, []string{"ずんだもん"}) {
		t.Fatalf("missing = %v", got.Missing)
	}
}

func TestLoadDirMissing(t *testing.T) {
	set, err := icons.LoadDir(filepath.Join(t.TempDir(), "none"))
	if err != nil || set.Len() != 0 {
		t.Fatalf("expected empty set, got %v %v", set, err)
	}
}
