package icons

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"voirank/internal/textutil"
)

// Set is the collection of icon files found in a directory, keyed by file
// stem.
type Set struct {
	stems []string
	paths map[string]string
}

// LoadDir indexes every .png file in dir. A missing directory yields an
// empty set.
func LoadDir(dir string) (*Set, error) {
	set := &Set{paths: make(map[string]string)}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return set, nil
		}
		return nil, fmt.Errorf("read icon dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		set.paths[stem] = filepath.Join(dir, entry.Name())
		set.stems = append(set.stems, stem)
	}
	slices.Sort(set.stems)
	return set, nil
}

// Len returns the number of icons.
func (s *Set) Len() int { return len(s.stems) }

// Match finds the icon for name. An icon whose normalized stem equals the
// normalized name wins; otherwise the first stem, in sorted order, that
// contains or is contained by the name is used.
func (s *Set) Match(name string) (string, bool) {
	if s == nil || len(s.stems) == 0 {
		return "", false
	}
	want := textutil.NormalizeName(name)
	for _, stem := range s.stems {
		if textutil.NormalizeName(stem) == want {
			return s.paths[stem], true
		}
	}
	for _, stem := range s.stems {
		if textutil.NameMatches(stem, name) {
			return s.paths[stem], true
		}
	}
	return "", false
}

// DominantColor averages the visible pixels of a PNG, ignoring near-white
// and dark-grey pixels, and returns the result as #rrggbb. ok is false when
// no pixel qualifies.
func DominantColor(path string) (string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return "", false, fmt.Errorf("decode %s: %w", path, err)
	}
	hex, ok := averageColor(img)
	return hex, ok, nil
}

func averageColor(img image.Image) (string, bool) {
	var sumR, sumG, sumB, n uint64
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A <= 128 || isWhite(c) || isGrey(c) {
				continue
			}
			sumR += uint64(c.R)
			sumG += uint64(c.G)
			sumB += uint64(c.B)
			n++
		}
	}
	if n == 0 {
		return "", false
	}
	return fmt.Sprintf("#%02x%02x%02x", sumR/n, sumG/n, sumB/n), true
}

func isWhite(c color.NRGBA) bool {
	return c.R > 240 && c.G > 240 && c.B > 240
}

func isGrey(c color.NRGBA) bool {
	in := func(v uint8) bool { return v > 70 && v < 100 }
	return in(c.R) && in(c.G) && in(c.B)
}

// Assignment is the icon and colour chosen for each key.
type Assignment struct {
	Icons   map[string]string
	Colors  map[string]string
	Missing []string
}

// Assign matches keys to icons and derives colours from them. Keys with a
// configured colour keep it; keys without an icon or usable pixels are left
// for the chart palette. Icons that fail to decode are reported through
// warn and treated as colourless.
func Assign(set *Set, keys []string, fixed map[string]string, warn func(path string, err error)) Assignment {
	out := Assignment{Icons: make(map[string]string), Colors: make(map[string]string)}
	for _, key := range keys {
		if c, ok := fixed[key]; ok {
			out.Colors[key] = c
		}
		path, ok := set.Match(key)
		if !ok {
			out.Missing = append(out.Missing, key)
			continue
		}
		out.Icons[key] = path
		if _, ok := out.Colors[key]; ok {
			continue
		}
		hex, ok, err := DominantColor(path)
		if err != nil {
			if warn != nil {
				warn(path, err)
			}
			continue
		}
		if ok {
			out.Colors[key] = hex
		}
	}
	return out
}
