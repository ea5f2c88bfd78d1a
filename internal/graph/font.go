package graph

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fontPaths lists common locations of a Japanese-capable font.
var fontPaths = []string{
	// macOS
	"/System/Library/Fonts/ヒラギノ角ゴシック W3.ttc",
	"/System/Library/Fonts/Hiragino Sans GB.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Linux
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	// Windows
	"C:\\Windows\\Fonts\\YuGothR.ttc",
	"C:\\Windows\\Fonts\\msgothic.ttc",
}

// LoadFace loads a font face of the given size from path. Collections use
// their first font.
func LoadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font file: %w", err)
	}
	return parseFace(data, size)
}

func parseFace(data []byte, size float64) (font.Face, error) {
	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		fnt, err := coll.Font(0)
		if err != nil {
			return nil, fmt.Errorf("reading font collection: %w", err)
		}
		return opentype.NewFace(fnt, &opentype.FaceOptions{Size: size, DPI: 72})
	}

	parsed, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

// SystemFace returns the first Japanese font found on the system, or the
// bundled Go font, which has no kana glyphs, when none is installed.
func SystemFace(size float64) font.Face {
	for _, path := range fontPaths {
		if face, err := LoadFace(path, size); err == nil {
			return face
		}
	}
	face, _ := parseFace(goregular.TTF, size)
	return face
}
