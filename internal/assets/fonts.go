// Package assets supplies fonts and icons to the renderers. Lookups never
// fail: every chain ends in a glyph source compiled into the binary.
package assets

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Embedded source names usable in a font path list.
const (
	EmbeddedBold    = "embedded:gobold"
	EmbeddedRegular = "embedded:goregular"
	BuiltinBitmap   = "builtin:basicfont"
)

// SystemFontPaths are tried after any configured paths.
var SystemFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans-Bold.ttf",
	"/Library/Fonts/Arial.ttf",
	"C:/Windows/Fonts/arialbd.ttf",
}

// FontChain returns the ordered candidate list: configured paths, the
// system paths, then the embedded Go fonts.
func FontChain(configured []string) []string {
	chain := make([]string, 0, len(configured)+len(SystemFontPaths)+2)
	chain = append(chain, configured...)
	chain = append(chain, SystemFontPaths...)
	return append(chain, EmbeddedBold, EmbeddedRegular)
}

// FontSet resolves the first usable font of a chain once and caches one
// face per pixel size. Sizes are pixel heights, as with PIL truetype.
type FontSet struct {
	chain  []string
	logger *slog.Logger

	once   sync.Once
	font   *opentype.Font
	source string

	mu    sync.Mutex
	faces map[int]font.Face
}

// NewFontSet creates a FontSet over chain. A nil logger discards output.
func NewFontSet(chain []string, logger *slog.Logger) *FontSet {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FontSet{chain: chain, logger: logger, faces: make(map[int]font.Face)}
}

// Face returns a face rendering glyphs size pixels tall.
func (f *FontSet) Face(size int) font.Face {
	f.once.Do(f.resolve)
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[size]; ok {
		return face
	}
	var face font.Face = basicfont.Face7x13
	if f.font != nil {
		ff, err := opentype.NewFace(f.font, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			f.logger.Warn("font_face_failed", "source", f.source, "size", size, "error", err)
		} else {
			face = ff
		}
	}
	f.faces[size] = face
	return face
}

// Source names the chain entry in use.
func (f *FontSet) Source() string {
	f.once.Do(f.resolve)
	return f.source
}

func (f *FontSet) resolve() {
	for _, src := range f.chain {
		data, err := load(src)
		if err != nil {
			f.logger.Debug("font_candidate_skipped", "source", src, "error", err)
			continue
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			f.logger.Debug("font_candidate_invalid", "source", src, "error", err)
			continue
		}
		f.font, f.source = parsed, src
		f.logger.Debug("font_resolved", "source", src)
		return
	}
	f.source = BuiltinBitmap
	f.logger.Warn("font_fallback_builtin", "candidates", len(f.chain))
}

func load(src string) ([]byte, error) {
	switch src {
	case EmbeddedBold:
		return gobold.TTF, nil
	case EmbeddedRegular:
		return goregular.TTF, nil
	case BuiltinBitmap:
		return nil, fmt.Errorf("bitmap font is not a TrueType source")
	}
	return os.ReadFile(src)
}
