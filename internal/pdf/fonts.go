package pdf

import (
	"embed"
	"io/fs"
	"log"
	"path"
	"strings"
)

// The fonts directory is embedded wholesale rather than via a *.ttf
// glob so the build does not break when no font file is shipped. An
// Arabic-capable TTF (e.g. Amiri or Noto Naskh Arabic) dropped into
// internal/pdf/fonts/ is picked up automatically; without one the
// renderer degrades to the built-in core fonts, which cover Latin only.
//
//go:embed fonts
var embeddedFonts embed.FS

// FontAsset is a single loadable TTF font program.
type FontAsset struct {
	Family string
	Data   []byte
}

// FontRegistry holds the Unicode-capable fonts available to a document.
// The first asset (lexical filename order) is the primary Arabic font.
type FontRegistry struct {
	assets []FontAsset
}

// NewFontRegistry scans fsys for .ttf files and loads them. Unreadable
// files are logged and skipped; an empty registry is valid and means
// Arabic text will render with core fonts (typically as placeholders).
func NewFontRegistry(fsys fs.FS) *FontRegistry {
	reg := &FontRegistry{}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if !strings.EqualFold(path.Ext(p), ".ttf") {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			log.Printf("ERROR: reading font %s: %v", p, err)
			return nil
		}
		base := path.Base(p)
		family := strings.TrimSuffix(base, path.Ext(base))
		reg.assets = append(reg.assets, FontAsset{Family: family, Data: data})
		return nil
	})
	if err != nil {
		log.Printf("ERROR: scanning font directory: %v", err)
	}
	return reg
}

// HasFont reports whether at least one embedded font is available.
func (r *FontRegistry) HasFont() bool {
	return len(r.assets) > 0
}

// Primary returns the font used for Arabic text.
func (r *FontRegistry) Primary() (FontAsset, bool) {
	if len(r.assets) == 0 {
		return FontAsset{}, false
	}
	return r.assets[0], true
}

// Families lists the loaded font family names in load order.
func (r *FontRegistry) Families() []string {
	out := make([]string, len(r.assets))
	for i, a := range r.assets {
		out[i] = a.Family
	}
	return out
}

// DefaultFontRegistry loads the fonts compiled into the binary.
func DefaultFontRegistry() *FontRegistry {
	sub, err := fs.Sub(embeddedFonts, "fonts")
	if err != nil {
		log.Printf("ERROR: embedded fonts unavailable: %v", err)
		return &FontRegistry{}
	}
	return NewFontRegistry(sub)
}
