// Package pdf renders order reports and customer receipts. Layout is
// expressed in millimetres on A4 pages; text placement goes through a
// single drawing path that detects Arabic runs, switches to the embedded
// Unicode font, and adjusts alignment for right-to-left text.
package pdf

import (
	"embed"
	"log"
	"time"

	"github.com/go-pdf/fpdf"
)

// assets holds optional branding files. assets/logo.png, when present,
// is printed at the top of receipts.
//
//go:embed assets
var embeddedAssets embed.FS

const (
	// coreFamily is the fpdf built-in used whenever no embedded font
	// applies. Core fonts cover Latin-1 only.
	coreFamily = "Helvetica"

	defaultFontSize = 10.0
)

// OpKind discriminates entries in a document's drawing log.
type OpKind int

const (
	OpText OpKind = iota
	OpLine
	OpRect
	OpImage
)

// DrawOp records one drawing operation as issued to the canvas, with
// the text already sanitized and truncated. The log is the contract the
// layout tests assert against; the binary PDF stream is not inspected.
type DrawOp struct {
	Kind     OpKind
	Page     int
	Text     string
	X, Y     float64
	W, H     float64
	Align    Align
	Family   string
	FontSize float64
	Bold     bool
}

// Document is a rendered PDF plus the log of operations that produced
// it. Engines build one via Renderer; callers export it with Bytes,
// DataURI, or Save.
type Document struct {
	pdf          *fpdf.Fpdf
	ops          []DrawOp
	fileName     string
	title        string
	generatedAt  time.Time
	arabicFamily string
	pageW, pageH float64
}

// Ops returns the drawing log in issue order.
func (d *Document) Ops() []DrawOp {
	return d.ops
}

// PageCount reports the number of pages rendered so far.
func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

// FileName is the suggested download name, derived from the document's
// title or order identity at render time.
func (d *Document) FileName() string {
	return d.fileName
}

func (d *Document) addPage() {
	d.pdf.AddPage()
}

func (d *Document) page() int {
	return d.pdf.PageNo()
}

// setFont selects family/style/size with the degradation chain: the
// requested family, then the core family in the same style, then the
// core family unstyled. Returns the family actually selected, or ""
// when nothing could be selected (the caller skips drawing).
func (d *Document) setFont(family, style string, size float64) string {
	d.pdf.SetFont(family, style, size)
	if !d.pdf.Err() {
		return family
	}
	log.Printf("ERROR: selecting font %s style %q: %v", family, style, d.pdf.Error())
	d.pdf.ClearError()
	if family != coreFamily {
		d.pdf.SetFont(coreFamily, style, size)
		if !d.pdf.Err() {
			return coreFamily
		}
		d.pdf.ClearError()
	}
	if style != "" {
		d.pdf.SetFont(coreFamily, "", size)
		if !d.pdf.Err() {
			return coreFamily
		}
		d.pdf.ClearError()
	}
	return ""
}

// lineHeight converts a font size in points to a line advance in mm.
func lineHeight(fontSize float64) float64 {
	return fontSize * 0.35
}

// Renderer produces report and receipt documents. It is safe for
// concurrent use; each render builds an independent Document.
type Renderer struct {
	fonts    *FontRegistry
	logo     []byte
	name     string
	currency string
}

// NewRenderer builds a renderer from an explicit font registry, receipt
// logo (PNG bytes, nil for none), the restaurant name used when no logo
// is available, and the currency code prefix.
func NewRenderer(fonts *FontRegistry, logo []byte, name, currency string) *Renderer {
	if name == "" {
		name = "Mazoon Grill"
	}
	if currency == "" {
		currency = "OMR"
	}
	return &Renderer{fonts: fonts, logo: logo, name: name, currency: currency}
}

// DefaultRenderer uses the fonts and branding compiled into the binary.
func DefaultRenderer() *Renderer {
	return NewRenderer(DefaultFontRegistry(), DefaultLogo(), "", "")
}

// DefaultLogo returns the embedded receipt logo, or nil when the
// repository ships without one.
func DefaultLogo() []byte {
	b, err := embeddedAssets.ReadFile("assets/logo.png")
	if err != nil {
		return nil
	}
	return b
}

// newDocument creates an A4 page canvas ("P" portrait, "L" landscape),
// registers the embedded fonts, and disables automatic page breaks so
// the engines control pagination explicitly.
func (r *Renderer) newDocument(orientation, title string, generatedAt time.Time) *Document {
	f := fpdf.New(orientation, "mm", "A4", "")
	f.SetAutoPageBreak(false, 0)
	f.SetTitle(title, true)
	f.SetCreationDate(generatedAt)

	d := &Document{
		pdf:         f,
		title:       title,
		generatedAt: generatedAt,
	}
	d.pageW, d.pageH = f.GetPageSize()

	if asset, ok := r.fonts.Primary(); ok {
		// The same program backs regular and bold; weight variants are
		// not modeled.
		f.AddUTF8FontFromBytes(asset.Family, "", asset.Data)
		f.AddUTF8FontFromBytes(asset.Family, "B", asset.Data)
		if f.Err() {
			log.Printf("ERROR: registering font %s: %v", asset.Family, f.Error())
			f.ClearError()
		} else {
			d.arabicFamily = asset.Family
		}
	}
	return d
}

// familyFor picks the font family for a run of text: the embedded
// Unicode font for anything containing Arabic (when available), the
// core font otherwise.
func (d *Document) familyFor(dir Direction) string {
	if dir == DirectionRTL && d.arabicFamily != "" {
		return d.arabicFamily
	}
	return coreFamily
}
