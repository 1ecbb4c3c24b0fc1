package pdf

import (
	"bytes"
	"log"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Color is an RGB color (0-255 per channel).
type Color struct {
	R, G, B int
}

// Palette shared by reports and receipts.
var (
	colorText      = Color{44, 44, 44}
	colorMuted     = Color{127, 140, 141}
	colorHeaderBg  = Color{44, 62, 80}
	colorHeaderTxt = Color{255, 255, 255}
	colorStripe    = Color{245, 246, 247}
	colorBorder    = Color{189, 195, 199}
)

// TextStyle controls a single DrawText call. The zero value centers
// default-size text in the default color with no truncation.
type TextStyle struct {
	Align    Align
	MaxWidth float64 // when positive, truncate to this width with an ellipsis
	FontSize float64 // points; 0 selects the default size
	Bold     bool
	Color    Color // zero value selects the default text color
}

const ellipsis = '…'

// sanitizeText drops code points outside printable ASCII and the Arabic
// ranges. The ellipsis survives so truncation markers applied upstream
// are not stripped. Sanitization runs before width truncation.
func sanitizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 0x20 && r <= 0x7E) || isArabicRune(r) || r == ellipsis {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// truncateToWidth keeps the first wrapped line and appends an ellipsis
// when s exceeds maxW in the currently selected font. The marker may
// push slightly past maxW; that matches the dashboard's print output.
func (d *Document) truncateToWidth(s string, maxW float64) string {
	lines := d.pdf.SplitText(s, maxW)
	if len(lines) <= 1 {
		return s
	}
	return strings.TrimRight(lines[0], " ") + string(ellipsis)
}

// DrawText writes one line of text with y as the baseline. Arabic runs
// select the embedded Unicode font and mirror left/right anchoring;
// the x coordinate itself is never adjusted for direction, matching the
// dashboard's established print layout. Returns the line height in mm
// so callers can advance their cursor even when drawing is skipped.
func (d *Document) DrawText(text string, x, y float64, style TextStyle) float64 {
	if style.FontSize <= 0 {
		style.FontSize = defaultFontSize
	}
	lh := lineHeight(style.FontSize)

	clean := sanitizeText(text)
	if clean == "" {
		return lh
	}

	dir := DetectDirection(clean)
	align := AdjustAlign(style.Align, dir)
	styleStr := ""
	if style.Bold {
		styleStr = "B"
	}
	family := d.setFont(d.familyFor(dir), styleStr, style.FontSize)
	if family == "" {
		return lh
	}
	if style.MaxWidth > 0 {
		clean = d.truncateToWidth(clean, style.MaxWidth)
	}

	col := style.Color
	if col == (Color{}) {
		col = colorText
	}
	d.pdf.SetTextColor(col.R, col.G, col.B)

	ax := x
	switch align {
	case AlignCenter:
		ax = x - d.pdf.GetStringWidth(clean)/2
	case AlignRight:
		ax = x - d.pdf.GetStringWidth(clean)
	}
	d.pdf.Text(ax, y, clean)
	if d.pdf.Err() {
		log.Printf("ERROR: drawing text %q: %v", clean, d.pdf.Error())
		d.pdf.ClearError()
		// One retry, stripped of styling, at the raw anchor.
		d.pdf.SetTextColor(colorText.R, colorText.G, colorText.B)
		fam := d.setFont(coreFamily, "", style.FontSize)
		if fam == "" {
			return lh
		}
		d.pdf.Text(x, y, clean)
		if d.pdf.Err() {
			log.Printf("ERROR: text fallback failed, skipping cell: %v", d.pdf.Error())
			d.pdf.ClearError()
			return lh
		}
		family, align = fam, AlignLeft
	}

	d.ops = append(d.ops, DrawOp{
		Kind:     OpText,
		Page:     d.page(),
		Text:     clean,
		X:        x,
		Y:        y,
		Align:    align,
		Family:   family,
		FontSize: style.FontSize,
		Bold:     style.Bold,
	})
	return lh
}

// wrapText splits text into lines fitting width in the font the style
// selects. Used by receipts for the free-form order details block.
func (d *Document) wrapText(text string, width float64, style TextStyle) []string {
	if style.FontSize <= 0 {
		style.FontSize = defaultFontSize
	}
	clean := sanitizeText(text)
	if clean == "" {
		return nil
	}
	styleStr := ""
	if style.Bold {
		styleStr = "B"
	}
	if d.setFont(d.familyFor(DetectDirection(clean)), styleStr, style.FontSize) == "" {
		return []string{clean}
	}
	return d.pdf.SplitText(clean, width)
}

func (d *Document) drawLine(x1, y1, x2, y2 float64, c Color) {
	d.pdf.SetDrawColor(c.R, c.G, c.B)
	d.pdf.Line(x1, y1, x2, y2)
	d.ops = append(d.ops, DrawOp{Kind: OpLine, Page: d.page(), X: x1, Y: y1, W: x2 - x1, H: y2 - y1})
}

func (d *Document) fillRect(x, y, w, h float64, c Color) {
	d.pdf.SetFillColor(c.R, c.G, c.B)
	d.pdf.Rect(x, y, w, h, "F")
	d.ops = append(d.ops, DrawOp{Kind: OpRect, Page: d.page(), X: x, Y: y, W: w, H: h})
}

func (d *Document) strokeRect(x, y, w, h float64, c Color) {
	d.pdf.SetDrawColor(c.R, c.G, c.B)
	d.pdf.Rect(x, y, w, h, "D")
	d.ops = append(d.ops, DrawOp{Kind: OpRect, Page: d.page(), X: x, Y: y, W: w, H: h})
}

// drawImage registers PNG bytes under name and places them. Reports
// failure instead of erroring so callers can fall back to text.
func (d *Document) drawImage(name string, data []byte, x, y, w, h float64) bool {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if d.pdf.Err() {
		log.Printf("ERROR: loading image %s: %v", name, d.pdf.Error())
		d.pdf.ClearError()
		return false
	}
	d.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if d.pdf.Err() {
		log.Printf("ERROR: placing image %s: %v", name, d.pdf.Error())
		d.pdf.ClearError()
		return false
	}
	d.ops = append(d.ops, DrawOp{Kind: OpImage, Page: d.page(), Text: name, X: x, Y: y, W: w, H: h})
	return true
}
