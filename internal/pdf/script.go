package pdf

// Direction is the horizontal flow of a run of text.
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

// Align anchors text horizontally relative to its x coordinate.
// Center is the zero value so an empty TextStyle centers on x.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// arabicRanges covers the Arabic block plus its supplements and the
// presentation forms, so both raw and pre-shaped text are recognized.
var arabicRanges = [...]struct{ lo, hi rune }{
	{0x0600, 0x06FF}, // Arabic
	{0x0750, 0x077F}, // Arabic Supplement
	{0x08A0, 0x08FF}, // Arabic Extended-A
	{0xFB50, 0xFDFF}, // Arabic Presentation Forms-A
	{0xFE70, 0xFEFF}, // Arabic Presentation Forms-B
}

func isArabicRune(r rune) bool {
	for _, rg := range arabicRanges {
		if r >= rg.lo && r <= rg.hi {
			return true
		}
	}
	return false
}

// ContainsArabic reports whether s holds at least one Arabic code point.
// Mixed text counts: a single Arabic character is enough to trigger the
// Arabic font and RTL alignment handling.
func ContainsArabic(s string) bool {
	for _, r := range s {
		if isArabicRune(r) {
			return true
		}
	}
	return false
}

// DetectDirection classifies s for layout purposes. Empty and purely
// non-Arabic text is LTR.
func DetectDirection(s string) Direction {
	if ContainsArabic(s) {
		return DirectionRTL
	}
	return DirectionLTR
}

// AdjustAlign mirrors left/right anchoring for RTL text. Center is
// direction-neutral and passes through. Only the anchor side changes;
// coordinates are never mirrored.
func AdjustAlign(a Align, d Direction) Align {
	if d != DirectionRTL {
		return a
	}
	switch a {
	case AlignLeft:
		return AlignRight
	case AlignRight:
		return AlignLeft
	}
	return a
}
