package synth

import "unicode/utf16"

// HashSymbol derives a stable non-negative seed from a ticker symbol.
// It is a 31-multiplier rolling hash over UTF-16 code units, truncated to int32 at
// every step, so "AAPL" always yields 2001436.
func HashSymbol(text string) int64 {
	var h int32
	for _, unit := range utf16.Encode([]rune(text)) {
		h = h*31 + int32(unit)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
