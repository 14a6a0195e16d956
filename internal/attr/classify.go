package attr

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numberWithUnit matches a bare number followed by an optional run of Latin
// or Cyrillic letters, e.g. "12", "123.45", "12 м", "5ампер". Digits and the
// separating space may come from any script, so "12\u00a0м" is a number.
var numberWithUnit = regexp.MustCompile(`^(\p{Nd}+(?:\.\p{Nd}+)?)[\s\p{Z}]*([\p{Latin}\p{Cyrillic}]*)$`)

var boolWords = map[string]bool{
	"да":   true,
	"есть": true,
	"нет":  false,
}

// Classified is the outcome of Classify before any unit or token lookup.
type Classified struct {
	Variant Variant
	Int     int64
	Float   float64
	Bool    bool
	// UnitText is the letter run following a number, already lower-cased.
	UnitText string
	// Text is the raw input, kept for the string variant.
	Text string
}

// Normalize applies the decimal comma fix-up and lower-cases s.
func Normalize(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, ",", "."))
}

// Classify decides the variant of input. It never fails: anything that is
// neither a number nor a boolean word is a string.
func Classify(input string) Classified {
	norm := Normalize(input)

	if m := numberWithUnit.FindStringSubmatch(norm); m != nil {
		number, unit := asciiDigits(m[1]), m[2]
		if !strings.Contains(number, ".") {
			if n, err := strconv.ParseInt(number, 10, 64); err == nil {
				return Classified{Variant: VariantInt, Int: n, UnitText: unit, Text: input}
			}
			// too large for int64; keep the magnitude as a float
		}
		if f, err := strconv.ParseFloat(number, 64); err == nil {
			return Classified{Variant: VariantFloat, Float: f, UnitText: unit, Text: input}
		}
	}

	if b, ok := boolWords[norm]; ok {
		return Classified{Variant: VariantBool, Bool: b, Text: input}
	}

	return Classified{Variant: VariantString, Text: input}
}

// asciiDigits rewrites decimal digits of any script as ASCII digits. Each
// script's digits form a run of ten code points starting at zero, and some
// runs are adjacent, so the value is the offset from the start of the run.
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 || !unicode.IsDigit(r) {
			return r
		}
		start := r
		for unicode.IsDigit(start - 1) {
			start--
		}
		return '0' + (r-start)%10
	}, s)
}
