package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Classified
	}{
		{name: "bare integer", in: "12", want: Classified{Variant: VariantInt, Int: 12, Text: "12"}},
		{name: "bare float", in: "123.45", want: Classified{Variant: VariantFloat, Float: 123.45, Text: "123.45"}},
		{name: "decimal comma", in: "1,5", want: Classified{Variant: VariantFloat, Float: 1.5, Text: "1,5"}},
		{name: "short unit", in: "12м", want: Classified{Variant: VariantInt, Int: 12, UnitText: "м", Text: "12м"}},
		{name: "unit after space is lower-cased", in: "12 Метр", want: Classified{Variant: VariantInt, Int: 12, UnitText: "метр", Text: "12 Метр"}},
		{name: "float with latin unit", in: "2.5KG", want: Classified{Variant: VariantFloat, Float: 2.5, UnitText: "kg", Text: "2.5KG"}},
		{name: "true", in: "да", want: Classified{Variant: VariantBool, Bool: true, Text: "да"}},
		{name: "true upper-case", in: "ЕСТЬ", want: Classified{Variant: VariantBool, Bool: true, Text: "ЕСТЬ"}},
		{name: "false", in: "нет", want: Classified{Variant: VariantBool, Bool: false, Text: "нет"}},
		{name: "plain word", in: "синий", want: Classified{Variant: VariantString, Text: "синий"}},
		{name: "text before number", in: "около 12м", want: Classified{Variant: VariantString, Text: "около 12м"}},
		{name: "text after unit", in: "12 м в длину", want: Classified{Variant: VariantString, Text: "12 м в длину"}},
		{name: "dangling dot", in: "12.", want: Classified{Variant: VariantString, Text: "12."}},
		{name: "boolean word inside text", in: "да, конечно", want: Classified{Variant: VariantString, Text: "да, конечно"}},
		{name: "empty", in: "", want: Classified{Variant: VariantString, Text: ""}},
		{name: "no-break space before unit", in: "12\u00a0м", want: Classified{Variant: VariantInt, Int: 12, UnitText: "м", Text: "12\u00a0м"}},
		{name: "narrow no-break space before unit", in: "12\u202fкг", want: Classified{Variant: VariantInt, Int: 12, UnitText: "кг", Text: "12\u202fкг"}},
		{name: "thin space before unit", in: "12\u2009м", want: Classified{Variant: VariantInt, Int: 12, UnitText: "м", Text: "12\u2009м"}},
		{name: "arabic-indic digits", in: "١٢", want: Classified{Variant: VariantInt, Int: 12, Text: "١٢"}},
		{name: "devanagari float with unit", in: "१.५м", want: Classified{Variant: VariantFloat, Float: 1.5, UnitText: "м", Text: "१.५м"}},
		{name: "int64 overflow keeps magnitude", in: "99999999999999999999", want: Classified{Variant: VariantFloat, Float: 1e20, Text: "99999999999999999999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestASCIIDigits(t *testing.T) {
	assert.Equal(t, "0123456789", asciiDigits("٠١٢٣٤٥٦٧٨٩"))
	assert.Equal(t, "42", asciiDigits("४२"))
	// mathematical digit runs sit next to each other
	assert.Equal(t, "09", asciiDigits("\U0001D7CE\U0001D7E1"))
	assert.Equal(t, "12.5 м", asciiDigits("12.5 м"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "12.5 метр", Normalize("12,5 Метр"))
}
