package pdfengine

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pagesift/pagesift/engine"
)

func glyph(s string, x, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: 700, W: w, FontSize: 10, Font: "Times-Roman"}
}

func TestMergeGlyphRuns_JoinsAdjacentGlyphs(t *testing.T) {
	glyphs := []pdf.Text{
		glyph("H", 100, 7),
		glyph("i", 107, 3),
	}

	items := mergeGlyphRuns(glyphs)
	if len(items) != 1 {
		t.Fatalf("mergeGlyphRuns() produced %d items, want 1", len(items))
	}
	if items[0].Text != "Hi" {
		t.Errorf("Text = %q, want 'Hi'", items[0].Text)
	}
	if items[0].X != 100 || items[0].Width != 10 {
		t.Errorf("X/Width = %v/%v, want 100/10", items[0].X, items[0].Width)
	}
	if items[0].Height != 10 {
		t.Errorf("Height = %v, want font size 10", items[0].Height)
	}
}

func TestMergeGlyphRuns_SplitsOnWordGap(t *testing.T) {
	// Gap of 8 exceeds 0.3 * fontSize = 3.
	glyphs := []pdf.Text{
		glyph("a", 100, 5),
		glyph("b", 113, 5),
	}

	items := mergeGlyphRuns(glyphs)
	if len(items) != 2 {
		t.Fatalf("mergeGlyphRuns() produced %d items, want 2", len(items))
	}
	if items[0].Text != "a" || items[1].Text != "b" {
		t.Errorf("items = %q, %q; want 'a', 'b'", items[0].Text, items[1].Text)
	}
}

func TestMergeGlyphRuns_SplitsOnBaselineChange(t *testing.T) {
	a := glyph("a", 100, 5)
	b := glyph("b", 105, 5)
	b.Y = 680

	items := mergeGlyphRuns([]pdf.Text{a, b})
	if len(items) != 2 {
		t.Fatalf("mergeGlyphRuns() produced %d items, want 2", len(items))
	}
}

func TestMergeGlyphRuns_SplitsOnFontChange(t *testing.T) {
	a := glyph("a", 100, 5)
	b := glyph("b", 105, 5)
	b.Font = "Times-Bold"

	items := mergeGlyphRuns([]pdf.Text{a, b})
	if len(items) != 2 {
		t.Fatalf("mergeGlyphRuns() produced %d items, want 2", len(items))
	}
	if items[1].FontName != "Times-Bold" {
		t.Errorf("FontName = %q, want 'Times-Bold'", items[1].FontName)
	}
}

func TestMergeGlyphRuns_WhitespaceFlushes(t *testing.T) {
	glyphs := []pdf.Text{
		glyph("a", 100, 5),
		glyph(" ", 105, 3),
		glyph("b", 108, 5),
	}

	items := mergeGlyphRuns(glyphs)
	if len(items) != 2 {
		t.Fatalf("mergeGlyphRuns() produced %d items, want 2", len(items))
	}
}

func TestScanOperators_Classification(t *testing.T) {
	content := []byte("q\n1 0 0 1 0 0 cm\n/Im0 Do\n/Fm0 Do\n/Mask0 Do\nQ\n")
	images := map[string]xobjectInfo{
		"Im0":   {},
		"Mask0": {isMask: true},
	}

	ol := scanOperators(content, images)
	if ol.Len() != 6 {
		t.Fatalf("scanOperators() produced %d instructions, want 6", ol.Len())
	}

	want := []engine.Opcode{
		engine.OpOther,
		engine.OpOther,
		engine.OpPaintImageXObject,
		engine.OpOther, // form XObject, not an image
		engine.OpPaintImageMask,
		engine.OpOther,
	}
	for i, w := range want {
		if ol.Opcodes[i] != w {
			t.Errorf("opcode %d = %v, want %v", i, ol.Opcodes[i], w)
		}
	}

	if ol.Operands[2][0] != "Im0" {
		t.Errorf("operand = %q, want 'Im0'", ol.Operands[2][0])
	}
}

func TestScanOperators_InlineImageBlock(t *testing.T) {
	content := []byte("BI\n/W 4 /H 4 /BPC 8 /CS /G\nID\nrawbytes\nEI\n/Im0 Do\n")
	images := map[string]xobjectInfo{"Im0": {}}

	ol := scanOperators(content, images)

	var paints []engine.Opcode
	for _, op := range ol.Opcodes {
		if op.IsImagePaint() {
			paints = append(paints, op)
		}
	}

	if len(paints) != 2 {
		t.Fatalf("found %d image paints, want 2", len(paints))
	}
	if paints[0] != engine.OpPaintInlineImage {
		t.Errorf("first paint = %v, want inline image", paints[0])
	}
	if paints[1] != engine.OpPaintImageXObject {
		t.Errorf("second paint = %v, want image XObject", paints[1])
	}
}

func TestExpandBits_OneBit(t *testing.T) {
	// One 8-pixel row: 10100000.
	out := expandBits([]byte{0xA0}, 8, 1, 1)

	want := []byte{255, 0, 255, 0, 0, 0, 0, 0}
	if len(out) != len(want) {
		t.Fatalf("expandBits() length = %d, want %d", len(out), len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestExpandBits_RowPadding(t *testing.T) {
	// Two 3-pixel rows at 1 bpc: each row occupies a full byte.
	out := expandBits([]byte{0xE0, 0x20}, 3, 2, 1)

	want := []byte{255, 255, 255, 0, 0, 255}
	if len(out) != len(want) {
		t.Fatalf("expandBits() length = %d, want %d", len(out), len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestExpandBits_FourBit(t *testing.T) {
	// Two pixels in one byte: 0x0F -> 0 and 15, scaled to 0 and 255.
	out := expandBits([]byte{0x0F}, 2, 1, 4)

	if len(out) != 2 {
		t.Fatalf("expandBits() length = %d, want 2", len(out))
	}
	if out[0] != 0 || out[1] != 255 {
		t.Errorf("out = %v, want [0 255]", out)
	}
}

func TestTrailingDigits(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"Im0", 0},
		{"Im12", 12},
		{"Image3", 3},
		{"Image", -1},
		{"", -1},
	}

	for _, tt := range tests {
		if got := trailingDigits(tt.name); got != tt.want {
			t.Errorf("trailingDigits(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestLastFilter(t *testing.T) {
	single := types.StreamDict{Dict: types.Dict{"Filter": types.Name("DCTDecode")}}
	if got := lastFilter(single); got != "DCTDecode" {
		t.Errorf("lastFilter(name) = %q, want 'DCTDecode'", got)
	}

	chained := types.StreamDict{Dict: types.Dict{
		"Filter": types.Array{types.Name("FlateDecode"), types.Name("DCTDecode")},
	}}
	if got := lastFilter(chained); got != "DCTDecode" {
		t.Errorf("lastFilter(array) = %q, want last entry", got)
	}

	none := types.StreamDict{Dict: types.Dict{}}
	if got := lastFilter(none); got != "" {
		t.Errorf("lastFilter(none) = %q, want empty", got)
	}
}
