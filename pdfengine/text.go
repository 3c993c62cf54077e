package pdfengine

import (
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pagesift/pagesift/engine"
	"github.com/pagesift/pagesift/model"
)

// wordSpaceFactor is the fraction of the font size a horizontal gap must
// exceed to split two glyph runs into separate items.
const wordSpaceFactor = 0.3

// TextContent returns the page's positioned glyph runs in engine-reported
// order. The underlying reader emits per-glyph entries; consecutive glyphs
// on the same baseline with no word-sized gap are merged into word runs so
// downstream sentence joining sees words, not characters.
func (p *Page) TextContent() (items []engine.TextItem, err error) {
	// The content parser panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("text content of page %d: %v", p.num, r)
		}
	}()

	content := p.page.Content()
	return mergeGlyphRuns(content.Text), nil
}

// mergeGlyphRuns groups consecutive glyph entries into word-level items.
func mergeGlyphRuns(texts []pdf.Text) []engine.TextItem {
	var items []engine.TextItem
	var run []pdf.Text

	flush := func() {
		if len(run) == 0 {
			return
		}
		items = append(items, runToItem(run))
		run = nil
	}

	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			flush()
			continue
		}
		if len(run) > 0 && !continuesRun(run[len(run)-1], t) {
			flush()
		}
		run = append(run, t)
	}
	flush()

	return items
}

// continuesRun reports whether glyph t belongs to the same word run as the
// previous glyph: same font, same baseline, and no word-sized gap.
func continuesRun(prev, t pdf.Text) bool {
	if t.Font != prev.Font {
		return false
	}
	if math.Abs(t.Y-prev.Y) > 0.5 {
		return false
	}

	maxGap := wordSpaceFactor * prev.FontSize
	if maxGap < 1 {
		maxGap = 1
	}
	gap := t.X - (prev.X + prev.W)
	return gap <= maxGap && gap > -prev.FontSize
}

// runToItem collapses a word run into one engine text item. The item's Y is
// the run's baseline in the engine's bottom-up space; height approximates
// the rendered font size.
func runToItem(run []pdf.Text) engine.TextItem {
	first := run[0]
	last := run[len(run)-1]

	var sb strings.Builder
	for _, t := range run {
		sb.WriteString(t.S)
	}

	fontSize := first.FontSize
	width := last.X + last.W - first.X
	if width <= 0 {
		width = first.W
	}

	return engine.TextItem{
		Text:      sb.String(),
		X:         first.X,
		Y:         first.Y,
		Width:     width,
		Height:    fontSize,
		FontName:  first.Font,
		Transform: model.Matrix{fontSize, 0, 0, fontSize, first.X, first.Y},
	}
}
