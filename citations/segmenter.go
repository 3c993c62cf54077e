package citations

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pagesift/pagesift/model"
)

// sentenceRe matches a run of non-terminator characters followed by one or
// more terminators, or a trailing run with no terminator.
var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]+|[^.!?]+$`)

// headingFontSize is the estimated font size above which a sentence is
// classified as a heading.
const headingFontSize = 14.0

// sectionKeywords are lowercase prefixes that mark a short sentence as a
// section heading.
var sectionKeywords = []string{
	"abstract",
	"introduction",
	"background",
	"related work",
	"methods",
	"methodology",
	"materials and methods",
	"results",
	"discussion",
	"conclusion",
	"conclusions",
	"references",
	"bibliography",
	"acknowledgments",
	"acknowledgements",
	"appendix",
	"summary",
	"keywords",
}

// SegmentSentences groups one page's raw items into sentence-level chunks.
// Chunk indices are left at zero; the Indexer assigns the document-wide
// sequence. Items must be in engine-reported order.
func SegmentSentences(items []model.RawTextItem, pageNum int) []model.TextChunk {
	if len(items) == 0 {
		return nil
	}

	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.Text
	}
	pageText := strings.Join(parts, " ")

	candidates := sentenceRe.FindAllString(pageText, -1)

	var chunks []model.TextChunk
	cursor := 0
	for _, candidate := range candidates {
		// Walk forward through the item list, accumulating item lengths
		// plus one for each join space, until the candidate is covered.
		var constituents []model.RawTextItem
		accumulated := 0
		for cursor < len(items) && accumulated < len(candidate) {
			accumulated += len(items[cursor].Text) + 1
			constituents = append(constituents, items[cursor])
			cursor++
		}

		text := strings.TrimSpace(candidate)
		if text == "" || len(constituents) == 0 {
			continue
		}

		chunks = append(chunks, buildChunk(text, constituents, pageNum))
	}

	return chunks
}

// buildChunk assembles chunk metadata from a sentence's constituent items.
func buildChunk(text string, constituents []model.RawTextItem, pageNum int) model.TextChunk {
	boxes := make([]model.BBox, len(constituents))
	for i, it := range constituents {
		boxes[i] = it.BBox()
	}

	first := constituents[0]
	fontSize := first.Transform.ScaleNorm()

	return model.TextChunk{
		Text:       norm.NFC.String(text),
		PageNum:    pageNum,
		BBox:       model.UnionAll(boxes),
		FontName:   first.FontName,
		FontSize:   fontSize,
		IsHeading:  classifyHeading(text, fontSize, first.IsHeading),
		IsBold:     classifyBold(first.FontName),
		Confidence: 1.0, // Extraction is deterministic, not probabilistic.
	}
}

// classifyHeading reports whether a sentence is a heading: an explicit
// upstream flag, a font size above the heading threshold, or a short
// sentence starting with a known section keyword.
func classifyHeading(text string, fontSize float64, explicit bool) bool {
	if explicit {
		return true
	}
	if fontSize > headingFontSize {
		return true
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	if len(lower) > 100 {
		return false
	}
	for _, kw := range sectionKeywords {
		if strings.HasPrefix(lower, kw) {
			return true
		}
	}
	return false
}

// classifyBold reports whether a font name indicates bold text.
func classifyBold(fontName string) bool {
	lower := strings.ToLower(fontName)
	return strings.Contains(lower, "bold") || strings.Contains(lower, "heavy")
}
