package model

// TextChunk is an indexed, citable sentence-level unit of document text.
// Chunks are created once per document load and are immutable; the whole set
// is discarded and rebuilt when the document is reloaded.
type TextChunk struct {
	Index      int     // Document-wide sequential index, contiguous from 0
	Text       string  // Sentence text
	PageNum    int     // 1-indexed page number
	BBox       BBox    // Union of constituent raw items
	FontName   string  // Font of the first constituent item
	FontSize   float64 // Estimated from the first constituent's transform
	IsHeading  bool
	IsBold     bool
	Confidence float64 // Fixed 1.0: extraction is deterministic
}

// Citation is the lookup record for one indexed sentence.
type Citation struct {
	Index      int
	PageNum    int
	Sentence   string
	BBox       BBox
	Confidence float64
}

// CitationMap maps a global sentence index to its citation record.
// Indices are unique, contiguous from 0, and strictly increasing in
// page-then-reading order.
type CitationMap map[int]Citation

// Lookup returns the citation for an index and whether it exists.
func (m CitationMap) Lookup(index int) (Citation, bool) {
	c, ok := m[index]
	return c, ok
}
