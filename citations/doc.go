// Package citations segments positioned glyph runs into sentence-level
// chunks and assigns each a document-wide citation index.
//
// The pipeline has three stages. ReadRawItems pulls one page's glyph runs
// and flips them into top-down viewport space. SegmentSentences joins the
// runs with spaces, splits on sentence terminators, and maps each sentence
// back onto the runs that produced it, deriving a bounding box and
// font-based heading/bold classification. Indexer drives both across a
// whole document in strict page order, assigning indices from a single
// running counter and building the CitationMap.
//
// A failure reading any page is fatal to the pass. This is deliberate: a
// partial citation index would silently renumber every later sentence on
// the next full pass, so the document is indexed completely or not at all.
package citations
