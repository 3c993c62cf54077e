package citations

import (
	"fmt"

	"github.com/pagesift/pagesift/engine"
	"github.com/pagesift/pagesift/model"
)

// Indexer assigns document-wide sequential indices to sentence chunks and
// builds the index-to-citation lookup map. Pages are processed strictly in
// document order; the single running counter is what guarantees that
// indices are unique, contiguous from 0, and increasing in
// page-then-reading order.
type Indexer struct {
	next int
}

// NewIndexer returns an Indexer starting at index 0.
func NewIndexer() *Indexer {
	return &Indexer{}
}

// IndexDocument segments and indexes every page of the document. A failure
// reading any page's text content aborts the whole pass: the citation
// pipeline has no per-page error isolation.
func (ix *Indexer) IndexDocument(doc engine.Document) ([]model.TextChunk, model.CitationMap, error) {
	var chunks []model.TextChunk
	citations := make(model.CitationMap)

	for pageNum := 1; pageNum <= doc.NumPages(); pageNum++ {
		page, err := doc.Page(pageNum)
		if err != nil {
			return nil, nil, fmt.Errorf("fetching page %d: %w", pageNum, err)
		}

		items, err := ReadRawItems(page)
		if err != nil {
			return nil, nil, fmt.Errorf("reading text content of page %d: %w", pageNum, err)
		}

		for _, chunk := range SegmentSentences(items, pageNum) {
			chunk.Index = ix.next
			ix.next++

			chunks = append(chunks, chunk)
			citations[chunk.Index] = model.Citation{
				Index:      chunk.Index,
				PageNum:    chunk.PageNum,
				Sentence:   chunk.Text,
				BBox:       chunk.BBox,
				Confidence: chunk.Confidence,
			}
		}
	}

	return chunks, citations, nil
}
