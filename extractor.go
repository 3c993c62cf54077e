package pagesift

import (
	"fmt"
	"io"

	"github.com/phuslu/log"

	"github.com/pagesift/pagesift/citations"
	"github.com/pagesift/pagesift/diag"
	"github.com/pagesift/pagesift/engine"
	"github.com/pagesift/pagesift/figures"
	"github.com/pagesift/pagesift/model"
	"github.com/pagesift/pagesift/tables"
)

// Extractor provides a fluent interface for recovering citations, tables,
// and figures from an engine document. Each configuration method returns a
// new Extractor instance, making chains safe to share; the diagnostics
// recorder is the session-scoped context all clones report into.
type Extractor struct {
	doc engine.Document

	options ExtractOptions

	// Session-scoped diagnostics, shared across clones
	recorder *diag.Recorder

	// Set when the Extractor owns the document (created via Open)
	closer io.Closer

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		doc:      e.doc,
		options:  e.options.clone(),
		recorder: e.recorder,
		closer:   e.closer,
		err:      e.err,
	}
}

// Close releases the underlying document when the Extractor owns it. For
// Extractors created with FromDocument the caller keeps ownership and Close
// is a no-op.
func (e *Extractor) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// Pages restricts table and figure extraction to specific pages (1-indexed).
// The citation pass ignores this: its index invariant requires every page.
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append([]int(nil), pages...)
	return newExt
}

// RowTolerance sets ε_row, the maximum vertical distance for two items to
// share a row during table detection.
func (e *Extractor) RowTolerance(t float64) *Extractor {
	newExt := e.clone()
	newExt.options.tableConfig.RowTolerance = t
	return newExt
}

// ColumnTolerance sets ε_col, the maximum horizontal distance for two x
// positions to share a column during table detection.
func (e *Extractor) ColumnTolerance(t float64) *Extractor {
	newExt := e.clone()
	newExt.options.tableConfig.ColumnTolerance = t
	return newExt
}

// TableConfig replaces the whole table detection configuration.
func (e *Extractor) TableConfig(config tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options.tableConfig = config
	return newExt
}

// FigureFilter replaces the figure acceptance thresholds.
func (e *Extractor) FigureFilter(config figures.FilterConfig) *Extractor {
	newExt := e.clone()
	newExt.options.filterConfig = config
	return newExt
}

// WithLogger streams diagnostic events (table rejections, image records,
// skipped pages) to a structured logger as they happen.
func (e *Extractor) WithLogger(logger *log.Logger) *Extractor {
	newExt := e.clone()
	newExt.recorder.WithLogger(logger)
	return newExt
}

// PageCount returns the number of pages in the document.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if e.doc == nil {
		return 0, ErrMissingDocument
	}
	return e.doc.NumPages(), nil
}

// Citations segments the whole document into indexed sentence chunks and
// builds the citation lookup map. Pages are processed strictly in document
// order; a failure reading any page aborts the pass with an error naming
// the page. There is no per-page isolation here.
func (e *Extractor) Citations() ([]model.TextChunk, model.CitationMap, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if e.doc == nil {
		return nil, nil, ErrMissingDocument
	}

	return citations.NewIndexer().IndexDocument(e.doc)
}

// Tables detects tables on the selected pages. Per-page failures degrade
// gracefully: the page is recorded in diagnostics and skipped, and the
// remaining pages still produce results.
func (e *Extractor) Tables() ([]model.ExtractedTable, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.doc == nil {
		return nil, ErrMissingDocument
	}

	detector := tables.NewDetectorWithConfig(e.options.tableConfig).
		WithRecorder(e.recorder)

	pageNums, err := e.resolvePages()
	if err != nil {
		return nil, err
	}

	var result []model.ExtractedTable
	for _, pageNum := range pageNums {
		items, err := e.pageItems(pageNum)
		if err != nil {
			e.recorder.PageError(pageNum, err)
			continue
		}
		e.recorder.PageScanned()

		for _, table := range detector.Detect(items, pageNum) {
			result = append(result, *table)
		}
	}

	return result, nil
}

// Figures extracts figures from the selected pages. Per-page failures are
// recorded as diagnostics and the scan continues with the next page.
func (e *Extractor) Figures() ([]model.ExtractedFigure, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.doc == nil {
		return nil, ErrMissingDocument
	}

	interceptor := figures.NewInterceptorWithConfig(e.options.filterConfig).
		WithRecorder(e.recorder)

	pageNums, err := e.resolvePages()
	if err != nil {
		return nil, err
	}

	var result []model.ExtractedFigure
	for _, pageNum := range pageNums {
		page, err := e.doc.Page(pageNum)
		if err != nil {
			e.recorder.PageError(pageNum, err)
			continue
		}
		e.recorder.PageScanned()

		figs, err := interceptor.ExtractPage(page, pageNum)
		if err != nil {
			e.recorder.PageError(pageNum, err)
			continue
		}
		result = append(result, figs...)
	}

	return result, nil
}

// Diagnostics returns the accumulated diagnostics for this session.
func (e *Extractor) Diagnostics() diag.Report {
	return e.recorder.Report()
}

// pageItems fetches one page's raw items in top-down space.
func (e *Extractor) pageItems(pageNum int) ([]model.RawTextItem, error) {
	page, err := e.doc.Page(pageNum)
	if err != nil {
		return nil, err
	}
	return citations.ReadRawItems(page)
}

// resolvePages returns the 1-indexed pages to process, validating any
// explicit selection against the document.
func (e *Extractor) resolvePages() ([]int, error) {
	numPages := e.doc.NumPages()

	if e.options.pages == nil {
		all := make([]int, numPages)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	for _, p := range e.options.pages {
		if p < 1 || p > numPages {
			return nil, fmt.Errorf("page %d out of range (1..%d)", p, numPages)
		}
	}
	return append([]int(nil), e.options.pages...), nil
}
