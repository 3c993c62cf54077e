// Package pagesift recovers structured semantic objects (indexed citable
// sentences, tables, and figures) from the raw geometric output of a
// page-rendering engine that exposes only positioned glyph runs and
// low-level paint instructions.
//
// Basic usage:
//
//	doc, err := pdfengine.Open("paper.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//
//	ext := pagesift.FromDocument(doc)
//	chunks, citations, err := ext.Citations()
//	tables, err := ext.Tables()
//	figures, err := ext.Figures()
//
// With options:
//
//	tables, err := pagesift.FromDocument(doc).
//	    Pages(2, 3).
//	    RowTolerance(8).
//	    Tables()
//
// The three pipelines are deterministic, rule-based geometric inference;
// there is no OCR, no learning, and no color management. Table and figure
// extraction are pure page-scoped functions, recomputed on every call. The
// citation pass processes pages strictly sequentially to keep citation
// indices unique, contiguous from 0, and increasing in page-then-reading
// order.
package pagesift

import (
	"errors"

	"github.com/pagesift/pagesift/diag"
	"github.com/pagesift/pagesift/engine"
	"github.com/pagesift/pagesift/pdfengine"
)

// ErrMissingDocument is returned by terminal operations when the Extractor
// has no document to work on.
var ErrMissingDocument = errors.New("no active document")

// Open opens a PDF file and returns an Extractor that owns the underlying
// document. Call Close on the Extractor (or any of its clones) when done.
//
// Example:
//
//	ext, err := pagesift.Open("paper.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer ext.Close()
func Open(filename string) (*Extractor, error) {
	doc, err := pdfengine.Open(filename)
	if err != nil {
		return nil, err
	}

	ext := FromDocument(doc)
	ext.closer = doc
	return ext, nil
}

// FromDocument creates an Extractor over an already-opened engine document.
// The caller keeps ownership of the document's lifecycle.
//
// Example:
//
//	chunks, citations, err := pagesift.FromDocument(doc).Citations()
func FromDocument(doc engine.Document) *Extractor {
	return &Extractor{
		doc:      doc,
		options:  defaultOptions(),
		recorder: diag.NewRecorder(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	tables := pagesift.Must(pagesift.FromDocument(doc).Tables())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
