// Package engine defines the capability boundary between the semantic
// recovery pipelines and the page-rendering engine that feeds them.
//
// The pipelines never talk to a concrete engine. They consume the Document
// and Page interfaces, which expose exactly four capabilities: positioned
// glyph runs, the paint-instruction stream, the page viewport, and named
// image object resolution. This keeps the pipelines engine-agnostic: the
// pdfengine package adapts a real PDF stack, and FakeDocument/FakePage in
// this package drive the tests.
package engine
