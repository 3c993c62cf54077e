// Package pdfengine adapts a real PDF stack to the engine capability
// interface. Positioned text comes from ledongthuc/pdf, which exposes
// per-glyph placement; content streams, resource dictionaries, and image
// XObject streams come from pdfcpu's optimized document context. The two
// readers share one underlying file and stay page-aligned because both
// number pages from 1 in document order.
package pdfengine
