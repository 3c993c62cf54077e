// Package model defines the shared data model for semantic recovery:
// top-down geometry (Point, BBox, Matrix), the ephemeral per-page
// RawTextItem, and the three pipeline outputs: indexed TextChunks with
// their CitationMap, ExtractedTables with derived CSV/HTML/Markdown
// renderings, and ExtractedFigures carrying PNG payloads.
//
// All geometry is expressed in top-down viewport space: the origin is the
// top-left corner of the page and Y grows downward. Engine adapters are
// responsible for flipping coordinates before items reach this model.
package model
