package model

// RawTextItem is a positioned glyph run as reported by the rendering engine,
// after conversion to top-down viewport space. Items are ephemeral: they are
// produced per page, consumed by the pipelines, and never persisted.
type RawTextItem struct {
	Text      string
	X         float64
	Y         float64 // Top edge in top-down viewport space
	Width     float64
	Height    float64
	FontName  string
	Transform Matrix // Raw text transform as reported by the engine
	IsHeading bool   // Explicit heading flag set upstream, if any
}

// BBox returns the item's bounding box.
func (it RawTextItem) BBox() BBox {
	return BBox{X: it.X, Y: it.Y, Width: it.Width, Height: it.Height}
}
