package model

// ColorSpaceKind tags how an image's raw pixel bytes are packed.
type ColorSpaceKind int

const (
	ColorSpaceUnknown ColorSpaceKind = iota
	ColorSpaceGray                   // 1 byte per pixel
	ColorSpaceRGB                    // 3 bytes per pixel
	ColorSpaceRGBA                   // 4 bytes per pixel, alpha last
	ColorSpaceCMYK                   // 4 bytes per pixel, subtractive
)

func (k ColorSpaceKind) String() string {
	switch k {
	case ColorSpaceGray:
		return "gray"
	case ColorSpaceRGB:
		return "rgb"
	case ColorSpaceRGBA:
		return "rgba"
	case ColorSpaceCMYK:
		return "cmyk"
	default:
		return "unknown"
	}
}

// FigureMetadata carries per-figure provenance details.
type FigureMetadata struct {
	ImageName      string
	ColorSpaceKind ColorSpaceKind
	HasAlpha       bool
}

// ExtractedFigure is an image recovered from a page's paint-instruction
// stream, normalized to a canonical RGBA raster and encoded as a
// self-contained PNG payload. Figures are computed on demand, never cached.
type ExtractedFigure struct {
	ID               string
	PageNum          int
	Payload          []byte // PNG-encoded RGBA raster
	Width            int
	Height           int
	ExtractionMethod string
	Metadata         FigureMetadata
}
