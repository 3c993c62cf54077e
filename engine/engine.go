package engine

import "github.com/pagesift/pagesift/model"

// Document is the narrow capability surface the pipelines need from a
// page-rendering engine. Implementations must be safe for sequential use;
// concurrent page access is permitted only if the underlying engine
// supports concurrent page decoding.
type Document interface {
	// NumPages returns the number of pages in the document.
	NumPages() int

	// Page returns the 1-indexed page n.
	Page(n int) (Page, error)
}

// Page exposes one page's text content, paint-instruction stream, viewport,
// and image object resolution.
type Page interface {
	// Number returns the 1-indexed page number.
	Number() int

	// Viewport returns the page dimensions in engine units.
	Viewport() Viewport

	// TextContent returns the page's positioned glyph runs in
	// engine-reported order. Coordinates are in the engine's native
	// bottom-up space; callers flip them to top-down.
	TextContent() ([]TextItem, error)

	// OperatorList returns the page's paint-instruction stream.
	OperatorList() (OperatorList, error)

	// ResolveImage resolves a named image object via the engine's primary
	// accessor.
	ResolveImage(name string) (*ImageObject, error)

	// LookupImage resolves a named image object via the engine's direct
	// lookup path, used as a fallback when ResolveImage fails.
	LookupImage(name string) (*ImageObject, error)
}

// Viewport holds page dimensions in engine units.
type Viewport struct {
	Width  float64
	Height float64
}

// TextItem is one positioned glyph run as reported by the engine, in the
// engine's native bottom-up coordinate space.
type TextItem struct {
	Text      string
	X         float64
	Y         float64 // Bottom-up: distance from the page bottom
	Width     float64
	Height    float64
	FontName  string
	Transform model.Matrix
	IsHeading bool // Set when the engine tags the run as a heading
}

// Opcode identifies a paint instruction.
type Opcode int

const (
	// OpOther covers every instruction the pipelines do not inspect.
	OpOther Opcode = iota
	// OpPaintImageXObject paints an externally referenced image.
	OpPaintImageXObject
	// OpPaintInlineImage paints image data embedded in the stream.
	OpPaintInlineImage
	// OpPaintImageMask paints a stencil mask image.
	OpPaintImageMask
)

// IsImagePaint reports whether the opcode paints an image.
func (op Opcode) IsImagePaint() bool {
	switch op {
	case OpPaintImageXObject, OpPaintInlineImage, OpPaintImageMask:
		return true
	default:
		return false
	}
}

// OperatorList is a page's paint-instruction stream, modeled as parallel
// opcode and operand sequences.
type OperatorList struct {
	Opcodes  []Opcode
	Operands [][]string
}

// Len returns the number of instructions.
func (ol OperatorList) Len() int {
	return len(ol.Opcodes)
}

// ImageObject is a resolved image's backing pixel buffer and declared
// properties.
type ImageObject struct {
	Name     string
	Width    int
	Height   int
	Kind     model.ColorSpaceKind
	Data     []byte
	HasAlpha bool
}
