package pdfengine

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pagesift/pagesift/engine"
)

// Document adapts a real PDF stack to the engine capability interface.
// Positioned glyph runs come from ledongthuc/pdf; operator streams and
// image XObject resolution come from pdfcpu.
type Document struct {
	file   *os.File
	reader *pdf.Reader
	ctx    *pdfmodel.Context
}

// Open opens a PDF file as an engine document. The returned Document must
// be closed when done.
func Open(filename string) (*Document, error) {
	f, r, err := pdf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	cf, err := os.Open(filename)
	if err != nil {
		f.Close()
		return nil, err
	}
	defer cf.Close()

	conf := pdfmodel.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(cf, conf)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	return &Document{file: f, reader: r, ctx: ctx}, nil
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// Page returns the 1-indexed page n.
func (d *Document) Page(n int) (engine.Page, error) {
	if n < 1 || n > d.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range (1..%d)", n, d.reader.NumPage())
	}

	p := d.reader.Page(n)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d has no page object", n)
	}

	return &Page{doc: d, num: n, page: p}, nil
}

// Close releases the underlying file handle. It is safe to call Close
// multiple times.
func (d *Document) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// Page adapts one PDF page to the engine Page interface.
type Page struct {
	doc  *Document
	num  int
	page pdf.Page
}

// Number returns the 1-indexed page number.
func (p *Page) Number() int {
	return p.num
}

// Viewport returns the page dimensions from the MediaBox, walking up the
// page tree for inherited values and defaulting to US Letter when none is
// found.
func (p *Page) Viewport() engine.Viewport {
	if w, h, ok := mediaBoxSize(p.page.V.Key("MediaBox")); ok {
		return engine.Viewport{Width: w, Height: h}
	}

	// Inherited MediaBox: walk Parent references, bounded against cycles.
	current := p.page.V
	for i := 0; i < 10; i++ {
		parent := current.Key("Parent")
		if parent.IsNull() {
			break
		}
		if w, h, ok := mediaBoxSize(parent.Key("MediaBox")); ok {
			return engine.Viewport{Width: w, Height: h}
		}
		current = parent
	}

	return engine.Viewport{Width: 612, Height: 792}
}

// mediaBoxSize parses a MediaBox array into page dimensions.
func mediaBoxSize(mediaBox pdf.Value) (width, height float64, ok bool) {
	if mediaBox.IsNull() || mediaBox.Kind() != pdf.Array || mediaBox.Len() != 4 {
		return 0, 0, false
	}

	coords := make([]float64, 4)
	for i := 0; i < 4; i++ {
		val := mediaBox.Index(i)
		switch val.Kind() {
		case pdf.Integer:
			coords[i] = float64(val.Int64())
		case pdf.Real:
			coords[i] = val.Float64()
		default:
			return 0, 0, false
		}
	}

	width = coords[2] - coords[0]
	height = coords[3] - coords[1]
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}
