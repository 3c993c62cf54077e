package engine

import "fmt"

// FakeDocument is an in-memory Document implementation for tests. Pages are
// configured directly on the struct.
type FakeDocument struct {
	Pages []*FakePage
}

// NumPages returns the number of configured pages.
func (d *FakeDocument) NumPages() int {
	return len(d.Pages)
}

// Page returns the 1-indexed page n.
func (d *FakeDocument) Page(n int) (Page, error) {
	if n < 1 || n > len(d.Pages) {
		return nil, fmt.Errorf("page %d out of range (1..%d)", n, len(d.Pages))
	}
	return d.Pages[n-1], nil
}

// FakePage is an in-memory Page. Any of the Err fields, when set, is
// returned by the corresponding accessor to exercise failure paths.
type FakePage struct {
	Num        int
	Size       Viewport
	Items      []TextItem
	Ops        OperatorList
	Images     map[string]*ImageObject // Primary accessor source
	Direct     map[string]*ImageObject // Fallback lookup source
	TextErr    error
	OpsErr     error
	ResolveErr error
}

// Number returns the configured page number.
func (p *FakePage) Number() int {
	return p.Num
}

// Viewport returns the configured page dimensions.
func (p *FakePage) Viewport() Viewport {
	return p.Size
}

// TextContent returns the configured glyph runs or TextErr.
func (p *FakePage) TextContent() ([]TextItem, error) {
	if p.TextErr != nil {
		return nil, p.TextErr
	}
	return p.Items, nil
}

// OperatorList returns the configured instruction stream or OpsErr.
func (p *FakePage) OperatorList() (OperatorList, error) {
	if p.OpsErr != nil {
		return OperatorList{}, p.OpsErr
	}
	return p.Ops, nil
}

// ResolveImage returns the named image from the primary source.
func (p *FakePage) ResolveImage(name string) (*ImageObject, error) {
	if p.ResolveErr != nil {
		return nil, p.ResolveErr
	}
	img, ok := p.Images[name]
	if !ok {
		return nil, fmt.Errorf("image %q not found", name)
	}
	return img, nil
}

// LookupImage returns the named image from the direct lookup source.
func (p *FakePage) LookupImage(name string) (*ImageObject, error) {
	img, ok := p.Direct[name]
	if !ok {
		return nil, fmt.Errorf("image %q not in direct lookup", name)
	}
	return img, nil
}
