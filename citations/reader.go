package citations

import (
	"github.com/pagesift/pagesift/engine"
	"github.com/pagesift/pagesift/model"
)

// ReadRawItems pulls a page's positioned glyph runs and flips them from the
// engine's bottom-up space into top-down viewport space. Item order is
// preserved exactly as the engine reported it.
func ReadRawItems(page engine.Page) ([]model.RawTextItem, error) {
	content, err := page.TextContent()
	if err != nil {
		return nil, err
	}

	vp := page.Viewport()
	items := make([]model.RawTextItem, 0, len(content))
	for _, it := range content {
		items = append(items, model.RawTextItem{
			Text:      it.Text,
			X:         it.X,
			Y:         vp.Height - it.Y - it.Height,
			Width:     it.Width,
			Height:    it.Height,
			FontName:  it.FontName,
			Transform: it.Transform,
			IsHeading: it.IsHeading,
		})
	}
	return items, nil
}
