package citations

import (
	"errors"
	"testing"

	"github.com/pagesift/pagesift/engine"
)

func TestReadRawItems_FlipsToTopDown(t *testing.T) {
	page := &engine.FakePage{
		Num:  1,
		Size: engine.Viewport{Width: 612, Height: 792},
		Items: []engine.TextItem{
			// 700 up from the bottom, 12 tall: top edge at 792-700-12 = 80.
			{Text: "high", X: 72, Y: 700, Width: 40, Height: 12},
			{Text: "low", X: 72, Y: 50, Width: 30, Height: 12},
		},
	}

	items, err := ReadRawItems(page)
	if err != nil {
		t.Fatalf("ReadRawItems() failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("ReadRawItems() returned %d items, want 2", len(items))
	}

	if items[0].Y != 80 {
		t.Errorf("items[0].Y = %v, want 80", items[0].Y)
	}
	if items[1].Y != 730 {
		t.Errorf("items[1].Y = %v, want 730", items[1].Y)
	}

	// Visually higher text must have the smaller top-down y.
	if items[0].Y >= items[1].Y {
		t.Error("top-down flip should put higher text at smaller y")
	}
}

func TestReadRawItems_PreservesOrderAndFields(t *testing.T) {
	page := &engine.FakePage{
		Num:  1,
		Size: engine.Viewport{Width: 612, Height: 792},
		Items: []engine.TextItem{
			{Text: "b", X: 200, Y: 100, Width: 10, Height: 10, FontName: "F1"},
			{Text: "a", X: 100, Y: 100, Width: 10, Height: 10, FontName: "F2"},
		},
	}

	items, err := ReadRawItems(page)
	if err != nil {
		t.Fatalf("ReadRawItems() failed: %v", err)
	}

	if items[0].Text != "b" || items[1].Text != "a" {
		t.Error("engine-reported order must be preserved")
	}
	if items[0].FontName != "F1" {
		t.Errorf("FontName = %q, want 'F1'", items[0].FontName)
	}
	if items[0].X != 200 || items[0].Width != 10 {
		t.Errorf("X/Width = %v/%v, want 200/10", items[0].X, items[0].Width)
	}
}

func TestReadRawItems_PropagatesError(t *testing.T) {
	readErr := errors.New("bad content")
	page := &engine.FakePage{Num: 1, TextErr: readErr}

	if _, err := ReadRawItems(page); !errors.Is(err, readErr) {
		t.Errorf("ReadRawItems() error = %v, want %v", err, readErr)
	}
}
