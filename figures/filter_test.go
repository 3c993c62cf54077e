package figures

import (
	"strings"
	"testing"

	"github.com/pagesift/pagesift/engine"
	"github.com/pagesift/pagesift/model"
)

func grayImage(name string, w, h int) *engine.ImageObject {
	return &engine.ImageObject{
		Name:   name,
		Width:  w,
		Height: h,
		Kind:   model.ColorSpaceGray,
		Data:   make([]byte, w*h),
	}
}

func TestFilterConfig_AcceptsTypicalFigure(t *testing.T) {
	filter := DefaultFilterConfig()

	ok, reason := filter.Accept(grayImage("Im0", 60, 80))
	if !ok {
		t.Errorf("Accept(60x80) = false (%s), want true", reason)
	}
}

func TestFilterConfig_RejectsSmallImage(t *testing.T) {
	filter := DefaultFilterConfig()

	ok, reason := filter.Accept(grayImage("Im0", 40, 40))
	if ok {
		t.Fatal("Accept(40x40) = true, want false: icons must be excluded")
	}
	if !strings.Contains(reason, "below") {
		t.Errorf("reason = %q, want size reason", reason)
	}
}

func TestFilterConfig_BoundaryDimensionsAccepted(t *testing.T) {
	filter := DefaultFilterConfig()

	if ok, reason := filter.Accept(grayImage("Im0", 50, 50)); !ok {
		t.Errorf("Accept(50x50) = false (%s), want true at the boundary", reason)
	}
	if ok, _ := filter.Accept(grayImage("Im0", 49, 50)); ok {
		t.Error("Accept(49x50) = true, want false just below the boundary")
	}
}

func TestFilterConfig_RejectsExtremeAspect(t *testing.T) {
	filter := DefaultFilterConfig()

	// 1200x50 is a 24:1 divider strip.
	ok, reason := filter.Accept(grayImage("Im0", 1200, 50))
	if ok {
		t.Fatal("Accept(1200x50) = true, want false: extreme aspect")
	}
	if !strings.Contains(reason, "aspect") {
		t.Errorf("reason = %q, want aspect reason", reason)
	}
}

func TestFilterConfig_WideChartWithinAspectRange(t *testing.T) {
	filter := DefaultFilterConfig()

	// 1000x50 is exactly 20:1, the inclusive upper bound.
	if ok, reason := filter.Accept(grayImage("Im0", 1000, 50)); !ok {
		t.Errorf("Accept(1000x50) = false (%s), want true", reason)
	}
}

func TestFilterConfig_RejectsEmptyBuffer(t *testing.T) {
	filter := DefaultFilterConfig()

	img := &engine.ImageObject{Name: "Im0", Width: 100, Height: 100, Kind: model.ColorSpaceGray}
	ok, reason := filter.Accept(img)
	if ok {
		t.Fatal("Accept(empty buffer) = true, want false")
	}
	if !strings.Contains(reason, "empty") {
		t.Errorf("reason = %q, want empty buffer reason", reason)
	}
}

func TestDefaultFilterConfig(t *testing.T) {
	filter := DefaultFilterConfig()

	if filter.MinWidth != 50 || filter.MinHeight != 50 {
		t.Errorf("MinWidth/MinHeight = %d/%d, want 50/50", filter.MinWidth, filter.MinHeight)
	}
	if filter.MinAspect != 0.05 || filter.MaxAspect != 20.0 {
		t.Errorf("MinAspect/MaxAspect = %v/%v, want 0.05/20.0", filter.MinAspect, filter.MaxAspect)
	}
}
