package figures

import (
	"fmt"

	"github.com/pagesift/pagesift/engine"
)

// FilterConfig holds the acceptance thresholds for resolved images.
type FilterConfig struct {
	MinWidth  int
	MinHeight int
	MinAspect float64
	MaxAspect float64
}

// DefaultFilterConfig returns the default thresholds. The wide aspect range
// tolerates legitimate very-wide or very-tall charts while excluding logos,
// icons, and thin decorative dividers.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinWidth:  50,
		MinHeight: 50,
		MinAspect: 0.05,
		MaxAspect: 20.0,
	}
}

// Accept reports whether a resolved image qualifies as a figure. When it
// does not, the returned reason says which criterion failed.
func (c FilterConfig) Accept(img *engine.ImageObject) (bool, string) {
	if img.Width < c.MinWidth || img.Height < c.MinHeight {
		return false, fmt.Sprintf("%dx%d below %dx%d minimum",
			img.Width, img.Height, c.MinWidth, c.MinHeight)
	}

	aspect := float64(img.Width) / float64(img.Height)
	if aspect < c.MinAspect || aspect > c.MaxAspect {
		return false, fmt.Sprintf("aspect ratio %.3f outside [%.2f, %.2f]",
			aspect, c.MinAspect, c.MaxAspect)
	}

	if len(img.Data) == 0 {
		return false, "empty pixel buffer"
	}

	return true, ""
}
