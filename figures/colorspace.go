package figures

import (
	"fmt"

	"github.com/pagesift/pagesift/engine"
	"github.com/pagesift/pagesift/model"
)

// NormalizeRGBA converts an image's raw pixel buffer into a canonical RGBA
// buffer (4 bytes per pixel, alpha last). Grayscale values are broadcast to
// R, G, B; RGB gains an opaque alpha; RGBA is copied verbatim. Anything
// else falls back to a bytes-per-pixel heuristic: with at least 3 bytes per
// pixel the first three bytes are taken as R, G, B, with 1 or 2 the first
// byte is treated as gray. The fallback is an approximation, not a
// colorimetric conversion; in particular CMYK is not color-managed.
func NormalizeRGBA(img *engine.ImageObject) ([]byte, error) {
	pixels := img.Width * img.Height
	if pixels <= 0 {
		return nil, fmt.Errorf("image %q has no pixels (%dx%d)", img.Name, img.Width, img.Height)
	}
	if len(img.Data) == 0 {
		return nil, fmt.Errorf("image %q has an empty buffer", img.Name)
	}

	switch {
	case img.Kind == model.ColorSpaceGray && len(img.Data) >= pixels:
		return grayToRGBA(img.Data, pixels), nil
	case img.Kind == model.ColorSpaceRGBA && len(img.Data) >= pixels*4:
		out := make([]byte, pixels*4)
		copy(out, img.Data[:pixels*4])
		return out, nil
	case img.Kind == model.ColorSpaceRGB && len(img.Data) >= pixels*3:
		return rgbToRGBA(img.Data, pixels), nil
	}

	// Unrecognized packing (CMYK-like or undeclared): derive bytes per
	// pixel from the buffer length and take a best-effort view.
	bpp := len(img.Data) / pixels
	switch {
	case bpp >= 3:
		return strideToRGBA(img.Data, pixels, bpp), nil
	case bpp >= 1:
		return strideToGrayRGBA(img.Data, pixels, bpp), nil
	default:
		return nil, fmt.Errorf("image %q buffer too short: %d bytes for %d pixels",
			img.Name, len(img.Data), pixels)
	}
}

// grayToRGBA broadcasts each gray value to R, G, B with opaque alpha.
func grayToRGBA(data []byte, pixels int) []byte {
	out := make([]byte, pixels*4)
	for i := 0; i < pixels; i++ {
		v := data[i]
		out[i*4] = v
		out[i*4+1] = v
		out[i*4+2] = v
		out[i*4+3] = 255
	}
	return out
}

// rgbToRGBA inserts an opaque alpha after every RGB triple.
func rgbToRGBA(data []byte, pixels int) []byte {
	out := make([]byte, pixels*4)
	for i := 0; i < pixels; i++ {
		out[i*4] = data[i*3]
		out[i*4+1] = data[i*3+1]
		out[i*4+2] = data[i*3+2]
		out[i*4+3] = 255
	}
	return out
}

// strideToRGBA takes the first three bytes of each bpp-sized pixel as
// R, G, B and forces opaque alpha.
func strideToRGBA(data []byte, pixels, bpp int) []byte {
	out := make([]byte, pixels*4)
	for i := 0; i < pixels; i++ {
		off := i * bpp
		out[i*4] = data[off]
		out[i*4+1] = data[off+1]
		out[i*4+2] = data[off+2]
		out[i*4+3] = 255
	}
	return out
}

// strideToGrayRGBA treats the first byte of each bpp-sized pixel as gray.
func strideToGrayRGBA(data []byte, pixels, bpp int) []byte {
	out := make([]byte, pixels*4)
	for i := 0; i < pixels; i++ {
		v := data[i*bpp]
		out[i*4] = v
		out[i*4+1] = v
		out[i*4+2] = v
		out[i*4+3] = 255
	}
	return out
}
