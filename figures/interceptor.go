package figures

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/google/uuid"

	"github.com/pagesift/pagesift/diag"
	"github.com/pagesift/pagesift/engine"
	"github.com/pagesift/pagesift/model"
)

// extractionMethod tags figures produced by operator interception.
const extractionMethod = "operator-intercept"

// Interceptor scans a page's paint-instruction stream for image-paint
// opcodes, resolves the backing pixel buffers, and converts qualifying
// images into self-contained figure payloads. Extraction is pure and
// page-scoped: results are recomputed on every call.
type Interceptor struct {
	filter   FilterConfig
	recorder *diag.Recorder
}

// NewInterceptor creates an interceptor with default filter thresholds.
func NewInterceptor() *Interceptor {
	return &Interceptor{filter: DefaultFilterConfig()}
}

// NewInterceptorWithConfig creates an interceptor with the given filter
// thresholds.
func NewInterceptorWithConfig(filter FilterConfig) *Interceptor {
	return &Interceptor{filter: filter}
}

// WithRecorder attaches a diagnostics recorder. Every resolved image is
// recorded on it, independent of whether the image is ultimately kept.
func (ic *Interceptor) WithRecorder(r *diag.Recorder) *Interceptor {
	ic.recorder = r
	return ic
}

// ExtractPage scans one page and returns its extracted figures. A single
// image failing both resolution paths is skipped and counted, never a hard
// failure; only a failure reading the instruction stream itself is returned
// as an error, for the caller to isolate per page.
func (ic *Interceptor) ExtractPage(page engine.Page, pageNum int) ([]model.ExtractedFigure, error) {
	ops, err := page.OperatorList()
	if err != nil {
		return nil, fmt.Errorf("reading operator list of page %d: %w", pageNum, err)
	}

	var figures []model.ExtractedFigure
	for i := 0; i < ops.Len(); i++ {
		if !ops.Opcodes[i].IsImagePaint() {
			continue
		}
		ic.recorder.ImageSeen()

		name := imageName(ops.Operands[i], i)
		img, err := resolve(page, name)
		if err != nil {
			ic.recorder.ImageSkipped(pageNum, name, err)
			continue
		}

		ic.recorder.ImageResolved(diag.ImageRecord{
			PageNum:    pageNum,
			Name:       name,
			Width:      img.Width,
			Height:     img.Height,
			ColorSpace: img.Kind.String(),
			HasAlpha:   img.HasAlpha,
			BufferLen:  len(img.Data),
		})

		if ok, reason := ic.filter.Accept(img); !ok {
			ic.recorder.FigureRejected(pageNum, name, reason)
			continue
		}

		fig, err := buildFigure(img, pageNum)
		if err != nil {
			ic.recorder.ImageSkipped(pageNum, name, err)
			continue
		}
		figures = append(figures, fig)
	}

	return figures, nil
}

// imageName extracts the referenced image name from an instruction's
// operands, synthesizing one for inline images that carry no name.
func imageName(operands []string, index int) string {
	if len(operands) > 0 && operands[0] != "" {
		return operands[0]
	}
	return fmt.Sprintf("inline_%d", index)
}

// resolve tries the engine's primary accessor, falling back to the direct
// lookup path when the primary fails.
func resolve(page engine.Page, name string) (*engine.ImageObject, error) {
	img, err := page.ResolveImage(name)
	if err == nil {
		return img, nil
	}
	img, fallbackErr := page.LookupImage(name)
	if fallbackErr == nil {
		return img, nil
	}
	return nil, fmt.Errorf("primary: %v; fallback: %w", err, fallbackErr)
}

// buildFigure normalizes the image to canonical RGBA and encodes the
// self-contained PNG payload.
func buildFigure(img *engine.ImageObject, pageNum int) (model.ExtractedFigure, error) {
	rgba, err := NormalizeRGBA(img)
	if err != nil {
		return model.ExtractedFigure{}, err
	}

	raster := &image.RGBA{
		Pix:    rgba,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, raster); err != nil {
		return model.ExtractedFigure{}, fmt.Errorf("encoding %q: %w", img.Name, err)
	}

	return model.ExtractedFigure{
		ID:               uuid.New().String(),
		PageNum:          pageNum,
		Payload:          buf.Bytes(),
		Width:            img.Width,
		Height:           img.Height,
		ExtractionMethod: extractionMethod,
		Metadata: model.FigureMetadata{
			ImageName:      img.Name,
			ColorSpaceKind: img.Kind,
			HasAlpha:       img.HasAlpha,
		},
	}, nil
}
