package pdfengine

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/image/ccitt"

	"github.com/pagesift/pagesift/engine"
	"github.com/pagesift/pagesift/model"
)

// xobjectInfo holds one image XObject's stream and declared properties.
type xobjectInfo struct {
	sd       types.StreamDict
	width    int
	height   int
	bpc      int
	kind     model.ColorSpaceKind
	isMask   bool
	hasAlpha bool
}

// imageXObjects walks the page's Resources/XObject dictionary and returns
// every image XObject keyed by resource name.
func (p *Page) imageXObjects() (map[string]xobjectInfo, error) {
	ctx := p.doc.ctx
	images := make(map[string]xobjectInfo)

	pageDict, _, _, err := ctx.PageDict(p.num, false)
	if err != nil {
		return nil, fmt.Errorf("page dict of page %d: %w", p.num, err)
	}

	resObj, found := pageDict.Find("Resources")
	if !found {
		return images, nil
	}
	resDeref, err := ctx.Dereference(resObj)
	if err != nil {
		return nil, fmt.Errorf("resources of page %d: %w", p.num, err)
	}
	resources, ok := resDeref.(types.Dict)
	if !ok {
		return images, nil
	}

	xObj, found := resources.Find("XObject")
	if !found {
		return images, nil
	}
	xDeref, err := ctx.Dereference(xObj)
	if err != nil {
		return nil, fmt.Errorf("xobjects of page %d: %w", p.num, err)
	}
	xObjects, ok := xDeref.(types.Dict)
	if !ok {
		return images, nil
	}

	for name, obj := range xObjects {
		deref, err := ctx.Dereference(obj)
		if err != nil {
			continue
		}
		sd, ok := deref.(types.StreamDict)
		if !ok {
			continue
		}

		if subtype, found := sd.Find("Subtype"); found {
			if n, isName := subtype.(types.Name); !isName || n != "Image" {
				continue
			}
		} else {
			continue
		}

		images[name] = infoFromStreamDict(p.doc, sd)
	}

	return images, nil
}

// infoFromStreamDict reads an image XObject's declared properties.
func infoFromStreamDict(doc *Document, sd types.StreamDict) xobjectInfo {
	info := xobjectInfo{
		sd:     sd,
		width:  dictInt(doc, sd.Dict, "Width"),
		height: dictInt(doc, sd.Dict, "Height"),
		bpc:    dictInt(doc, sd.Dict, "BitsPerComponent"),
		kind:   colorSpaceKind(doc, sd.Dict),
	}

	if mask, found := sd.Find("ImageMask"); found {
		if b, ok := mask.(types.Boolean); ok && bool(b) {
			info.isMask = true
			info.kind = model.ColorSpaceGray
			if info.bpc == 0 {
				info.bpc = 1
			}
		}
	}
	if _, found := sd.Find("SMask"); found {
		info.hasAlpha = true
	}

	return info
}

// colorSpaceKind maps a declared ColorSpace entry onto the pixel packing
// tags the normalizer understands.
func colorSpaceKind(doc *Document, d types.Dict) model.ColorSpaceKind {
	csObj, found := d.Find("ColorSpace")
	if !found {
		return model.ColorSpaceUnknown
	}
	deref, err := doc.ctx.Dereference(csObj)
	if err != nil {
		return model.ColorSpaceUnknown
	}

	name, ok := deref.(types.Name)
	if !ok {
		// ICCBased, Indexed and friends: leave the packing undeclared and
		// let the bytes-per-pixel heuristic sort it out.
		return model.ColorSpaceUnknown
	}

	switch name {
	case "DeviceGray", "CalGray":
		return model.ColorSpaceGray
	case "DeviceRGB", "CalRGB":
		return model.ColorSpaceRGB
	case "DeviceCMYK":
		return model.ColorSpaceCMYK
	default:
		return model.ColorSpaceUnknown
	}
}

// ResolveImage resolves a named image via the page's resource dictionary,
// the primary accessor path.
func (p *Page) ResolveImage(name string) (*engine.ImageObject, error) {
	images, err := p.imageXObjects()
	if err != nil {
		return nil, err
	}

	info, ok := images[strings.TrimPrefix(name, "/")]
	if !ok {
		return nil, fmt.Errorf("image %q not in page %d resources", name, p.num)
	}

	return p.decodeImage(name, info)
}

// LookupImage is the fallback direct-lookup path: the optimizer's image
// object numbers for the page, indexed by the digits in the resource name
// (Im0, Img1, ...). Best effort only; names that carry no usable index
// fail resolution.
func (p *Page) LookupImage(name string) (*engine.ImageObject, error) {
	objNrs := pdfcpu.ImageObjNrs(p.doc.ctx, p.num)
	if len(objNrs) == 0 {
		return nil, fmt.Errorf("no image objects on page %d", p.num)
	}
	sort.Ints(objNrs)

	idx := trailingDigits(name)
	if idx < 0 || idx >= len(objNrs) {
		return nil, fmt.Errorf("image %q: no direct object match on page %d", name, p.num)
	}

	entry, ok := p.doc.ctx.Table[objNrs[idx]]
	if !ok || entry == nil {
		return nil, fmt.Errorf("image %q: object %d missing from xref table", name, objNrs[idx])
	}
	sd, ok := entry.Object.(types.StreamDict)
	if !ok {
		return nil, fmt.Errorf("image %q: object %d is not a stream", name, objNrs[idx])
	}

	return p.decodeImage(name, infoFromStreamDict(p.doc, sd))
}

// decodeImage turns an image XObject into a resolved engine image with a
// usable pixel buffer.
func (p *Page) decodeImage(name string, info xobjectInfo) (*engine.ImageObject, error) {
	img := &engine.ImageObject{
		Name:     strings.TrimPrefix(name, "/"),
		Width:    info.width,
		Height:   info.height,
		Kind:     info.kind,
		HasAlpha: info.hasAlpha,
	}

	switch lastFilter(info.sd) {
	case "DCTDecode":
		data, err := p.streamBytes(info.sd, false)
		if err != nil {
			return nil, fmt.Errorf("image %q: %w", name, err)
		}
		decoded, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("image %q: decoding JPEG: %w", name, err)
		}
		bounds := decoded.Bounds()
		img.Width = bounds.Dx()
		img.Height = bounds.Dy()
		img.Kind = model.ColorSpaceRGBA
		img.Data = rgbaBytes(decoded)
		return img, nil

	case "CCITTFaxDecode":
		data, err := p.streamBytes(info.sd, false)
		if err != nil {
			return nil, fmt.Errorf("image %q: %w", name, err)
		}
		gray, err := ccittToGray(data, info.sd, info.width, info.height)
		if err != nil {
			return nil, fmt.Errorf("image %q: %w", name, err)
		}
		img.Kind = model.ColorSpaceGray
		img.Data = gray
		return img, nil

	case "JPXDecode":
		return nil, fmt.Errorf("image %q: JPX encoding not supported", name)

	default:
		data, err := p.streamBytes(info.sd, true)
		if err != nil {
			return nil, fmt.Errorf("image %q: %w", name, err)
		}
		if info.bpc > 0 && info.bpc < 8 {
			data = expandBits(data, info.width, info.height, info.bpc)
			img.Kind = model.ColorSpaceGray
		}
		img.Data = data
		return img, nil
	}
}

// streamBytes returns a stream's bytes, decoded through the standard
// filters or raw for image codecs handled separately.
func (p *Page) streamBytes(sd types.StreamDict, decode bool) ([]byte, error) {
	loaded, _, err := p.doc.ctx.DereferenceStreamDict(sd)
	if err != nil || loaded == nil {
		// Fall back to whatever the parse left in the dict.
		loaded = &sd
	}

	if !decode {
		if len(loaded.Raw) > 0 {
			return loaded.Raw, nil
		}
		if len(loaded.Content) > 0 {
			return loaded.Content, nil
		}
		return nil, fmt.Errorf("empty stream")
	}

	if len(loaded.Content) == 0 && len(loaded.Raw) > 0 {
		if err := loaded.Decode(); err != nil {
			return nil, fmt.Errorf("decoding stream: %w", err)
		}
	}
	if len(loaded.Content) == 0 {
		return nil, fmt.Errorf("empty stream")
	}
	return loaded.Content, nil
}

// lastFilter returns the name of the last filter in the stream's Filter
// entry, which for images is the image codec.
func lastFilter(sd types.StreamDict) string {
	obj, found := sd.Find("Filter")
	if !found {
		return ""
	}
	switch f := obj.(type) {
	case types.Name:
		return string(f)
	case types.Array:
		if len(f) == 0 {
			return ""
		}
		if n, ok := f[len(f)-1].(types.Name); ok {
			return string(n)
		}
	}
	return ""
}

// ccittToGray decodes CCITT Group 3/4 fax data and expands the 1-bit
// result into 8-bit gray.
func ccittToGray(data []byte, sd types.StreamDict, width, height int) ([]byte, error) {
	columns := width
	if columns == 0 {
		columns = 1728
	}
	k := 0
	blackIs1 := false

	if parms, found := sd.Find("DecodeParms"); found {
		if d, ok := parms.(types.Dict); ok {
			if v, found := d.Find("Columns"); found {
				if n, ok := v.(types.Integer); ok {
					columns = int(n)
				}
			}
			if v, found := d.Find("K"); found {
				if n, ok := v.(types.Integer); ok {
					k = int(n)
				}
			}
			if v, found := d.Find("BlackIs1"); found {
				if b, ok := v.(types.Boolean); ok {
					blackIs1 = bool(b)
				}
			}
		}
	}

	sf := ccitt.Group3
	if k < 0 {
		sf = ccitt.Group4
	}
	rows := height
	if rows == 0 {
		rows = ccitt.AutoDetectHeight
	}

	r := ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, sf, columns, rows, &ccitt.Options{Invert: blackIs1})
	packed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ccitt decode: %w", err)
	}

	return expandBits(packed, columns, height, 1), nil
}

// expandBits unpacks sub-byte gray samples into one byte per pixel. Rows
// are padded to byte boundaries in the packed form.
func expandBits(data []byte, width, height, bpc int) []byte {
	if width <= 0 || height <= 0 {
		return data
	}

	rowStride := (width*bpc + 7) / 8
	maxVal := (1 << bpc) - 1
	out := make([]byte, 0, width*height)

	for y := 0; y < height; y++ {
		rowStart := y * rowStride
		if rowStart >= len(data) {
			break
		}
		for x := 0; x < width; x++ {
			bitPos := x * bpc
			byteIdx := rowStart + bitPos/8
			if byteIdx >= len(data) {
				break
			}
			shift := 8 - bpc - bitPos%8
			sample := (data[byteIdx] >> shift) & byte(maxVal)
			out = append(out, byte(int(sample)*255/maxVal))
		}
	}

	return out
}

// rgbaBytes flattens a decoded image into a tightly packed RGBA buffer.
func rgbaBytes(img image.Image) []byte {
	bounds := img.Bounds()
	out := make([]byte, 0, bounds.Dx()*bounds.Dy()*4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			out = append(out, byte(r>>8), byte(g>>8), byte(b>>8), byte(a>>8))
		}
	}
	return out
}

// dictInt reads an integer dictionary entry, dereferencing if needed.
func dictInt(doc *Document, d types.Dict, key string) int {
	obj, found := d.Find(key)
	if !found {
		return 0
	}
	deref, err := doc.ctx.Dereference(obj)
	if err != nil {
		return 0
	}
	if n, ok := deref.(types.Integer); ok {
		return int(n)
	}
	return 0
}

// trailingDigits parses the digits at the end of a resource name, or -1.
func trailingDigits(name string) int {
	end := len(name)
	start := end
	for start > 0 && name[start-1] >= '0' && name[start-1] <= '9' {
		start--
	}
	if start == end {
		return -1
	}
	n := 0
	for _, c := range name[start:end] {
		n = n*10 + int(c-'0')
	}
	return n
}
