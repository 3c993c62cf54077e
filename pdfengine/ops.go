package pdfengine

import (
	"bytes"
	"fmt"
	"io"
	"regexp"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"github.com/pagesift/pagesift/engine"
)

// doRe matches an XObject paint instruction: /Name Do
var doRe = regexp.MustCompile(`/(\S+)\s+Do\b`)

// OperatorList extracts the page's content stream via pdfcpu and classifies
// each instruction line. XObject paints are resolved against the page's
// image resources to tell image paints (and mask paints) apart from form
// XObjects; inline image blocks (BI ... EI) are folded into a single
// instruction.
func (p *Page) OperatorList() (engine.OperatorList, error) {
	r, err := pdfcpu.ExtractPageContent(p.doc.ctx, p.num)
	if err != nil {
		return engine.OperatorList{}, fmt.Errorf("extracting content of page %d: %w", p.num, err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return engine.OperatorList{}, fmt.Errorf("reading content of page %d: %w", p.num, err)
	}

	images, err := p.imageXObjects()
	if err != nil {
		return engine.OperatorList{}, err
	}

	return scanOperators(data, images), nil
}

// scanOperators walks the content stream line by line, emitting one opcode
// per instruction line.
func scanOperators(data []byte, images map[string]xobjectInfo) engine.OperatorList {
	var ol engine.OperatorList

	emit := func(code engine.Opcode, operands []string) {
		ol.Opcodes = append(ol.Opcodes, code)
		ol.Operands = append(ol.Operands, operands)
	}

	inInline := false
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		if inInline {
			if bytes.Contains(line, []byte("EI")) {
				inInline = false
			}
			continue
		}

		if bytes.Equal(line, []byte("BI")) || bytes.HasPrefix(line, []byte("BI ")) {
			emit(engine.OpPaintInlineImage, []string{""})
			if !bytes.Contains(line, []byte("EI")) {
				inInline = true
			}
			continue
		}

		if m := doRe.FindSubmatch(line); m != nil {
			name := string(m[1])
			if info, ok := images[name]; ok {
				code := engine.OpPaintImageXObject
				if info.isMask {
					code = engine.OpPaintImageMask
				}
				emit(code, []string{name})
				continue
			}
		}

		emit(engine.OpOther, nil)
	}

	return ol
}
