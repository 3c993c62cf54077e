// Package figures recovers embedded images from a page's paint-instruction
// stream. The Interceptor scans for image-paint opcodes, resolves each
// referenced image via the engine's primary accessor with a direct-lookup
// fallback, gates the result on size, aspect ratio, and buffer presence,
// normalizes the pixel data to a canonical RGBA buffer, and emits each
// surviving image as a self-contained PNG payload.
//
// One image failing resolution never aborts a page: it is counted and
// skipped. The color-space fallback for unrecognized pixel packings is a
// best-effort approximation: CMYK-like buffers are not color-managed, and
// downstream consumers needing color fidelity should check the figure's
// ColorSpaceKind metadata.
package figures
