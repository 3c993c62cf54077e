// Package diag collects extraction diagnostics: counters, table candidate
// rejection reasons, per-image resolution records, and per-page figure
// pipeline errors. The source this design replaces dropped rejected
// candidates silently, leaving "nothing detected" indistinguishable from
// "candidates rejected"; the Recorder closes that gap.
package diag

import (
	"fmt"

	"github.com/phuslu/log"
)

// TableRejection records one table candidate that failed the validity gate.
type TableRejection struct {
	PageNum int
	Reason  string
}

// ImageRecord is logged whenever a named image resolves, whether or not it
// is ultimately kept as a figure.
type ImageRecord struct {
	PageNum    int
	Name       string
	Width      int
	Height     int
	ColorSpace string
	HasAlpha   bool
	BufferLen  int
}

// Report is the accumulated diagnostics for one extraction pass.
type Report struct {
	PagesScanned    int
	ImagesSeen      int
	ImagesResolved  int
	ImagesSkipped   int
	FiguresRejected int
	TablesCommitted int

	TableRejections []TableRejection
	ImageRecords    []ImageRecord
	PageErrors      []string
}

// Recorder accumulates a Report and optionally mirrors each event to a
// structured logger. A nil Recorder is valid and records nothing, so
// pipeline code never needs to guard its calls.
type Recorder struct {
	report Report
	logger *log.Logger
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// WithLogger mirrors subsequent events to the given structured logger.
func (r *Recorder) WithLogger(logger *log.Logger) *Recorder {
	if r == nil {
		return nil
	}
	r.logger = logger
	return r
}

// PageScanned counts one processed page.
func (r *Recorder) PageScanned() {
	if r == nil {
		return
	}
	r.report.PagesScanned++
}

// TableRejected records a table candidate that failed the validity gate.
func (r *Recorder) TableRejected(pageNum int, reason string) {
	if r == nil {
		return
	}
	r.report.TableRejections = append(r.report.TableRejections, TableRejection{
		PageNum: pageNum,
		Reason:  reason,
	})
	if r.logger != nil {
		r.logger.Debug().
			Int("page", pageNum).
			Str("reason", reason).
			Msg("table candidate rejected")
	}
}

// TableCommitted counts a table that passed the validity gate.
func (r *Recorder) TableCommitted(pageNum int, rows, cols int) {
	if r == nil {
		return
	}
	r.report.TablesCommitted++
	if r.logger != nil {
		r.logger.Debug().
			Int("page", pageNum).
			Int("rows", rows).
			Int("cols", cols).
			Msg("table committed")
	}
}

// ImageSeen counts an image-paint instruction encountered in the stream.
func (r *Recorder) ImageSeen() {
	if r == nil {
		return
	}
	r.report.ImagesSeen++
}

// ImageResolved records a successfully resolved image.
func (r *Recorder) ImageResolved(rec ImageRecord) {
	if r == nil {
		return
	}
	r.report.ImagesResolved++
	r.report.ImageRecords = append(r.report.ImageRecords, rec)
	if r.logger != nil {
		r.logger.Debug().
			Int("page", rec.PageNum).
			Str("name", rec.Name).
			Int("width", rec.Width).
			Int("height", rec.Height).
			Str("colorspace", rec.ColorSpace).
			Bool("alpha", rec.HasAlpha).
			Int("buffer", rec.BufferLen).
			Msg("image resolved")
	}
}

// ImageSkipped counts an image that failed both resolution paths.
func (r *Recorder) ImageSkipped(pageNum int, name string, err error) {
	if r == nil {
		return
	}
	r.report.ImagesSkipped++
	if r.logger != nil {
		r.logger.Warn().
			Int("page", pageNum).
			Str("name", name).
			Err(err).
			Msg("image resolution failed on both paths")
	}
}

// FigureRejected counts an image excluded by the figure filter.
func (r *Recorder) FigureRejected(pageNum int, name, reason string) {
	if r == nil {
		return
	}
	r.report.FiguresRejected++
	if r.logger != nil {
		r.logger.Debug().
			Int("page", pageNum).
			Str("name", name).
			Str("reason", reason).
			Msg("figure rejected")
	}
}

// PageError records a per-page failure in a pipeline that isolates page
// errors (the table and figure pipelines).
func (r *Recorder) PageError(pageNum int, err error) {
	if r == nil {
		return
	}
	msg := fmt.Sprintf("page %d: %v", pageNum, err)
	r.report.PageErrors = append(r.report.PageErrors, msg)
	if r.logger != nil {
		r.logger.Warn().Int("page", pageNum).Err(err).Msg("page skipped")
	}
}

// Report returns a copy of the accumulated diagnostics.
func (r *Recorder) Report() Report {
	if r == nil {
		return Report{}
	}
	rep := r.report
	rep.TableRejections = append([]TableRejection(nil), r.report.TableRejections...)
	rep.ImageRecords = append([]ImageRecord(nil), r.report.ImageRecords...)
	rep.PageErrors = append([]string(nil), r.report.PageErrors...)
	return rep
}
