package tables

import (
	"fmt"
	"math"

	"github.com/pagesift/pagesift/diag"
	"github.com/pagesift/pagesift/model"
)

// Config holds detector configuration.
type Config struct {
	// Maximum vertical distance for two items to share a row (ε_row)
	RowTolerance float64

	// Maximum horizontal distance for two x positions to share a column (ε_col)
	ColumnTolerance float64

	// Minimum member rows for a valid table
	MinRows int

	// Minimum fixed columns for a valid table
	MinCols int

	// Minimum bounding box dimensions for a valid table
	MinWidth  float64
	MinHeight float64

	// Fraction of a row's columns that must land on the table's fixed
	// columns for the row to extend the table
	AlignmentRatio float64

	// Maximum allowed max/avg ratio of member row heights
	MaxRowHeightRatio float64

	// Maximum allowed deviation of any row's own column count from the
	// average across member rows
	MaxColumnDeviation float64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		RowTolerance:       5.0,
		ColumnTolerance:    10.0,
		MinRows:            3,
		MinCols:            3,
		MinWidth:           200.0,
		MinHeight:          50.0,
		AlignmentRatio:     0.8,
		MaxRowHeightRatio:  1.5,
		MaxColumnDeviation: 1.0,
	}
}

// Detector finds tables in a page's positioned text by scanning row
// clusters for a stable column grid. Detection is pure and page-scoped:
// results are recomputed on every call and no state is shared between
// invocations.
type Detector struct {
	config   Config
	recorder *diag.Recorder
}

// NewDetector creates a detector with default configuration.
func NewDetector() *Detector {
	return &Detector{config: DefaultConfig()}
}

// NewDetectorWithConfig creates a detector with the given configuration.
func NewDetectorWithConfig(config Config) *Detector {
	return &Detector{config: config}
}

// WithRecorder attaches a diagnostics recorder. Committed tables and gate
// rejections are reported to it.
func (d *Detector) WithRecorder(r *diag.Recorder) *Detector {
	d.recorder = r
	return d
}

// region accumulates a candidate table: its fixed column positions and the
// member rows collected so far.
type region struct {
	columns []float64
	rows    [][]model.RawTextItem
}

// Detect scans the page's rows top to bottom, extending the current
// candidate region while rows keep aligning to its fixed columns, and
// committing regions that pass the validity gate.
func (d *Detector) Detect(items []model.RawTextItem, pageNum int) []*model.ExtractedTable {
	rows := ClusterRows(items, d.config.RowTolerance)

	var tables []*model.ExtractedTable
	var current *region

	commit := func() {
		if current == nil {
			return
		}
		if reason := d.validate(current); reason != "" {
			d.recorder.TableRejected(pageNum, reason)
		} else {
			table := buildGrid(current, pageNum)
			tables = append(tables, table)
			d.recorder.TableCommitted(pageNum, len(table.RawGrid), len(table.ColumnPositions))
		}
		current = nil
	}

	for _, row := range rows {
		columns := ClusterColumns(row, d.config.ColumnTolerance)
		hasColumns := len(columns) >= d.config.MinCols

		if current != nil && d.aligns(columns, current.columns) {
			// The row extends the current table; its fixed columns do
			// not change.
			current.rows = append(current.rows, row)
			continue
		}

		commit()
		if hasColumns {
			current = &region{
				columns: columns,
				rows:    [][]model.RawTextItem{row},
			}
		}
	}
	commit()

	return tables
}

// aligns reports whether enough of a row's column positions land within
// ε_col of the table's fixed columns.
func (d *Detector) aligns(rowColumns, fixedColumns []float64) bool {
	if len(rowColumns) == 0 {
		return false
	}

	matched := 0
	for _, pos := range rowColumns {
		for _, fixed := range fixedColumns {
			if math.Abs(pos-fixed) <= d.config.ColumnTolerance {
				matched++
				break
			}
		}
	}

	return float64(matched)/float64(len(rowColumns)) >= d.config.AlignmentRatio
}

// validate applies the multi-criterion validity gate. It returns an empty
// string when the region qualifies, or the rejection reason. Single-criterion
// grid matching over-triggers on justified or list-like text; this gate is
// the false-positive firewall.
func (d *Detector) validate(r *region) string {
	if len(r.rows) < d.config.MinRows {
		return fmt.Sprintf("only %d rows, need %d", len(r.rows), d.config.MinRows)
	}
	if len(r.columns) < d.config.MinCols {
		return fmt.Sprintf("only %d columns, need %d", len(r.columns), d.config.MinCols)
	}

	bbox := regionBBox(r)
	if bbox.Width < d.config.MinWidth || bbox.Height < d.config.MinHeight {
		return fmt.Sprintf("bounding box %.0fx%.0f below %.0fx%.0f minimum",
			bbox.Width, bbox.Height, d.config.MinWidth, d.config.MinHeight)
	}

	heights := make([]float64, len(r.rows))
	maxHeight := 0.0
	for i, row := range r.rows {
		heights[i] = rowHeight(row)
		if heights[i] > maxHeight {
			maxHeight = heights[i]
		}
	}
	avgHeight := mean(heights)
	if avgHeight > 0 && maxHeight/avgHeight > d.config.MaxRowHeightRatio {
		return fmt.Sprintf("row height ratio %.2f exceeds %.2f",
			maxHeight/avgHeight, d.config.MaxRowHeightRatio)
	}

	counts := make([]float64, len(r.rows))
	for i, row := range r.rows {
		counts[i] = float64(len(ClusterColumns(row, d.config.ColumnTolerance)))
	}
	avgCount := mean(counts)
	for _, c := range counts {
		if math.Abs(c-avgCount) > d.config.MaxColumnDeviation {
			return fmt.Sprintf("row column count %.0f deviates from average %.1f by more than %.0f",
				c, avgCount, d.config.MaxColumnDeviation)
		}
	}

	return ""
}

// rowHeight returns a row's own extent: max bottom minus min top.
func rowHeight(row []model.RawTextItem) float64 {
	if len(row) == 0 {
		return 0
	}
	minTop := row[0].Y
	maxBottom := row[0].Y + row[0].Height
	for _, item := range row[1:] {
		if item.Y < minTop {
			minTop = item.Y
		}
		if bottom := item.Y + item.Height; bottom > maxBottom {
			maxBottom = bottom
		}
	}
	return maxBottom - minTop
}

// regionBBox returns the union of every constituent item across every row.
func regionBBox(r *region) model.BBox {
	var boxes []model.BBox
	for _, row := range r.rows {
		for _, item := range row {
			boxes = append(boxes, item.BBox())
		}
	}
	return model.UnionAll(boxes)
}
