package tables

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/pagesift/pagesift/model"
)

// extractionMethod tags tables produced by this detector.
const extractionMethod = "geometric"

// buildGrid converts a committed region into a header/row grid. Each item is
// assigned to the fixed column nearest its x position; items landing in the
// same cell are space-joined, merging multi-token cells. Row 0 becomes the
// headers, the remaining rows the data.
func buildGrid(r *region, pageNum int) *model.ExtractedTable {
	grid := make([][]string, len(r.rows))
	for i, row := range r.rows {
		cells := make([]string, len(r.columns))
		for _, item := range row {
			col := nearestColumn(item.X, r.columns)
			if cells[col] == "" {
				cells[col] = item.Text
			} else {
				cells[col] += " " + item.Text
			}
		}
		for j := range cells {
			cells[j] = strings.TrimSpace(cells[j])
		}
		grid[i] = cells
	}

	table := &model.ExtractedTable{
		ID:               uuid.New().String(),
		PageNum:          pageNum,
		Headers:          grid[0],
		RawGrid:          grid,
		ColumnPositions:  append([]float64(nil), r.columns...),
		BBox:             regionBBox(r),
		ExtractionMethod: extractionMethod,
	}
	if len(grid) > 1 {
		table.Rows = grid[1:]
	}

	return table
}

// nearestColumn returns the index of the fixed column position that
// minimizes the distance to x.
func nearestColumn(x float64, columns []float64) int {
	best := 0
	bestDist := math.Abs(x - columns[0])
	for i, pos := range columns[1:] {
		if d := math.Abs(x - pos); d < bestDist {
			bestDist = d
			best = i + 1
		}
	}
	return best
}
