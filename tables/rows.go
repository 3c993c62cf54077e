package tables

import (
	"math"
	"sort"

	"github.com/pagesift/pagesift/model"
)

// ClusterRows groups a page's raw items into horizontal rows by vertical
// proximity. Items are sorted by y, then scanned once: an item further than
// tolerance from the row's anchor y starts a new row. Each finished row is
// sorted left to right. Rows are returned top to bottom.
func ClusterRows(items []model.RawTextItem, tolerance float64) [][]model.RawTextItem {
	if len(items) == 0 {
		return nil
	}

	sorted := make([]model.RawTextItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Y < sorted[j].Y
	})

	var rows [][]model.RawTextItem
	currentRow := []model.RawTextItem{sorted[0]}
	lastRowY := sorted[0].Y

	for _, item := range sorted[1:] {
		if math.Abs(item.Y-lastRowY) > tolerance {
			rows = append(rows, sortRowByX(currentRow))
			currentRow = []model.RawTextItem{item}
			lastRowY = item.Y
		} else {
			currentRow = append(currentRow, item)
		}
	}
	rows = append(rows, sortRowByX(currentRow))

	return rows
}

// sortRowByX sorts a row's items ascending by x in place and returns it.
func sortRowByX(row []model.RawTextItem) []model.RawTextItem {
	sort.Slice(row, func(i, j int) bool {
		return row[i].X < row[j].X
	})
	return row
}
