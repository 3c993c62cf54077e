package tables

import (
	"math"
	"sort"

	"github.com/pagesift/pagesift/model"
)

// ClusterColumns groups one row's items into column clusters by horizontal
// proximity using greedy single-linkage: an item's x joins an existing
// cluster if any member is within tolerance, otherwise it starts a new
// cluster. Each cluster is represented by the arithmetic mean of its
// members. Positions are returned ascending.
func ClusterColumns(row []model.RawTextItem, tolerance float64) []float64 {
	if len(row) == 0 {
		return nil
	}

	var clusters [][]float64
	for _, item := range row {
		joined := false
		for i, cluster := range clusters {
			if withinTolerance(item.X, cluster, tolerance) {
				clusters[i] = append(cluster, item.X)
				joined = true
				break
			}
		}
		if !joined {
			clusters = append(clusters, []float64{item.X})
		}
	}

	positions := make([]float64, len(clusters))
	for i, cluster := range clusters {
		positions[i] = mean(cluster)
	}
	sort.Float64s(positions)

	return positions
}

// withinTolerance reports whether x is within tolerance of any member.
func withinTolerance(x float64, members []float64, tolerance float64) bool {
	for _, m := range members {
		if math.Abs(x-m) <= tolerance {
			return true
		}
	}
	return false
}

// mean computes the arithmetic mean of a slice of float64 values.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
