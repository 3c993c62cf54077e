package tables

import (
	"strings"
	"testing"

	"github.com/pagesift/pagesift/diag"
	"github.com/pagesift/pagesift/model"
)

func gridItem(text string, x, y float64) model.RawTextItem {
	return model.RawTextItem{Text: text, X: x, Y: y, Width: 100, Height: 15}
}

// threeByThree is a well-formed grid: three rows of three cells on stable
// columns, wide and tall enough to pass the validity gate.
func threeByThree() []model.RawTextItem {
	var items []model.RawTextItem
	for r, y := range []float64{100, 120, 140} {
		for c, x := range []float64{10, 60, 110} {
			items = append(items, gridItem(cellText(r, c), x, y))
		}
	}
	return items
}

func cellText(row, col int) string {
	names := [][]string{
		{"Name", "Qty", "Price"},
		{"bolt", "4", "1.20"},
		{"nut", "9", "0.80"},
	}
	return names[row][col]
}

func TestDetector_DetectsThreeByThreeGrid(t *testing.T) {
	detector := NewDetector()

	tables := detector.Detect(threeByThree(), 1)
	if len(tables) != 1 {
		t.Fatalf("Detect() found %d tables, want 1", len(tables))
	}

	table := tables[0]
	if table.PageNum != 1 {
		t.Errorf("PageNum = %d, want 1", table.PageNum)
	}
	if table.ExtractionMethod != "geometric" {
		t.Errorf("ExtractionMethod = %q, want 'geometric'", table.ExtractionMethod)
	}
	if table.ID == "" {
		t.Error("table should carry a generated ID")
	}
	if len(table.ColumnPositions) != 3 {
		t.Errorf("ColumnPositions = %v, want 3 columns", table.ColumnPositions)
	}

	wantHeaders := []string{"Name", "Qty", "Price"}
	for i, w := range wantHeaders {
		if table.Headers[i] != w {
			t.Errorf("header %d = %q, want %q", i, table.Headers[i], w)
		}
	}

	if len(table.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != "bolt" || table.Rows[1][2] != "0.80" {
		t.Errorf("data rows = %v, want bolt/nut grid", table.Rows)
	}
}

func TestDetector_RejectsTwoRowGrid(t *testing.T) {
	var items []model.RawTextItem
	for _, y := range []float64{100, 120} {
		for _, x := range []float64{10, 110, 210} {
			items = append(items, gridItem("v", x, y))
		}
	}

	recorder := diag.NewRecorder()
	detector := NewDetector().WithRecorder(recorder)

	tables := detector.Detect(items, 1)
	if len(tables) != 0 {
		t.Fatalf("Detect() found %d tables, want 0: two rows must not qualify", len(tables))
	}

	report := recorder.Report()
	if len(report.TableRejections) != 1 {
		t.Fatalf("recorded %d rejections, want 1", len(report.TableRejections))
	}
	if !strings.Contains(report.TableRejections[0].Reason, "rows") {
		t.Errorf("rejection reason = %q, want row-count reason", report.TableRejections[0].Reason)
	}
}

func TestDetector_RejectsNarrowRegion(t *testing.T) {
	// Three stable columns but packed into a region narrower than the
	// minimum table width.
	var items []model.RawTextItem
	for _, y := range []float64{100, 120, 140} {
		for _, x := range []float64{10, 50, 90} {
			items = append(items, model.RawTextItem{Text: "v", X: x, Y: y, Width: 20, Height: 15})
		}
	}

	recorder := diag.NewRecorder()
	tables := NewDetector().WithRecorder(recorder).Detect(items, 1)
	if len(tables) != 0 {
		t.Fatalf("Detect() found %d tables, want 0", len(tables))
	}

	report := recorder.Report()
	if len(report.TableRejections) != 1 {
		t.Fatalf("recorded %d rejections, want 1", len(report.TableRejections))
	}
	if !strings.Contains(report.TableRejections[0].Reason, "bounding box") {
		t.Errorf("rejection reason = %q, want bounding box reason", report.TableRejections[0].Reason)
	}
}

func TestDetector_RejectsUnevenRowHeights(t *testing.T) {
	items := threeByThree()
	// Inflate every cell of the last row far beyond the others.
	for i := range items {
		if items[i].Y == 140 {
			items[i].Height = 60
		}
	}

	recorder := diag.NewRecorder()
	tables := NewDetector().WithRecorder(recorder).Detect(items, 1)
	if len(tables) != 0 {
		t.Fatalf("Detect() found %d tables, want 0", len(tables))
	}

	report := recorder.Report()
	if len(report.TableRejections) != 1 {
		t.Fatalf("recorded %d rejections, want 1", len(report.TableRejections))
	}
	if !strings.Contains(report.TableRejections[0].Reason, "row height") {
		t.Errorf("rejection reason = %q, want row height reason", report.TableRejections[0].Reason)
	}
}

func TestDetector_CommitsOnNonAligningRow(t *testing.T) {
	items := threeByThree()
	// A paragraph-like row below the grid on completely different x
	// positions ends the region; the grid above still commits.
	items = append(items,
		gridItem("Prose", 40, 170),
		gridItem("continues", 160, 170),
	)

	tables := NewDetector().Detect(items, 1)
	if len(tables) != 1 {
		t.Fatalf("Detect() found %d tables, want 1", len(tables))
	}
	if len(tables[0].RawGrid) != 3 {
		t.Errorf("grid has %d rows, want 3: prose row must not join", len(tables[0].RawGrid))
	}
}

func TestDetector_JoinsMultiTokenCells(t *testing.T) {
	items := threeByThree()
	// A second token close to the first column of the middle row lands in
	// the same cell and is space-joined.
	items = append(items, gridItem("steel", 20, 120))

	tables := NewDetector().Detect(items, 1)
	if len(tables) != 1 {
		t.Fatalf("Detect() found %d tables, want 1", len(tables))
	}
	if got := tables[0].Rows[0][0]; got != "bolt steel" {
		t.Errorf("joined cell = %q, want 'bolt steel'", got)
	}
}

func TestDetector_ColumnToleranceIsSingleKnob(t *testing.T) {
	// Rows whose x positions jitter by 8 points still form one table when
	// the column tolerance covers the jitter, and fall apart when it does
	// not. Clustering and alignment share the same tolerance.
	var items []model.RawTextItem
	for r, y := range []float64{100, 120, 140} {
		jitter := float64(r) * 8
		for _, x := range []float64{10, 110, 210} {
			items = append(items, gridItem("v", x+jitter, y))
		}
	}

	loose := NewDetectorWithConfig(Config{
		RowTolerance:       5,
		ColumnTolerance:    20,
		MinRows:            3,
		MinCols:            3,
		MinWidth:           200,
		MinHeight:          50,
		AlignmentRatio:     0.8,
		MaxRowHeightRatio:  1.5,
		MaxColumnDeviation: 1,
	})
	if got := len(loose.Detect(items, 1)); got != 1 {
		t.Errorf("tolerance 20: %d tables, want 1", got)
	}

	tight := NewDetectorWithConfig(Config{
		RowTolerance:       5,
		ColumnTolerance:    4,
		MinRows:            3,
		MinCols:            3,
		MinWidth:           200,
		MinHeight:          50,
		AlignmentRatio:     0.8,
		MaxRowHeightRatio:  1.5,
		MaxColumnDeviation: 1,
	})
	if got := len(tight.Detect(items, 1)); got != 0 {
		t.Errorf("tolerance 4: %d tables, want 0", got)
	}
}

func TestDetector_EmptyPage(t *testing.T) {
	tables := NewDetector().Detect(nil, 1)
	if tables != nil {
		t.Errorf("Detect() on empty page = %v, want nil", tables)
	}
}

func TestDetector_CommittedTableCounted(t *testing.T) {
	recorder := diag.NewRecorder()
	NewDetector().WithRecorder(recorder).Detect(threeByThree(), 1)

	report := recorder.Report()
	if report.TablesCommitted != 1 {
		t.Errorf("TablesCommitted = %d, want 1", report.TablesCommitted)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.RowTolerance != 5.0 {
		t.Errorf("RowTolerance = %v, want 5.0", config.RowTolerance)
	}
	if config.ColumnTolerance != 10.0 {
		t.Errorf("ColumnTolerance = %v, want 10.0", config.ColumnTolerance)
	}
	if config.MinRows != 3 || config.MinCols != 3 {
		t.Errorf("MinRows/MinCols = %d/%d, want 3/3", config.MinRows, config.MinCols)
	}
	if config.MinWidth != 200 || config.MinHeight != 50 {
		t.Errorf("MinWidth/MinHeight = %v/%v, want 200/50", config.MinWidth, config.MinHeight)
	}
}
