package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestRender(t *testing.T) {
	buf, err := Render(Sheet{
		Name:    "Tasks Report",
		Columns: []Column{{Header: "Title", Width: 30}, {Header: "Count", Width: 10}},
		Rows: [][]any{
			{"Write docs", 3},
			{"Ship", 0},
		},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	if got := f.GetSheetName(0); got != "Tasks Report" {
		t.Errorf("sheet name = %q, want Tasks Report", got)
	}
	rows, err := f.GetRows("Tasks Report")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	if rows[0][0] != "Title" || rows[0][1] != "Count" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Write docs" || rows[1][1] != "3" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][1] != "0" {
		t.Errorf("row 2 = %v", rows[2])
	}
}

func TestRenderRejectsEmptySheet(t *testing.T) {
	if _, err := Render(Sheet{Name: "x"}); err == nil {
		t.Error("Render() without columns should fail")
	}
	if _, err := Render(Sheet{Columns: []Column{{Header: "a"}}}); err == nil {
		t.Error("Render() without a name should fail")
	}
}
