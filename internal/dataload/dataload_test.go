package dataload

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func TestJSON(t *testing.T) {
	data := []byte(`{"series": {"points": [{"x": 1, "y": 2}, {"x": 3, "y": 4}]}}`)
	recs, err := JSON(data, "series.points")
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	want := []any{json.RawMessage(`{"x": 1, "y": 2}`), json.RawMessage(`{"x": 3, "y": 4}`)}
	if diff := cmp.Diff(want, recs); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONRootArray(t *testing.T) {
	recs, err := JSON([]byte(`[{"a": 1}]`), "")
	if err != nil || len(recs) != 1 {
		t.Fatalf("JSON = %v, %v", recs, err)
	}
}

func TestJSONErrors(t *testing.T) {
	tests := []struct {
		name, data, path string
		want             error
	}{
		{"invalid", `{`, "", nil},
		{"not array", `{"a": 1}`, "a", nil},
		{"missing path", `{"a": 1}`, "b", nil},
		{"empty", `[]`, "", ErrNoRecords},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := JSON([]byte(tt.data), tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "data.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestXLSX(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"month", "sales", ""},
		{"jan", 10, "ignored"},
		{},
		{"feb", 12.5},
	})

	recs, err := File(path, "")
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	want := []any{
		map[string]any{"month": "jan", "sales": 10.0},
		map[string]any{"month": "feb", "sales": 12.5},
	}
	if diff := cmp.Diff(want, recs); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestXLSXHeaderOnly(t *testing.T) {
	path := writeWorkbook(t, [][]any{{"x", "y"}})
	if _, err := XLSX(path, ""); !errors.Is(err, ErrNoRecords) {
		t.Errorf("err = %v, want ErrNoRecords", err)
	}
}

func TestXLSXMissingSheet(t *testing.T) {
	path := writeWorkbook(t, [][]any{{"x"}, {1}})
	if _, err := XLSX(path, "Nope"); err == nil {
		t.Error("expected error for missing sheet")
	}
}

func TestFileJSONAndUnsupported(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "d.json")
	if err := os.WriteFile(jsonPath, []byte(`[{"x": 1}, {"x": 2}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	recs, err := File(jsonPath, "")
	if err != nil || len(recs) != 2 {
		t.Errorf("File(json) = %d records, %v", len(recs), err)
	}

	if _, err := File(filepath.Join(dir, "d.csv"), ""); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestCellValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", nil},
		{"  ", nil},
		{"3", 3.0},
		{" -1.5 ", -1.5},
		{"q1", "q1"},
	}
	for _, tt := range tests {
		if got := cellValue(tt.in); got != tt.want {
			t.Errorf("cellValue(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
