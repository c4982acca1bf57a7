// Package dataload reads chart records from JSON and XLSX files.
//
// JSON records are returned as json.RawMessage so accessors resolve keys as
// gjson paths. Spreadsheet rows become map[string]any keyed by the header
// row, with numeric cells converted to float64.
package dataload

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
)

// ErrNoRecords is returned when a source parses but holds no records.
var ErrNoRecords = errors.New("dataload: no records")

// File loads records from path, choosing the format by extension. where is
// a gjson path for JSON files and a sheet name for spreadsheets; empty means
// the document root or the first sheet.
func File(path, where string) ([]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return JSON(data, where)
	case ".xlsx", ".xlsm":
		return XLSX(path, where)
	}
	return nil, fmt.Errorf("dataload: unsupported file type %q", filepath.Ext(path))
}

// JSON returns the elements of the array at path in data.
func JSON(data []byte, path string) ([]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("dataload: invalid JSON")
	}
	arr := gjson.ParseBytes(data)
	if path != "" {
		arr = arr.Get(path)
	}
	if !arr.IsArray() {
		return nil, fmt.Errorf("dataload: %q is not an array", path)
	}
	var out []any
	arr.ForEach(func(_, v gjson.Result) bool {
		out = append(out, json.RawMessage(v.Raw))
		return true
	})
	if len(out) == 0 {
		return nil, ErrNoRecords
	}
	return out, nil
}

// XLSX reads sheet (or the first sheet) of the workbook at path. The first
// non-empty row is the header. Rows with no values are skipped.
func XLSX(path, sheet string) ([]any, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoRecords
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rowsToRecords(rows)
}

func rowsToRecords(rows [][]string) ([]any, error) {
	var header []string
	var out []any
	for _, row := range rows {
		if blank(row) {
			continue
		}
		if header == nil {
			header = make([]string, len(row))
			for i, h := range row {
				header[i] = strings.TrimSpace(h)
			}
			continue
		}
		rec := make(map[string]any, len(header))
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			rec[header[i]] = cellValue(cell)
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, ErrNoRecords
	}
	return out, nil
}

func cellValue(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
