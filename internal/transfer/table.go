// Package transfer reads item and container lists from CSV or Excel files and
// writes the current arrangement back out.
package transfer

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/xuri/excelize/v2"
)

// Format is a tabular file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromFilename picks the format from a file extension.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt", "":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", cargoerr.Invalid("transfer.format", "unsupported file type %q, expected .csv or .xlsx", filepath.Ext(name))
	}
}

// ParseFormat parses a format name such as a query parameter.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return "", cargoerr.Invalid("transfer.format", "unsupported format %q", s)
	}
}

// ContentType returns the MIME type of files in this format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// readRows returns every row of the first sheet or of the CSV document.
func readRows(r io.Reader, format Format) ([][]string, error) {
	switch format {
	case FormatXLSX:
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, cargoerr.Wrap(cargoerr.KindInvalidRequest, "transfer.read", err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, cargoerr.Invalid("transfer.read", "workbook has no sheets")
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, cargoerr.Wrap(cargoerr.KindInvalidRequest, "transfer.read", err)
		}
		return rows, nil
	default:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, cargoerr.Internal("transfer.read", err)
		}
		data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
		reader := csv.NewReader(bytes.NewReader(data))
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, cargoerr.Wrap(cargoerr.KindInvalidRequest, "transfer.read", err)
		}
		return rows, nil
	}
}

// normalizeHeader lowercases a header cell and drops separators and a
// trailing unit such as "(cm)".
func normalizeHeader(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	if i := strings.Index(cell, "("); i > 0 {
		cell = cell[:i]
	}
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(cell)
}

// columns maps canonical column names to indices using the aliases given.
// Missing required columns are reported together.
func columns(header []string, aliases map[string][]string, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(aliases))
	for i, cell := range header {
		n := normalizeHeader(cell)
		for name, names := range aliases {
			if _, seen := idx[name]; seen {
				continue
			}
			for _, a := range names {
				if n == a {
					idx[name] = i
					break
				}
			}
		}
	}
	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, cargoerr.Invalid("transfer.header", "required columns not found in header: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// rowValues keys the raw row by header cell, for error reports.
func rowValues(header, row []string) map[string]string {
	out := make(map[string]string, len(header))
	for i, h := range header {
		if i < len(row) {
			out[strings.TrimSpace(h)] = row[i]
		} else {
			out[strings.TrimSpace(h)] = ""
		}
	}
	return out
}

var errEmpty error = cargoerr.Invalid("transfer.read", "file is empty")
