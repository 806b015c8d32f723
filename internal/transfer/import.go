package transfer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/geometry"
)

// RowError reports one rejected row. Row is the 1-based record number,
// counting the header as row 1.
type RowError struct {
	Row     int               `json:"row"`
	Values  map[string]string `json:"values,omitempty"`
	Message string            `json:"message"`
}

// ItemRecord is an item parsed from a row.
type ItemRecord struct {
	Row  int
	Item model.Item
}

// ContainerRecord is a container parsed from a row.
type ContainerRecord struct {
	Row       int
	Container model.Container
}

var itemAliases = map[string][]string{
	"itemId":        {"itemid", "id"},
	"name":          {"name", "itemname"},
	"width":         {"width", "w"},
	"depth":         {"depth", "d"},
	"height":        {"height", "h"},
	"mass":          {"mass", "weight"},
	"priority":      {"priority"},
	"expiryDate":    {"expirydate", "expiry"},
	"usageLimit":    {"usagelimit", "uses"},
	"preferredZone": {"preferredzone", "zone"},
}

var itemRequired = []string{"itemId", "name", "width", "depth", "height", "mass", "priority", "usageLimit", "preferredZone"}

var containerAliases = map[string][]string{
	"containerId": {"containerid", "id"},
	"zone":        {"zone"},
	"width":       {"width", "w"},
	"depth":       {"depth", "d"},
	"height":      {"height", "h"},
}

var containerRequired = []string{"containerId", "zone", "width", "depth", "height"}

// ReadItems parses an item list. A malformed file fails as a whole; a
// malformed row yields a RowError and parsing continues.
func ReadItems(r io.Reader, format Format) ([]ItemRecord, []RowError, error) {
	rows, err := readRows(r, format)
	if err != nil {
		return nil, nil, err
	}
	header, data, err := splitHeader(rows)
	if err != nil {
		return nil, nil, err
	}
	idx, err := columns(header, itemAliases, itemRequired)
	if err != nil {
		return nil, nil, err
	}

	records := make([]ItemRecord, 0, len(data))
	rowErrors := make([]RowError, 0)
	for i, row := range data {
		line := i + 2
		if isEmptyRow(row) {
			continue
		}
		it, err := parseItem(row, idx)
		if err == nil {
			err = it.Validate()
		}
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: line, Values: rowValues(header, row), Message: err.Error()})
			continue
		}
		records = append(records, ItemRecord{Row: line, Item: it})
	}
	return records, rowErrors, nil
}

// ReadContainers parses a container list.
func ReadContainers(r io.Reader, format Format) ([]ContainerRecord, []RowError, error) {
	rows, err := readRows(r, format)
	if err != nil {
		return nil, nil, err
	}
	header, data, err := splitHeader(rows)
	if err != nil {
		return nil, nil, err
	}
	idx, err := columns(header, containerAliases, containerRequired)
	if err != nil {
		return nil, nil, err
	}

	records := make([]ContainerRecord, 0, len(data))
	rowErrors := make([]RowError, 0)
	for i, row := range data {
		line := i + 2
		if isEmptyRow(row) {
			continue
		}
		c, err := parseContainer(row, idx)
		if err == nil {
			err = c.Validate()
		}
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: line, Values: rowValues(header, row), Message: err.Error()})
			continue
		}
		records = append(records, ContainerRecord{Row: line, Container: c})
	}
	return records, rowErrors, nil
}

func splitHeader(rows [][]string) ([]string, [][]string, error) {
	for len(rows) > 0 && isEmptyRow(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, nil, errEmpty
	}
	return rows[0], rows[1:], nil
}

func parseItem(row []string, idx map[string]int) (model.Item, error) {
	var (
		it  model.Item
		err error
	)
	it.ItemID = cell(row, idx, "itemId")
	it.Name = cell(row, idx, "name")
	it.PreferredZone = cell(row, idx, "preferredZone")
	if it.Dims, err = parseDims(row, idx); err != nil {
		return it, err
	}
	if it.Mass, err = parseFloat(row, idx, "mass"); err != nil {
		return it, err
	}
	if it.Priority, err = parseInt(row, idx, "priority"); err != nil {
		return it, err
	}
	if it.UsageLimit, err = parseInt(row, idx, "usageLimit"); err != nil {
		return it, err
	}
	if raw := cell(row, idx, "expiryDate"); raw != "" && !strings.EqualFold(raw, "n/a") {
		d, err := model.ParseDate(raw)
		if err != nil {
			return it, fmt.Errorf("invalid expiryDate %q, expected YYYY-MM-DD", raw)
		}
		it.ExpiryDate = &d
	}
	return it, nil
}

func parseContainer(row []string, idx map[string]int) (model.Container, error) {
	c := model.Container{
		ContainerID: cell(row, idx, "containerId"),
		Zone:        cell(row, idx, "zone"),
	}
	var err error
	c.Dims, err = parseDims(row, idx)
	return c, err
}

func parseDims(row []string, idx map[string]int) (geometry.Dims, error) {
	var (
		d   geometry.Dims
		err error
	)
	if d.Width, err = parseInt(row, idx, "width"); err != nil {
		return d, err
	}
	if d.Depth, err = parseInt(row, idx, "depth"); err != nil {
		return d, err
	}
	if d.Height, err = parseInt(row, idx, "height"); err != nil {
		return d, err
	}
	return d, nil
}

func parseInt(row []string, idx map[string]int, name string) (int, error) {
	raw := cell(row, idx, name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s value", name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// spreadsheets often store whole numbers as "12.0"
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("invalid %s %q", name, raw)
		}
		n = int(f)
	}
	return n, nil
}

func parseFloat(row []string, idx map[string]int, name string) (float64, error) {
	raw := cell(row, idx, name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s value", name)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return f, nil
}
