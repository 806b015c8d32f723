package transfer

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/xuri/excelize/v2"
)

// ArrangementHeader is the header row of an arrangement export.
var ArrangementHeader = []string{"Item ID", "Container ID", "Coordinates (W1,D1,H1)", "(W2,D2,H2)"}

const arrangementSheet = "Arrangement"

// ArrangementRows renders placements as export rows ordered by container, then item.
func ArrangementRows(placements []model.Placement) [][]string {
	sorted := append([]model.Placement(nil), placements...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ContainerID != sorted[j].ContainerID {
			return sorted[i].ContainerID < sorted[j].ContainerID
		}
		return sorted[i].ItemID < sorted[j].ItemID
	})
	rows := make([][]string, 0, len(sorted))
	for _, p := range sorted {
		rows = append(rows, []string{p.ItemID, p.ContainerID, p.Position.Start.String(), p.Position.End.String()})
	}
	return rows
}

// WriteArrangement writes the arrangement in the requested format.
func WriteArrangement(w io.Writer, format Format, placements []model.Placement) error {
	if format == FormatXLSX {
		return writeArrangementXLSX(w, placements)
	}
	return writeArrangementCSV(w, placements)
}

func writeArrangementCSV(w io.Writer, placements []model.Placement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ArrangementHeader); err != nil {
		return cargoerr.Internal("transfer.export", err)
	}
	if err := cw.WriteAll(ArrangementRows(placements)); err != nil {
		return cargoerr.Internal("transfer.export", err)
	}
	return nil
}

func writeArrangementXLSX(w io.Writer, placements []model.Placement) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), arrangementSheet); err != nil {
		return cargoerr.Internal("transfer.export", err)
	}
	rows := append([][]string{ArrangementHeader}, ArrangementRows(placements)...)
	for i, row := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return cargoerr.Internal("transfer.export", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(arrangementSheet, ref, &values); err != nil {
			return cargoerr.Internal("transfer.export", err)
		}
	}
	if err := f.Write(w); err != nil {
		return cargoerr.Internal("transfer.export", err)
	}
	return nil
}
