package services

import (
	"fmt"
	"io"
	"time"

	"softmatrices_site_go/models"

	"github.com/xuri/excelize/v2"
)

// RelayEventSheet is the worksheet name used by ExportRelayEventsXLSX
const RelayEventSheet = "Relay Events"

var relayEventHeaders = []interface{}{
	"ID", "Created At (UTC)", "Outcome", "Status", "Upstream Status", "Duration (ms)", "Client IP Hash", "User Agent", "Fields",
}

// ExportRelayEventsXLSX writes events as a single-sheet workbook with a header row
func ExportRelayEventsXLSX(events []models.RelayEvent, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RelayEventSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(RelayEventSheet, "A1", &relayEventHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, e := range events {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			e.ID,
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.Outcome,
			e.StatusCode,
			e.UpstreamStatus,
			e.DurationMs,
			e.IPHash,
			e.UserAgent,
			e.Fields,
		}
		if err := f.SetSheetRow(RelayEventSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(RelayEventSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
