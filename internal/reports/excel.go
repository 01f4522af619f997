package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"agrorisk-copilot/loan-portal-backend/internal/analytics"
	"agrorisk-copilot/loan-portal-backend/internal/risktypes"
)

var trafficLightFills = map[string]string{
	"green":  "C8E6C9",
	"yellow": "FFF9C4",
	"red":    "FFCDD2",
}

// BatchWorkbook exports per-district batch scores to an XLSX workbook with a
// summary sheet.
type BatchWorkbook struct {
	sheetName string
}

// NewBatchWorkbook creates an exporter using the portal's default sheet name.
func NewBatchWorkbook() *BatchWorkbook {
	return &BatchWorkbook{sheetName: "District Scores"}
}

// Write renders the workbook for one region/crop/month batch.
func (e *BatchWorkbook) Write(w io.Writer, region, crop string, month int, scores []risktypes.DistrictScore, summary analytics.Summary) error {
	file := excelize.NewFile()
	defer file.Close()

	file.SetSheetName("Sheet1", e.sheetName)

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	columns := []string{"District", "Latitude", "Longitude", "Risk Score", "Category", "Traffic Light"}
	for i, label := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(e.sheetName, cell, label); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := file.SetCellStyle(e.sheetName, "A1", lastCol, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, score := range scores {
		row := i + 2
		values := []interface{}{
			score.District,
			score.Latitude,
			score.Longitude,
			score.Score,
			score.Category,
			score.TrafficLight,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := file.SetCellValue(e.sheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
		if fill, ok := trafficLightFills[score.TrafficLight]; ok {
			styleID, err := file.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
			})
			if err == nil {
				cell, _ := excelize.CoordinatesToCellName(len(columns), row)
				file.SetCellStyle(e.sheetName, cell, cell, styleID)
			}
		}
	}

	file.SetColWidth(e.sheetName, "A", "A", 24)
	file.SetColWidth(e.sheetName, "B", "F", 14)
	file.SetPanes(e.sheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	})
	if len(scores) > 0 {
		endCell, _ := excelize.CoordinatesToCellName(len(columns), len(scores)+1)
		file.AutoFilter(e.sheetName, "A1:"+endCell, nil)
	}

	if err := e.writeSummarySheet(file, region, crop, month, summary); err != nil {
		return err
	}

	return file.Write(w)
}

func (e *BatchWorkbook) writeSummarySheet(file *excelize.File, region, crop string, month int, summary analytics.Summary) error {
	const sheet = "Summary"
	if _, err := file.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Region", region},
		{"Crop", crop},
		{"Month", month},
		{"Districts scored", summary.Count},
		{"Mean score", summary.Mean},
		{"Median score", summary.Median},
		{"Std deviation", summary.StdDev},
		{"Minimum", summary.Min},
		{"Maximum", summary.Max},
	}

	for i, row := range rows {
		keyCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := file.SetCellValue(sheet, keyCell, row[0]); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		if err := file.SetCellValue(sheet, valCell, row[1]); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	file.SetColWidth(sheet, "A", "A", 20)
	file.SetColWidth(sheet, "B", "B", 16)
	return nil
}
