package repository

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dmjdxb/Rehab/internal/domain/model"
)

const exportSheet = "Sessions"

// WriteSessionsXLSX renders session records as a spreadsheet for
// clinician hand-off. Column layout mirrors the session log.
func WriteSessionsXLSX(w io.Writer, sessions []model.SessionRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), exportSheet)

	for i, name := range sessionHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(sessionHeader), 1)
		_ = f.SetCellStyle(exportSheet, "A1", last, headerStyle)
	}

	for i, rec := range sessions {
		row := exportRow(rec)
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// exportRow mirrors sessionRow but keeps numbers as numbers so the
// spreadsheet stays sortable.
func exportRow(rec model.SessionRecord) []any {
	var days, swelling any
	if rec.Metrics.DaysSinceSurgery != nil {
		days = *rec.Metrics.DaysSinceSurgery
	}
	if rec.Metrics.SwellingGrade != nil {
		swelling = *rec.Metrics.SwellingGrade
	}
	var rom any
	if rec.Metrics.RangeOfMotion != nil {
		rom = *rec.Metrics.RangeOfMotion
	}
	return []any{
		rec.Timestamp.UTC().Format(time.RFC3339),
		rec.ID,
		rec.PatientID,
		string(rec.Injury),
		rec.Metrics.PeakForce,
		rec.Metrics.LeftLimb,
		rec.Metrics.RightLimb,
		rec.Metrics.LSI,
		rec.Metrics.RFD,
		rec.Metrics.PainScore,
		days,
		rom,
		swelling,
		string(rec.Phase),
		serializeAlerts(rec.Alerts),
		rec.Notes,
	}
}
