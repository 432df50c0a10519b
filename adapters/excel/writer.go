package excel

import (
	"io"
	"time"

	"boxplot/domain/boxplot"
	"boxplot/internal/errors"

	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary  = "Summary"
	SheetOutliers = "Outliers"
	SheetRawData  = "Raw Data"
)

// WriteWorkbook writes an XLSX workbook with the summary, the outliers and the
// raw data on separate sheets.
func WriteWorkbook(w io.Writer, data []float64, s boxplot.Summary, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return errors.Wrap(err, "failed to name summary sheet")
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}

	summaryRows := [][]interface{}{
		{"Box Plot Data Export"},
		{"Generated", generatedAt.UTC().Format(time.RFC3339)},
		{"Data Points", len(data)},
		nil,
		{"Statistic", "Value"},
		{"Minimum", s.Minimum},
		{"Q1 (25th percentile)", s.FirstQuartile},
		{"Median (Q2)", s.Median},
		{"Q3 (75th percentile)", s.ThirdQuartile},
		{"Maximum", s.Maximum},
		{"IQR", s.InterquartileRange},
		{"Lower Fence", s.LowerFence},
		{"Upper Fence", s.UpperFence},
		{"Whisker Minimum", s.WhiskerMinimum},
		{"Whisker Maximum", s.WhiskerMaximum},
		{"Outliers Count", len(s.Outliers)},
	}
	if err := writeRows(f, SheetSummary, summaryRows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "A1", bold); err != nil {
		return errors.Wrap(err, "failed to style summary title")
	}
	if err := f.SetCellStyle(SheetSummary, "A5", "B5", bold); err != nil {
		return errors.Wrap(err, "failed to style summary header")
	}
	if err := f.SetColWidth(SheetSummary, "A", "A", 24); err != nil {
		return errors.Wrap(err, "failed to size summary column")
	}

	for _, sheet := range []struct {
		name   string
		values []float64
	}{
		{SheetOutliers, s.Outliers},
		{SheetRawData, data},
	} {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return errors.Wrapf(err, "failed to create sheet %s", sheet.name)
		}
		rows := make([][]interface{}, 0, len(sheet.values)+1)
		rows = append(rows, []interface{}{"Value"})
		for _, v := range sheet.values {
			rows = append(rows, []interface{}{v})
		}
		if err := writeRows(f, sheet.name, rows); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.name, "A1", "A1", bold); err != nil {
			return errors.Wrapf(err, "failed to style sheet %s", sheet.name)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "failed to address cell")
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "failed to write row %d of %s", i+1, sheet)
		}
	}
	return nil
}
