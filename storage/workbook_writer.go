package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"campaign-cleaner/models"
	"campaign-cleaner/utils"

	"github.com/xuri/excelize/v2"
)

// WorkbookWriter writes the three datasets as sheets of one .xlsx file
type WorkbookWriter struct {
	path   string
	logger *utils.Logger
}

// NewWorkbookWriter creates a new WorkbookWriter
func NewWorkbookWriter(path string, logger *utils.Logger) *WorkbookWriter {
	return &WorkbookWriter{path: path, logger: logger}
}

// Save builds the workbook in memory and writes it over any existing file
func (w *WorkbookWriter) Save(ds *models.Datasets) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, t := range tables(ds) {
		if i == 0 {
			// a new workbook starts with Sheet1
			if err := f.SetSheetName(f.GetSheetName(0), t.name); err != nil {
				return fmt.Errorf("failed to rename first sheet: %w", err)
			}
		} else if _, err := f.NewSheet(t.name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", t.name, err)
		}

		if err := writeSheet(f, t, bold); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("failed to create workbook directory: %w", err)
	}
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}

	w.logger.Info("Wrote workbook %s (%d sheets)", w.path, len(f.GetSheetList()))
	return nil
}

func writeSheet(f *excelize.File, t datasetTable, headerStyle int) error {
	header := make([]any, len(t.header))
	for i, h := range t.header {
		header[i] = h
	}
	if err := f.SetSheetRow(t.name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", t.name, err)
	}
	if err := f.SetRowStyle(t.name, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", t.name, err)
	}

	for i, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.name, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", t.name, i+1, err)
		}
	}

	return f.SetPanes(t.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// Close is a no-op; the workbook is released at the end of Save
func (w *WorkbookWriter) Close() error {
	return nil
}
