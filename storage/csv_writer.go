package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"campaign-cleaner/models"
	"campaign-cleaner/utils"
)

// CSVWriter writes client.csv, campaign.csv and economics.csv into one directory
type CSVWriter struct {
	dir    string
	logger *utils.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(dir string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{dir: dir, logger: logger}
}

// Paths returns the output file paths in dataset order
func (w *CSVWriter) Paths() []string {
	return []string{
		filepath.Join(w.dir, ClientDataset+".csv"),
		filepath.Join(w.dir, CampaignDataset+".csv"),
		filepath.Join(w.dir, EconomicsDataset+".csv"),
	}
}

// Save writes all three files. Each is staged in a temporary file next to its
// destination and renamed into place only after all three were written, so a
// failure leaves the previous outputs untouched.
func (w *CSVWriter) Save(ds *models.Datasets) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	type staged struct {
		tmp, final string
		rows       int
	}
	var done []staged
	cleanup := func() {
		for _, s := range done {
			_ = os.Remove(s.tmp)
		}
	}

	for _, t := range tables(ds) {
		final := filepath.Join(w.dir, t.name+".csv")
		tmp, err := w.stage(t)
		if err != nil {
			cleanup()
			return fmt.Errorf("failed to write %s: %w", final, err)
		}
		done = append(done, staged{tmp: tmp, final: final, rows: len(t.rows)})
	}

	for i, s := range done {
		if err := os.Rename(s.tmp, s.final); err != nil {
			cleanup()
			return fmt.Errorf("failed to move %s into place (%d of %d files published): %w",
				s.final, i, len(done), err)
		}
		w.logger.Info("Wrote %s (%d rows)", s.final, s.rows)
	}
	return nil
}

// stage writes one dataset to a temporary file and returns its path
func (w *CSVWriter) stage(t datasetTable) (path string, err error) {
	file, err := os.CreateTemp(w.dir, "."+t.name+"-*.csv.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path = file.Name()
	defer func() {
		if err != nil {
			file.Close()
			_ = os.Remove(path)
		}
	}()

	writer := csv.NewWriter(file)
	if err = writer.Write(t.header); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(t.header))
	for i, row := range t.rows {
		for j, cell := range row {
			record[j] = formatCell(cell)
		}
		if err = writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err = writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	if err = file.Chmod(0644); err != nil {
		return "", fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = file.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return path, nil
}

// Close is a no-op; files are closed as soon as they are written
func (w *CSVWriter) Close() error {
	return nil
}
