package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"campaign-cleaner/config"
	"campaign-cleaner/models"
	"campaign-cleaner/utils"

	"github.com/klauspost/compress/zip"
)

const utf8BOM = "\ufeff"

// sourceTable is one CSV entry read from an archive
type sourceTable struct {
	source string // archive.zip/entry.csv
	header []string
	rows   [][]string
}

// ArchiveLoader reads every CSV entry of every archive in the input directory
// into one unified table
type ArchiveLoader struct {
	inputDir   string
	archiveExt string
	tableExt   string
	logger     *utils.Logger
}

// NewArchiveLoader creates a new ArchiveLoader
func NewArchiveLoader(cfg *config.Config, logger *utils.Logger) *ArchiveLoader {
	return &ArchiveLoader{
		inputDir:   cfg.InputDir,
		archiveExt: strings.ToLower(cfg.ArchiveExt),
		tableExt:   strings.ToLower(cfg.TableExt),
		logger:     logger,
	}
}

// Discover lists the archives of the input directory in name order
func (l *ArchiveLoader) Discover() ([]string, error) {
	entries, err := os.ReadDir(l.inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", l.inputDir, err)
	}

	var archives []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), l.archiveExt) {
			archives = append(archives, filepath.Join(l.inputDir, entry.Name()))
		}
	}
	// os.ReadDir already sorts by name; keep the guarantee explicit
	sort.Strings(archives)

	if len(archives) == 0 {
		return nil, fmt.Errorf("%s (pattern *%s): %w", l.inputDir, l.archiveExt, models.ErrNoArchives)
	}
	return archives, nil
}

// Load reads all archives and concatenates their tables in order. When the
// source has no client_id column one is synthesized as 1..N over all rows.
func (l *ArchiveLoader) Load() (*models.Table, error) {
	archives, err := l.Discover()
	if err != nil {
		return nil, err
	}
	l.logger.Info("Found %d archive(s) in %s", len(archives), l.inputDir)

	var tables []*sourceTable
	for _, path := range archives {
		found, err := l.readArchive(path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, found...)
	}

	table, err := concat(tables)
	if err != nil {
		return nil, err
	}
	table.Archives = len(archives)

	if table.ColumnIndex(models.ColClientID) == -1 {
		synthesizeIDs(table)
		l.logger.Info("No %s column in source; assigned ids 1..%d", models.ColClientID, len(table.Rows))
	}

	l.logger.Info("Unified table: %d rows from %d entries in %d archives",
		len(table.Rows), table.Entries, table.Archives)
	return table, nil
}

// readArchive parses every tabular entry of one archive, in archive order
func (l *ArchiveLoader) readArchive(path string) ([]*sourceTable, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, models.ErrCorruptArchive, err)
	}
	defer rc.Close()

	name := filepath.Base(path)
	var tables []*sourceTable
	for _, f := range rc.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(f.Name), l.tableExt) {
			continue
		}

		source := name + "/" + f.Name
		t, err := readEntry(f, source)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("  %s: %d rows, %d columns", source, len(t.rows), len(t.header))
		tables = append(tables, t)
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("%s (pattern *%s): %w", path, l.tableExt, models.ErrNoTables)
	}
	l.logger.Info("Archive %s: %d table(s)", name, len(tables))
	return tables, nil
}

func readEntry(f *zip.File, source string) (*sourceTable, error) {
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", source, models.ErrCorruptArchive, err)
	}
	defer r.Close()

	return readTable(r, source)
}

// readTable parses comma-separated data with a header row
func readTable(r io.Reader, source string) (*sourceTable, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: empty table without header: %w", source, models.ErrNoTables)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read header: %w", source, wrapReadErr(err))
	}

	seen := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		if seen[h] {
			return nil, fmt.Errorf("%s: duplicate column %q: %w", source, h, models.ErrSchemaMismatch)
		}
		seen[h] = true
		header[i] = h
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, wrapReadErr(err))
	}
	return &sourceTable{source: source, header: header, rows: rows}, nil
}

// wrapReadErr tags decompression failures as corrupt archives; CSV syntax
// errors pass through unchanged
func wrapReadErr(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return err
	}
	return fmt.Errorf("%w: %v", models.ErrCorruptArchive, err)
}

// concat appends all tables under the first table's column order. Every table
// must carry exactly the same set of columns.
func concat(tables []*sourceTable) (*models.Table, error) {
	if len(tables) == 0 {
		return nil, models.ErrNoTables
	}

	first := tables[0]
	out := &models.Table{
		Header:  append([]string(nil), first.header...),
		Entries: len(tables),
	}

	for _, t := range tables {
		perm, err := columnOrder(first.header, t.header)
		if err != nil {
			return nil, fmt.Errorf("%s vs %s: %w", t.source, first.source, err)
		}
		for _, row := range t.rows {
			out.Rows = append(out.Rows, reorder(row, perm))
			out.Sources = append(out.Sources, t.source)
		}
	}
	return out, nil
}

// columnOrder returns, for each column of want, its index in got
func columnOrder(want, got []string) ([]int, error) {
	index := make(map[string]int, len(got))
	for i, h := range got {
		index[h] = i
	}

	var missing, extra []string
	perm := make([]int, len(want))
	for i, h := range want {
		j, ok := index[h]
		if !ok {
			missing = append(missing, h)
			continue
		}
		perm[i] = j
		delete(index, h)
	}
	for h := range index {
		extra = append(extra, h)
	}

	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(extra)
		return nil, fmt.Errorf("%w: missing %v, unexpected %v", models.ErrSchemaMismatch, missing, extra)
	}
	return perm, nil
}

func reorder(row []string, perm []int) []string {
	out := make([]string, len(perm))
	for i, j := range perm {
		out[i] = row[j]
	}
	return out
}

// synthesizeIDs prepends a client_id column numbered 1..N across the whole table
func synthesizeIDs(t *models.Table) {
	t.Header = append([]string{models.ColClientID}, t.Header...)
	for i, row := range t.Rows {
		t.Rows[i] = append([]string{strconv.Itoa(i + 1)}, row...)
	}
	t.SynthesizedIDs = true
}
