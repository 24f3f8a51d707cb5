package services

import (
	"strconv"
	"strings"
	"testing"

	"campaign-cleaner/models"
	"campaign-cleaner/testutil"
	"campaign-cleaner/utils"

	"github.com/stretchr/testify/require"
)

func testLogger() *utils.Logger {
	return utils.NewLoggerTo(&strings.Builder{}, "error")
}

// sourceRow returns a row in testutil.Header order with the given job,
// education, flags and date fields; the remaining fields are fixed
func sourceRow(job, education, creditDefault, mortgage, prevOutcome, outcome, day, month string) []string {
	return []string{
		"41", job, "married", education, creditDefault, mortgage,
		"2", "120", "1", prevOutcome, outcome, day, month,
		"92.893", "1.299",
	}
}

// newTable builds a unified table with client_id first, numbering rows from 1
func newTable(rows ...[]string) *models.Table {
	table := &models.Table{
		Header:   append([]string{models.ColClientID}, testutil.Header...),
		Archives: 1,
		Entries:  1,
	}
	for i, r := range rows {
		table.Rows = append(table.Rows, append([]string{strconv.Itoa(i + 1)}, r...))
		table.Sources = append(table.Sources, "a.zip/part.csv")
	}
	return table
}

func parseRecords(t *testing.T, rows ...[]string) []*models.Record {
	t.Helper()
	records, err := NewRecordParser(testLogger()).Parse(newTable(rows...))
	require.NoError(t, err)
	return records
}
