package services

import (
	"errors"
	"testing"

	"campaign-cleaner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TypedRecord(t *testing.T) {
	records := parseRecords(t,
		sourceRow("blue-collar.", "unknown", "yes", "No", "Success", "no", "5", "Mar"),
	)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, 1, r.Row)
	assert.Equal(t, "a.zip/part.csv", r.Source)
	assert.Equal(t, 1, r.ClientID)
	assert.Equal(t, 41, r.Age)
	assert.Equal(t, "blue-collar.", r.Job)
	assert.Equal(t, "unknown", r.Education)
	assert.Equal(t, 2, r.NumberContacts)
	assert.Equal(t, 120, r.ContactDuration)
	assert.Equal(t, 1, r.PreviousCampaignContacts)
	assert.Equal(t, 5, r.Day)
	assert.Equal(t, "Mar", r.Month)
	assert.InDelta(t, 92.893, r.ConsPriceIdx, 1e-9)
	assert.InDelta(t, 1.299, r.EuriborThreeMonths, 1e-9)
}

func TestParse_IntegralFloats(t *testing.T) {
	row := sourceRow("admin.", "basic.4y", "no", "no", "failure", "yes", "5.0", "may")
	row[0] = "56.0"

	records := parseRecords(t, row)
	require.Len(t, records, 1)
	assert.Equal(t, 56, records[0].Age)
	assert.Equal(t, 5, records[0].Day)
}

func TestParse_DataErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(row []string)
		column string
		err    error
	}{
		{"day out of range", func(r []string) { r[11] = "32" }, models.ColDay, models.ErrInvalidDay},
		{"day zero", func(r []string) { r[11] = "0" }, models.ColDay, models.ErrInvalidDay},
		{"day not numeric", func(r []string) { r[11] = "fifth" }, models.ColDay, models.ErrInvalidDay},
		{"unknown month", func(r []string) { r[12] = "Mrz" }, models.ColMonth, models.ErrUnknownMonth},
		{"age not numeric", func(r []string) { r[0] = "forty" }, models.ColAge, models.ErrInvalidValue},
		{"bad float", func(r []string) { r[13] = "n/a" }, models.ColConsPriceIdx, models.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := sourceRow("admin.", "basic.4y", "no", "no", "failure", "yes", "5", "may")
			bad := sourceRow("admin.", "basic.4y", "no", "no", "failure", "yes", "5", "may")
			tt.mutate(bad)

			records, err := NewRecordParser(testLogger()).Parse(newTable(good, bad))
			require.Error(t, err)
			assert.Nil(t, records)
			assert.ErrorIs(t, err, tt.err)

			var dataErr *models.DataError
			require.True(t, errors.As(err, &dataErr))
			assert.Equal(t, 2, dataErr.Row)
			assert.Equal(t, tt.column, dataErr.Column)
			assert.Equal(t, "a.zip/part.csv", dataErr.Source)
		})
	}
}

func TestParse_MissingColumn(t *testing.T) {
	table := newTable(sourceRow("admin.", "basic.4y", "no", "no", "failure", "yes", "5", "may"))
	// drop "month"
	idx := table.ColumnIndex(models.ColMonth)
	table.Header = append(table.Header[:idx:idx], table.Header[idx+1:]...)
	table.Rows[0] = append(table.Rows[0][:idx:idx], table.Rows[0][idx+1:]...)

	_, err := NewRecordParser(testLogger()).Parse(table)
	require.ErrorIs(t, err, models.ErrMissingColumn)
	assert.Contains(t, err.Error(), "month")
}

func TestParse_CapsReportedErrors(t *testing.T) {
	var rows [][]string
	for i := 0; i < maxReportedErrors+10; i++ {
		rows = append(rows, sourceRow("admin.", "basic.4y", "no", "no", "failure", "yes", "40", "may"))
	}

	_, err := NewRecordParser(testLogger()).Parse(newTable(rows...))
	require.Error(t, err)

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	errs := joined.Unwrap()
	require.Len(t, errs, maxReportedErrors+1)
	assert.Equal(t, "10 more error(s) not shown; 60 row(s) failed in total", errs[maxReportedErrors].Error())
}

func TestParse_DuplicateIDsAreKept(t *testing.T) {
	table := newTable(
		sourceRow("admin.", "basic.4y", "no", "no", "failure", "yes", "5", "may"),
		sourceRow("admin.", "basic.4y", "no", "no", "failure", "yes", "6", "may"),
	)
	table.Rows[1][0] = "1"

	records, err := NewRecordParser(testLogger()).Parse(table)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
