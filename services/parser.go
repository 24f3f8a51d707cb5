package services

import (
	"errors"
	"fmt"

	"campaign-cleaner/models"
	"campaign-cleaner/utils"

	"github.com/go-playground/validator/v10"
)

// maxReportedErrors caps how many row errors end up in the returned error
const maxReportedErrors = 50

// RecordParser turns the unified raw table into typed, validated records
type RecordParser struct {
	validate *validator.Validate
	logger   *utils.Logger
}

// NewRecordParser creates a new RecordParser
func NewRecordParser(logger *utils.Logger) *RecordParser {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("month_abbr", isMonthAbbr)

	return &RecordParser{validate: v, logger: logger}
}

func isMonthAbbr(fl validator.FieldLevel) bool {
	_, err := MonthNumber(fl.Field().String())
	return err == nil
}

// columns holds the header position of every field a Record needs
type columns map[string]int

// Parse converts every row of table. All row errors are collected and
// returned together; any error means no records are returned.
func (p *RecordParser) Parse(table *models.Table) ([]*models.Record, error) {
	cols, err := resolveColumns(table)
	if err != nil {
		return nil, err
	}

	records := make([]*models.Record, 0, len(table.Rows))
	ids := utils.NewIDTracker()
	var errs []error
	failed, total := 0, 0

	for i, row := range table.Rows {
		source := ""
		if i < len(table.Sources) {
			source = table.Sources[i]
		}

		rec, rowErrs := p.parseRow(i+1, source, row, cols)
		if len(rowErrs) > 0 {
			failed++
			total += len(rowErrs)
			for _, e := range rowErrs {
				if len(errs) < maxReportedErrors {
					errs = append(errs, e)
				}
			}
			continue
		}

		if !ids.Add(rec.ClientID) {
			p.logger.Warn("Duplicate %s %d at row %d (%s)", models.ColClientID, rec.ClientID, rec.Row, source)
		}
		records = append(records, rec)
	}

	if failed > 0 {
		if total > len(errs) {
			errs = append(errs, fmt.Errorf("%d more error(s) not shown; %d row(s) failed in total", total-len(errs), failed))
		}
		return nil, errors.Join(errs...)
	}

	p.logger.Info("Parsed %d records (%d distinct client ids)", len(records), ids.Count())
	return records, nil
}

func resolveColumns(table *models.Table) (columns, error) {
	cols := make(columns, len(models.RequiredColumns)+1)
	var missing []string
	for _, name := range append([]string{models.ColClientID}, models.RequiredColumns...) {
		idx := table.ColumnIndex(name)
		if idx == -1 {
			missing = append(missing, name)
			continue
		}
		cols[name] = idx
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", models.ErrMissingColumn, missing)
	}
	return cols, nil
}

// parseRow converts one row; every problem in the row is reported
func (p *RecordParser) parseRow(rowNum int, source string, row []string, cols columns) (*models.Record, []error) {
	rec := &models.Record{
		Row:             rowNum,
		Source:          source,
		Job:             row[cols[models.ColJob]],
		Marital:         row[cols[models.ColMarital]],
		Education:       row[cols[models.ColEducation]],
		CreditDefault:   row[cols[models.ColCreditDefault]],
		Mortgage:        row[cols[models.ColMortgage]],
		PreviousOutcome: row[cols[models.ColPreviousOutcome]],
		CampaignOutcome: row[cols[models.ColCampaignOutcome]],
		Month:           row[cols[models.ColMonth]],
	}

	var errs []error
	fail := func(col string, err error) {
		errs = append(errs, &models.DataError{
			Row: rowNum, Source: source, Column: col, Value: row[cols[col]], Err: err,
		})
	}

	ints := []struct {
		col string
		dst *int
	}{
		{models.ColClientID, &rec.ClientID},
		{models.ColAge, &rec.Age},
		{models.ColNumberContacts, &rec.NumberContacts},
		{models.ColContactDuration, &rec.ContactDuration},
		{models.ColPreviousCampaignContacts, &rec.PreviousCampaignContacts},
		{models.ColDay, &rec.Day},
	}
	for _, f := range ints {
		n, err := parseInt(row[cols[f.col]])
		if err != nil {
			if f.col == models.ColDay {
				err = models.ErrInvalidDay
			}
			fail(f.col, err)
			continue
		}
		*f.dst = n
	}

	floats := []struct {
		col string
		dst *float64
	}{
		{models.ColConsPriceIdx, &rec.ConsPriceIdx},
		{models.ColEuriborThreeMonths, &rec.EuriborThreeMonths},
	}
	for _, f := range floats {
		v, err := parseFloat(row[cols[f.col]])
		if err != nil {
			fail(f.col, err)
			continue
		}
		*f.dst = v
	}

	if len(errs) > 0 {
		return nil, errs
	}

	if err := p.validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, []error{fmt.Errorf("row %d: %w", rowNum, err)}
		}
		for _, fe := range verrs {
			switch fe.Field() {
			case "Day":
				fail(models.ColDay, models.ErrInvalidDay)
			case "Month":
				fail(models.ColMonth, models.ErrUnknownMonth)
			default:
				errs = append(errs, fmt.Errorf("row %d: %s failed %q validation", rowNum, fe.Field(), fe.Tag()))
			}
		}
		return nil, errs
	}
	return rec, nil
}
