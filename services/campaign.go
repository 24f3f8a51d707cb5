package services

import (
	"errors"
	"fmt"
	"strconv"

	"campaign-cleaner/models"
	"campaign-cleaner/utils"
)

// CampaignExtractor projects contact facts, encodes outcomes and rebuilds
// the last contact date
type CampaignExtractor struct {
	logger *utils.Logger
}

// NewCampaignExtractor creates a new CampaignExtractor
func NewCampaignExtractor(logger *utils.Logger) *CampaignExtractor {
	return &CampaignExtractor{logger: logger}
}

// Extract builds one Campaign per record. An unknown month or an out-of-range
// day is a data error; every such row is reported and nothing is returned.
func (e *CampaignExtractor) Extract(records []*models.Record) ([]*models.Campaign, error) {
	campaigns := make([]*models.Campaign, 0, len(records))
	var errs []error

	for _, r := range records {
		date, err := ContactDate(r.Month, r.Day)
		if err != nil {
			if len(errs) < maxReportedErrors {
				errs = append(errs, dateError(r, err))
			}
			continue
		}

		campaigns = append(campaigns, &models.Campaign{
			ClientID:                 r.ClientID,
			NumberContacts:           r.NumberContacts,
			ContactDuration:          r.ContactDuration,
			PreviousCampaignContacts: r.PreviousCampaignContacts,
			PreviousOutcome:          Flag(r.PreviousOutcome, "success"),
			CampaignOutcome:          Flag(r.CampaignOutcome, "yes"),
			LastContactDate:          date,
		})
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("campaign dataset: %w", errors.Join(errs...))
	}

	e.logger.Info("Campaign dataset: %d rows (year fixed to %d)", len(campaigns), models.AssumedYear)
	return campaigns, nil
}

func dateError(r *models.Record, err error) error {
	col, value := models.ColMonth, r.Month
	if errors.Is(err, models.ErrInvalidDay) {
		col, value = models.ColDay, strconv.Itoa(r.Day)
	}
	return &models.DataError{Row: r.Row, Source: r.Source, Column: col, Value: value, Err: err}
}
