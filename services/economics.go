package services

import (
	"campaign-cleaner/models"
	"campaign-cleaner/utils"
)

// EconomicsExtractor projects the economic indicators unchanged
type EconomicsExtractor struct {
	logger *utils.Logger
}

// NewEconomicsExtractor creates a new EconomicsExtractor
func NewEconomicsExtractor(logger *utils.Logger) *EconomicsExtractor {
	return &EconomicsExtractor{logger: logger}
}

// Extract builds one Economics row per record
func (e *EconomicsExtractor) Extract(records []*models.Record) []*models.Economics {
	out := make([]*models.Economics, 0, len(records))
	for _, r := range records {
		out = append(out, &models.Economics{
			ClientID:           r.ClientID,
			ConsPriceIdx:       r.ConsPriceIdx,
			EuriborThreeMonths: r.EuriborThreeMonths,
		})
	}

	e.logger.Info("Economics dataset: %d rows", len(out))
	return out
}
