package services

import (
	"campaign-cleaner/models"
	"campaign-cleaner/utils"
)

// ClientExtractor projects demographic fields and normalizes them
type ClientExtractor struct {
	logger *utils.Logger
}

// NewClientExtractor creates a new ClientExtractor
func NewClientExtractor(logger *utils.Logger) *ClientExtractor {
	return &ClientExtractor{logger: logger}
}

// Extract builds one Client per record, in record order
func (e *ClientExtractor) Extract(records []*models.Record) []*models.Client {
	clients := make([]*models.Client, 0, len(records))
	missing := 0

	for _, r := range records {
		c := &models.Client{
			ClientID:      r.ClientID,
			Age:           r.Age,
			Job:           NormalizeJob(r.Job),
			Marital:       r.Marital,
			Education:     NormalizeEducation(r.Education),
			CreditDefault: Flag(r.CreditDefault, "yes"),
			Mortgage:      Flag(r.Mortgage, "yes"),
		}
		if c.Education == nil {
			missing++
		}
		clients = append(clients, c)
	}

	e.logger.Info("Client dataset: %d rows (%d with unknown education)", len(clients), missing)
	return clients
}
