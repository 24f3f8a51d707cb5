package storage

import "campaign-cleaner/models"

// DatasetSink stores the three extracted datasets. Every Save replaces what
// a previous run stored.
type DatasetSink interface {
	Save(ds *models.Datasets) error
	Close() error
}
