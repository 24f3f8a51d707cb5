package services

import (
	"fmt"

	"campaign-cleaner/config"
	"campaign-cleaner/loader"
	"campaign-cleaner/models"
	"campaign-cleaner/storage"
	"campaign-cleaner/utils"
)

// Pipeline runs one full cleaning pass: load archives, parse rows, split them
// into the three datasets and write the CSV outputs
type Pipeline struct {
	runID     string
	loader    *loader.ArchiveLoader
	parser    *RecordParser
	clients   *ClientExtractor
	campaigns *CampaignExtractor
	economics *EconomicsExtractor
	writer    *storage.CSVWriter
	summary   *SummaryService
	logger    *utils.Logger
}

// NewPipeline creates a new Pipeline reading cfg.InputDir and writing cfg.OutputDir
func NewPipeline(cfg *config.Config, runID string, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		runID:     runID,
		loader:    loader.NewArchiveLoader(cfg, logger),
		parser:    NewRecordParser(logger),
		clients:   NewClientExtractor(logger),
		campaigns: NewCampaignExtractor(logger),
		economics: NewEconomicsExtractor(logger),
		writer:    storage.NewCSVWriter(cfg.OutputDir, logger),
		summary:   NewSummaryService(logger),
		logger:    logger,
	}
}

// OutputPaths returns the CSV files a successful Run writes
func (p *Pipeline) OutputPaths() []string {
	return p.writer.Paths()
}

// Run executes every stage in order. Any error aborts the run before the
// outputs are touched, except a failure while moving them into place.
func (p *Pipeline) Run() (*models.Datasets, *models.RunSummary, error) {
	table, err := p.loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load: %w", err)
	}

	records, err := p.parser.Parse(table)
	if err != nil {
		return nil, nil, fmt.Errorf("parse: %w", err)
	}

	campaigns, err := p.campaigns.Extract(records)
	if err != nil {
		return nil, nil, fmt.Errorf("extract: %w", err)
	}
	ds := &models.Datasets{
		Clients:   p.clients.Extract(records),
		Campaigns: campaigns,
		Economics: p.economics.Extract(records),
	}

	if err := p.writer.Save(ds); err != nil {
		return nil, nil, fmt.Errorf("write: %w", err)
	}

	summary := p.summary.Generate(p.runID, table, ds)
	p.logger.Info("Cleaned %d rows from %d archive(s)", summary.TotalRows, summary.Archives)
	return ds, summary, nil
}
