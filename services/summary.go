package services

import (
	"sort"

	"campaign-cleaner/models"
	"campaign-cleaner/utils"
)

const topJobsCount = 5

// SummaryService computes run statistics from the extracted datasets
type SummaryService struct {
	logger *utils.Logger
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

// Generate computes all summary figures for one run
func (s *SummaryService) Generate(runID string, table *models.Table, ds *models.Datasets) *models.RunSummary {
	summary := &models.RunSummary{
		RunID:           runID,
		ContactsByMonth: make(map[string]int),
	}
	if table != nil {
		summary.Archives = table.Archives
		summary.Entries = table.Entries
		summary.SynthesizedIDs = table.SynthesizedIDs
	}

	if ds == nil || len(ds.Clients) == 0 {
		s.logger.Warn("No rows to summarize")
		return summary
	}
	summary.TotalRows = len(ds.Clients)
	total := float64(summary.TotalRows)

	jobs := make(map[string]int)
	var defaults, mortgages int
	for _, c := range ds.Clients {
		defaults += c.CreditDefault
		mortgages += c.Mortgage
		if c.Education == nil {
			summary.MissingEducation++
		}
		jobs[c.Job]++
	}
	summary.CreditDefaultRate = float64(defaults) / total
	summary.MortgageRate = float64(mortgages) / total

	var converted, prevSuccess, duration int
	for _, c := range ds.Campaigns {
		converted += c.CampaignOutcome
		prevSuccess += c.PreviousOutcome
		duration += c.ContactDuration
		// YYYY-MM-DD
		if len(c.LastContactDate) >= 7 {
			summary.ContactsByMonth[c.LastContactDate[5:7]]++
		}
	}
	if n := len(ds.Campaigns); n > 0 {
		summary.ConversionRate = float64(converted) / float64(n)
		summary.PreviousSuccessRate = float64(prevSuccess) / float64(n)
		summary.AvgContactDuration = float64(duration) / float64(n)
	}

	for job, count := range jobs {
		summary.TopJobs = append(summary.TopJobs, models.JobCount{Job: job, Count: count})
	}
	sort.Slice(summary.TopJobs, func(i, j int) bool {
		if summary.TopJobs[i].Count != summary.TopJobs[j].Count {
			return summary.TopJobs[i].Count > summary.TopJobs[j].Count
		}
		return summary.TopJobs[i].Job < summary.TopJobs[j].Job
	})
	if len(summary.TopJobs) > topJobsCount {
		summary.TopJobs = summary.TopJobs[:topJobsCount]
	}

	return summary
}
