package storage

import (
	"fmt"
	"strconv"

	"campaign-cleaner/models"
)

// Dataset names; CSV files are <name>.csv, sheets and SQL tables use the name as is
const (
	ClientDataset    = "client"
	CampaignDataset  = "campaign"
	EconomicsDataset = "economics"
)

var (
	clientHeader = []string{
		models.ColClientID, models.ColAge, models.ColJob, models.ColMarital,
		models.ColEducation, models.ColCreditDefault, models.ColMortgage,
	}
	campaignHeader = []string{
		models.ColClientID, models.ColNumberContacts, models.ColContactDuration,
		models.ColPreviousCampaignContacts, models.ColPreviousOutcome,
		models.ColCampaignOutcome, models.ColLastContactDate,
	}
	economicsHeader = []string{
		models.ColClientID, models.ColConsPriceIdx, models.ColEuriborThreeMonths,
	}
)

// datasetTable is one output dataset as typed cells: int, float64, string or
// nil for a missing value
type datasetTable struct {
	name   string
	header []string
	rows   [][]any
}

// tables renders the datasets in output order: client, campaign, economics
func tables(ds *models.Datasets) []datasetTable {
	clients := make([][]any, 0, len(ds.Clients))
	for _, c := range ds.Clients {
		var education any
		if c.Education != nil {
			education = *c.Education
		}
		clients = append(clients, []any{
			c.ClientID, c.Age, c.Job, c.Marital, education, c.CreditDefault, c.Mortgage,
		})
	}

	campaigns := make([][]any, 0, len(ds.Campaigns))
	for _, c := range ds.Campaigns {
		campaigns = append(campaigns, []any{
			c.ClientID, c.NumberContacts, c.ContactDuration, c.PreviousCampaignContacts,
			c.PreviousOutcome, c.CampaignOutcome, c.LastContactDate,
		})
	}

	economics := make([][]any, 0, len(ds.Economics))
	for _, e := range ds.Economics {
		economics = append(economics, []any{e.ClientID, e.ConsPriceIdx, e.EuriborThreeMonths})
	}

	return []datasetTable{
		{name: ClientDataset, header: clientHeader, rows: clients},
		{name: CampaignDataset, header: campaignHeader, rows: campaigns},
		{name: EconomicsDataset, header: economicsHeader, rows: economics},
	}
}

// formatCell renders a typed cell for CSV; nil becomes an empty field
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int:
		return strconv.Itoa(x)
	case float64:
		// shortest form that parses back to the same value
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
