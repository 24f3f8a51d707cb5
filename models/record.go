package models

// AssumedYear is stamped on every reconstructed contact date. The source data
// carries only day and month, so multi-year input cannot be represented.
const AssumedYear = 2022

// Source column names
const (
	ColClientID                 = "client_id"
	ColAge                      = "age"
	ColJob                      = "job"
	ColMarital                  = "marital"
	ColEducation                = "education"
	ColCreditDefault            = "credit_default"
	ColMortgage                 = "mortgage"
	ColNumberContacts           = "number_contacts"
	ColContactDuration          = "contact_duration"
	ColPreviousCampaignContacts = "previous_campaign_contacts"
	ColPreviousOutcome          = "previous_outcome"
	ColCampaignOutcome          = "campaign_outcome"
	ColDay                      = "day"
	ColMonth                    = "month"
	ColConsPriceIdx             = "cons_price_idx"
	ColEuriborThreeMonths       = "euribor_three_months"
	ColLastContactDate          = "last_contact_date"
)

// RequiredColumns lists the columns every source table must carry.
// client_id is optional and synthesized by the loader when absent.
var RequiredColumns = []string{
	ColAge, ColJob, ColMarital, ColEducation, ColCreditDefault, ColMortgage,
	ColNumberContacts, ColContactDuration, ColPreviousCampaignContacts,
	ColPreviousOutcome, ColCampaignOutcome, ColDay, ColMonth,
	ColConsPriceIdx, ColEuriborThreeMonths,
}

// Table is the unified raw table produced by concatenating every CSV entry
// found in the input archives.
type Table struct {
	Header  []string
	Rows    [][]string
	Sources []string // "archive.zip/entry.csv" for each row

	Archives       int
	Entries        int
	SynthesizedIDs bool
}

// ColumnIndex returns the position of name in the header, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Record is one client contact event after parsing and validation
type Record struct {
	Row    int // 1-based position in the unified table
	Source string

	ClientID                 int
	Age                      int
	Job                      string
	Marital                  string
	Education                string
	CreditDefault            string
	Mortgage                 string
	NumberContacts           int
	ContactDuration          int
	PreviousCampaignContacts int
	PreviousOutcome          string
	CampaignOutcome          string
	Day                      int    `validate:"min=1,max=31"`
	Month                    string `validate:"month_abbr"`
	ConsPriceIdx             float64
	EuriborThreeMonths       float64
}

// Client is one row of client.csv
type Client struct {
	ClientID      int
	Age           int
	Job           string
	Marital       string
	Education     *string // nil when the source said "unknown"
	CreditDefault int
	Mortgage      int
}

// Campaign is one row of campaign.csv
type Campaign struct {
	ClientID                 int
	NumberContacts           int
	ContactDuration          int
	PreviousCampaignContacts int
	PreviousOutcome          int
	CampaignOutcome          int
	LastContactDate          string // YYYY-MM-DD
}

// Economics is one row of economics.csv
type Economics struct {
	ClientID           int
	ConsPriceIdx       float64
	EuriborThreeMonths float64
}

// Datasets bundles the three extracted outputs
type Datasets struct {
	Clients   []*Client
	Campaigns []*Campaign
	Economics []*Economics
}

// RunSummary holds statistics computed over one pipeline run
type RunSummary struct {
	RunID          string
	Archives       int
	Entries        int
	TotalRows      int
	SynthesizedIDs bool

	ConversionRate      float64 // share of campaign_outcome == 1
	PreviousSuccessRate float64
	CreditDefaultRate   float64
	MortgageRate        float64
	MissingEducation    int
	AvgContactDuration  float64
	ContactsByMonth     map[string]int // keyed by "01".."12"
	TopJobs             []JobCount
}

// JobCount is a normalized job title with its number of clients
type JobCount struct {
	Job   string
	Count int
}
