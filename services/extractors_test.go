package services

import (
	"errors"
	"testing"

	"campaign-cleaner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_WorkedExample(t *testing.T) {
	records := parseRecords(t,
		sourceRow("blue-collar.", "unknown", "yes", "No", "Success", "no", "5", "Mar"),
	)

	clients := NewClientExtractor(testLogger()).Extract(records)
	require.Len(t, clients, 1)
	assert.Equal(t, &models.Client{
		ClientID:      1,
		Age:           41,
		Job:           "blue_collar",
		Marital:       "married",
		Education:     nil,
		CreditDefault: 1,
		Mortgage:      0,
	}, clients[0])

	campaigns, err := NewCampaignExtractor(testLogger()).Extract(records)
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, &models.Campaign{
		ClientID:                 1,
		NumberContacts:           2,
		ContactDuration:          120,
		PreviousCampaignContacts: 1,
		PreviousOutcome:          1,
		CampaignOutcome:          0,
		LastContactDate:          "2022-03-05",
	}, campaigns[0])

	economics := NewEconomicsExtractor(testLogger()).Extract(records)
	require.Len(t, economics, 1)
	assert.Equal(t, &models.Economics{ClientID: 1, ConsPriceIdx: 92.893, EuriborThreeMonths: 1.299}, economics[0])
}

func TestClientExtractor_Flags(t *testing.T) {
	values := []string{"yes", "YES", "Yes", "no", "unknown", ""}
	var rows [][]string
	for _, v := range values {
		rows = append(rows, sourceRow("admin.", "university.degree", v, v, "failure", "no", "1", "jan"))
	}

	clients := NewClientExtractor(testLogger()).Extract(parseRecords(t, rows...))
	require.Len(t, clients, len(values))
	for i, c := range clients {
		expected := 0
		if i < 3 {
			expected = 1
		}
		assert.Equal(t, expected, c.CreditDefault, "credit_default %q", values[i])
		assert.Equal(t, expected, c.Mortgage, "mortgage %q", values[i])
		require.NotNil(t, c.Education)
		assert.Equal(t, "university_degree", *c.Education)
		assert.Equal(t, "admin", c.Job)
	}
}

func TestCampaignExtractor_Outcomes(t *testing.T) {
	records := parseRecords(t,
		sourceRow("admin.", "basic.4y", "no", "no", "SUCCESS", "YES", "31", "dec"),
		sourceRow("admin.", "basic.4y", "no", "no", "nonexistent", "no", "1", "JAN"),
		sourceRow("admin.", "basic.4y", "no", "no", "failure", "unknown", "15", "Jun"),
	)

	campaigns, err := NewCampaignExtractor(testLogger()).Extract(records)
	require.NoError(t, err)
	require.Len(t, campaigns, 3)

	assert.Equal(t, []int{1, 0, 0}, []int{campaigns[0].PreviousOutcome, campaigns[1].PreviousOutcome, campaigns[2].PreviousOutcome})
	assert.Equal(t, []int{1, 0, 0}, []int{campaigns[0].CampaignOutcome, campaigns[1].CampaignOutcome, campaigns[2].CampaignOutcome})
	assert.Equal(t, "2022-12-31", campaigns[0].LastContactDate)
	assert.Equal(t, "2022-01-01", campaigns[1].LastContactDate)
	assert.Equal(t, "2022-06-15", campaigns[2].LastContactDate)
}

func TestCampaignExtractor_DateErrors(t *testing.T) {
	records := []*models.Record{
		{Row: 1, Source: "a.zip/x.csv", ClientID: 1, Day: 5, Month: "may"},
		{Row: 2, Source: "a.zip/x.csv", ClientID: 2, Day: 5, Month: "sept"},
		{Row: 3, Source: "a.zip/x.csv", ClientID: 3, Day: 0, Month: "may"},
	}

	campaigns, err := NewCampaignExtractor(testLogger()).Extract(records)
	require.Error(t, err)
	assert.Nil(t, campaigns)
	assert.ErrorIs(t, err, models.ErrUnknownMonth)
	assert.ErrorIs(t, err, models.ErrInvalidDay)

	var dataErr *models.DataError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, 2, dataErr.Row)
	assert.Equal(t, models.ColMonth, dataErr.Column)
	assert.Equal(t, "sept", dataErr.Value)
	assert.Contains(t, err.Error(), `row 3 (a.zip/x.csv): column day = "0"`)
}

func TestEconomicsExtractor_Verbatim(t *testing.T) {
	records := []*models.Record{
		{ClientID: 7, ConsPriceIdx: 93.994, EuriborThreeMonths: 4.857},
		{ClientID: 8, ConsPriceIdx: 92.201, EuriborThreeMonths: 0.634},
	}

	economics := NewEconomicsExtractor(testLogger()).Extract(records)
	assert.Equal(t, []*models.Economics{
		{ClientID: 7, ConsPriceIdx: 93.994, EuriborThreeMonths: 4.857},
		{ClientID: 8, ConsPriceIdx: 92.201, EuriborThreeMonths: 0.634},
	}, economics)
}
