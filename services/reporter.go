package services

import (
	"fmt"
	"io"
	"strings"

	"campaign-cleaner/models"
)

var monthNames = []struct{ num, name string }{
	{"01", "Jan"}, {"02", "Feb"}, {"03", "Mar"}, {"04", "Apr"},
	{"05", "May"}, {"06", "Jun"}, {"07", "Jul"}, {"08", "Aug"},
	{"09", "Sep"}, {"10", "Oct"}, {"11", "Nov"}, {"12", "Dec"},
}

// PrintSummary formats the run summary as a boxed terminal report
func PrintSummary(w io.Writer, s *models.RunSummary) {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)

	fmt.Fprintf(w, "\n╔%s╗\n", border)
	fmt.Fprintf(w, "║%s║\n", center("MARKETING CAMPAIGN DATA SUMMARY", 55))
	fmt.Fprintf(w, "╚%s╝\n", border)

	fmt.Fprintf(w, "\n OVERVIEW\n%s\n", thin)
	fmt.Fprintf(w, "  Run ID                  : %s\n", s.RunID)
	fmt.Fprintf(w, "  Archives / tables       : %d / %d\n", s.Archives, s.Entries)
	fmt.Fprintf(w, "  Rows                    : %d\n", s.TotalRows)
	if s.SynthesizedIDs {
		fmt.Fprintf(w, "  Client ids              : synthesized 1..%d\n", s.TotalRows)
	}
	fmt.Fprintf(w, "  Contact year (assumed)  : %d\n", models.AssumedYear)

	fmt.Fprintf(w, "\n RATES\n%s\n", thin)
	fmt.Fprintf(w, "  Campaign conversion     : %5.1f%%\n", s.ConversionRate*100)
	fmt.Fprintf(w, "  Previous success        : %5.1f%%\n", s.PreviousSuccessRate*100)
	fmt.Fprintf(w, "  Credit default          : %5.1f%%\n", s.CreditDefaultRate*100)
	fmt.Fprintf(w, "  Mortgage                : %5.1f%%\n", s.MortgageRate*100)
	fmt.Fprintf(w, "  Unknown education       : %d\n", s.MissingEducation)
	fmt.Fprintf(w, "  Avg contact duration    : %.1fs\n", s.AvgContactDuration)

	if len(s.ContactsByMonth) > 0 {
		fmt.Fprintf(w, "\n LAST CONTACTS PER MONTH\n%s\n", thin)
		maxCount := 0
		for _, n := range s.ContactsByMonth {
			if n > maxCount {
				maxCount = n
			}
		}
		for _, m := range monthNames {
			count, ok := s.ContactsByMonth[m.num]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  %-4s %6d  %s\n", m.name, count, strings.Repeat("▓", barWidth(count, maxCount, 30)))
		}
	}

	if len(s.TopJobs) > 0 {
		fmt.Fprintf(w, "\n TOP %d JOBS\n%s\n", len(s.TopJobs), thin)
		for i, j := range s.TopJobs {
			fmt.Fprintf(w, "  %d. %-35s %6d\n", i+1, truncate(j.Job, 35), j.Count)
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", border)
}

// barWidth scales count to at most width characters, keeping non-zero visible
func barWidth(count, maxCount, width int) int {
	if maxCount <= 0 || count <= 0 {
		return 0
	}
	n := count * width / maxCount
	if n == 0 {
		n = 1
	}
	return n
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
