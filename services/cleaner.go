package services

import (
	"fmt"
	"strconv"
	"strings"

	"campaign-cleaner/models"
)

const educationUnknown = "unknown"

// monthNumbers maps lower-case English month abbreviations to two-digit numbers
var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// NormalizeJob drops "." and turns "-" into "_" ("blue-collar" -> "blue_collar",
// "admin." -> "admin"). Applying it twice gives the same result.
func NormalizeJob(job string) string {
	job = strings.ReplaceAll(job, ".", "")
	return strings.ReplaceAll(job, "-", "_")
}

// NormalizeEducation turns "." into "_" and maps exactly "unknown" to nil
func NormalizeEducation(education string) *string {
	education = strings.ReplaceAll(education, ".", "_")
	if education == educationUnknown {
		return nil
	}
	return &education
}

// Flag returns 1 when value equals want ignoring case, else 0
func Flag(value, want string) int {
	if strings.EqualFold(value, want) {
		return 1
	}
	return 0
}

// MonthNumber returns the two-digit month for a three-letter abbreviation
func MonthNumber(month string) (string, error) {
	mm, ok := monthNumbers[strings.ToLower(month)]
	if !ok {
		return "", models.ErrUnknownMonth
	}
	return mm, nil
}

// ContactDate assembles "YYYY-MM-DD" from a month abbreviation and a day,
// always in models.AssumedYear
func ContactDate(month string, day int) (string, error) {
	mm, err := MonthNumber(month)
	if err != nil {
		return "", err
	}
	if day < 1 || day > 31 {
		return "", models.ErrInvalidDay
	}
	return fmt.Sprintf("%d-%s-%02d", models.AssumedYear, mm, day), nil
}

// parseInt accepts plain integers and integral floats such as "5.0", which
// is how spreadsheet exports often encode whole numbers
func parseInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		return 0, models.ErrInvalidValue
	}
	return int(f), nil
}

func parseFloat(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, models.ErrInvalidValue
	}
	return f, nil
}
