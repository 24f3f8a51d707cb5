// Package testutil builds input archives for package tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// Entry is one file stored inside a test archive
type Entry struct {
	Name    string
	Content string
}

// Header is the full source header without client_id
var Header = []string{
	"age", "job", "marital", "education", "credit_default", "mortgage",
	"number_contacts", "contact_duration", "previous_campaign_contacts",
	"previous_outcome", "campaign_outcome", "day", "month",
	"cons_price_idx", "euribor_three_months",
}

// CSV joins a header and rows into comma-separated text with a trailing newline
func CSV(header []string, rows ...string) string {
	lines := append([]string{strings.Join(header, ",")}, rows...)
	return strings.Join(lines, "\n") + "\n"
}

// WriteArchive creates dir/name as a zip holding entries in the given order
func WriteArchive(t *testing.T, dir, name string, entries ...Entry) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.Content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}
