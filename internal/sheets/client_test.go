package sheets

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shaz1409/maturity-auto/internal/config"
	"github.com/shaz1409/maturity-auto/internal/utils"
)

func sourceFor(t *testing.T, sheet config.SheetConfig) *Source {
	t.Helper()
	cfg := &config.Config{
		App:   config.AppConfig{HttpTimeoutSeconds: 5},
		Sheet: sheet,
	}
	src, err := NewSource(cfg, utils.NewNopLogger())
	require.NoError(t, err)
	return src
}

func TestNewSourceRequiresLocation(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{HttpTimeoutSeconds: 5}}
	_, err := NewSource(cfg, utils.NewNopLogger())
	assert.Error(t, err)
}

func TestFetchCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("Timestamp,Email Address,\"Q1, with comma\"\n" +
			"2024-05-01,one@example.com,3\n" +
			"2024-05-02,two@example.com,2\n"))
	}))
	defer srv.Close()

	src := sourceFor(t, config.SheetConfig{URL: srv.URL})

	table, err := src.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Timestamp", "Email Address", "Q1, with comma"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"2024-05-01", "one@example.com", "3"}, table.Rows[0])
}

func TestFetchCSVServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	src := sourceFor(t, config.SheetConfig{URL: srv.URL})

	_, err := src.Load()
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestFetchCSVEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	src := sourceFor(t, config.SheetConfig{URL: srv.URL})

	_, err := src.Load()
	assert.Error(t, err)
}

func TestLoadLocalCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte("A,B\n1,2\n"), 0o644))

	src := sourceFor(t, config.SheetConfig{File: path})

	table, err := src.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, table.Columns)
	assert.Equal(t, [][]string{{"1", "2"}}, table.Rows)
}

func TestLoadCSVTranscodesEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin.csv")
	// "café" in ISO-8859-1.
	data := []byte{'A', '\n', 'c', 'a', 'f', 0xE9, '\n'}
	require.NoError(t, os.WriteFile(path, data, 0o644))

	src := sourceFor(t, config.SheetConfig{File: path, Encoding: "iso-8859-1"})

	table, err := src.Load()
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "café", table.Rows[0][0])
}

func TestLoadXLSXFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Timestamp", "Email Address", "Q1"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"2024-05-01", "one@example.com", 3}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	src := sourceFor(t, config.SheetConfig{File: path})

	table, err := src.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Timestamp", "Email Address", "Q1"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "one@example.com", table.Rows[0][1])
}
