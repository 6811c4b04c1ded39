package sheets

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/shaz1409/maturity-auto/internal/config"
)

// Source loads the survey export, either from a published sheet URL (CSV
// export) or from a local file. A configured file path wins over the URL.
type Source struct {
	url        string
	file       string
	encoding   string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

func NewSource(cfg *config.Config, logger *zap.SugaredLogger) (*Source, error) {
	if cfg.Sheet.URL == "" && cfg.Sheet.File == "" {
		return nil, fmt.Errorf("SHEET_URL or SHEET_FILE is required")
	}

	return &Source{
		url:      cfg.Sheet.URL,
		file:     cfg.Sheet.File,
		encoding: cfg.Sheet.Encoding,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.App.HttpTimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

func (s *Source) Load() (*Table, error) {
	if s.file != "" {
		return s.loadFile()
	}
	return s.fetchCSV()
}

func (s *Source) loadFile() (*Table, error) {
	if strings.EqualFold(filepath.Ext(s.file), ".xlsx") {
		return loadXLSX(s.file)
	}

	f, err := os.Open(s.file)
	if err != nil {
		return nil, fmt.Errorf("open sheet file: %w", err)
	}
	defer f.Close()

	s.logger.Debugf("Loading sheet from file %s", s.file)
	return s.parseCSV(f)
}

func (s *Source) fetchCSV() (*Table, error) {
	req, err := http.NewRequest("GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	s.logger.Debugf("Fetching sheet export from %s", s.url)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.handleAPIError(resp)
	}

	return s.parseCSV(resp.Body)
}

func (s *Source) parseCSV(r io.Reader) (*Table, error) {
	// Transcode non-UTF-8 exports when an encoding is configured.
	if s.encoding != "" && !isUTF8(s.encoding) {
		e, err := htmlindex.Get(s.encoding)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", s.encoding, err)
		}
		r = transform.NewReader(r, e.NewDecoder())
	}

	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet export is empty")
	}

	columns := make([]string, len(records[0]))
	for i, c := range records[0] {
		columns[i] = strings.TrimSpace(c)
	}

	table := &Table{Columns: columns, Rows: records[1:]}
	s.logger.Infof("Data loaded: %d rows, %d columns", len(table.Rows), len(table.Columns))
	return table, nil
}

func (s *Source) handleAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
		Body:       string(body),
	}
}

func isUTF8(enc string) bool {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "utf-8", "utf8":
		return true
	}
	return false
}
