// Package export writes harvested records to the flat-file sinks: a
// pretty-printed JSON array and a CSV of flattened fields.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"jobsift/internal/models"
	"jobsift/internal/normalize"

	"go.uber.org/zap"
)

type Exporter struct {
	logger *zap.Logger
}

func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// WriteJSON writes records as an indented JSON array. HTML escaping is off
// so URLs and non-ASCII text survive round trips.
func (e *Exporter) WriteJSON(path string, records []models.Record) error {
	if records == nil {
		records = []models.Record{}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("failed to close export file", zap.String("path", path), zap.Error(cerr))
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	e.logger.Info("wrote JSON export", zap.String("path", path), zap.Int("records", len(records)))
	return nil
}

// WriteCSV flattens every record, takes the lexicographically sorted union
// of all flattened keys as the header, and renders one row per record.
// Fields absent in a record render empty.
func (e *Exporter) WriteCSV(path string, records []models.Record) error {
	flats := make([]models.FlatRecord, len(records))
	for i, rec := range records {
		flats[i] = normalize.Flatten(rec)
	}
	header := headerFields(flats)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("failed to close export file", zap.String("path", path), zap.Error(cerr))
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(header))
	for _, flat := range flats {
		for i, field := range header {
			row[i] = renderCell(flat[field])
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	e.logger.Info("wrote CSV export", zap.String("path", path), zap.Int("records", len(records)))
	return nil
}

func headerFields(flats []models.FlatRecord) []string {
	seen := make(map[string]struct{})
	for _, flat := range flats {
		for k := range flat {
			seen[k] = struct{}{}
		}
	}

	fields := make([]string, 0, len(seen))
	for k := range seen {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

func renderCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
