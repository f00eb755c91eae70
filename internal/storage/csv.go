package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/barviz/internal/dataset"
)

var csvHeader = []string{"label", "value"}

// WriteCSV writes a label,value header followed by one row per point.
func WriteCSV(w io.Writer, d dataset.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range d {
		if err := cw.Write([]string{p.Label, formatValue(p.Value)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadCSV(r io.Reader) (dataset.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return dataset.Dataset{}, nil
	}

	d := make(dataset.Dataset, 0, len(records)-1)
	for i, rec := range records[1:] {
		v, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		d = append(d, dataset.Point{Label: rec[0], Value: v})
	}
	return d, nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

type tableExport struct {
	Sort   string          `json:"sort"`
	Count  int             `json:"count"`
	Points dataset.Dataset `json:"points"`
}

// WriteJSON writes the table as indented JSON.
func WriteJSON(w io.Writer, d dataset.Dataset, mode dataset.SortMode) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tableExport{Sort: mode.String(), Count: len(d), Points: d})
}
