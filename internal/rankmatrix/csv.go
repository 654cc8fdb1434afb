package rankmatrix

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"voirank/internal/fileutil"
)

// WriteValuesCSV writes the matrix with one row per period and one column per
// key. No-data cells are left empty.
func WriteValuesCSV(w io.Writer, m *ValueMatrix) error {
	return writeWide(w, m.periods, m.keys, func(period int, key string) (string, bool) {
		v, ok := m.Value(period, key)
		return strconv.FormatInt(v, 10), ok
	})
}

// WriteRanksCSV writes the rank matrix in the same layout as WriteValuesCSV.
func WriteRanksCSV(w io.Writer, r *RankMatrix) error {
	return writeWide(w, r.periods, r.keys, func(period int, key string) (string, bool) {
		v, ok := r.Rank(period, key)
		return strconv.Itoa(v), ok
	})
}

func writeWide(w io.Writer, periods []int, keys []string, cell func(int, string) (string, bool)) error {
	if _, err := io.WriteString(w, fileutil.UTF8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	header := append([]string{"year"}, keys...)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, period := range periods {
		row[0] = strconv.Itoa(period)
		for i, key := range keys {
			if v, ok := cell(period, key); ok {
				row[i+1] = v
			} else {
				row[i+1] = ""
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadValuesCSV parses a matrix written by WriteValuesCSV. Empty cells are
// no-data.
func ReadValuesCSV(r io.Reader) (*ValueMatrix, error) {
	cr := csv.NewReader(fileutil.SkipBOM(r))
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Aggregate(nil, nil), nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) == 0 {
		return nil, errors.New("read header: empty")
	}
	keys := header[1:]

	var rows []Triple
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		period, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: period %q: %w", line, record[0], err)
		}
		for i, key := range keys {
			if i+1 >= len(record) {
				break
			}
			raw := strings.TrimSpace(record[i+1])
			if raw == "" {
				continue
			}
			value, err := parseNumber(raw)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, key, err)
			}
			rows = append(rows, Triple{Period: period, Key: key, Value: value})
		}
	}
	return Aggregate(rows, nil), nil
}

// parseNumber accepts integer text and the float form ("123.0") that
// spreadsheet tools emit for columns containing gaps.
func parseNumber(raw string) (int64, error) {
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
