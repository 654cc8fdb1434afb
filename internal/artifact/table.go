package artifact

import (
	"encoding/csv"
	"io"
	"path/filepath"

	"voirank/internal/fileutil"
	"voirank/internal/rankmatrix"
)

// Table is a header plus rows of already formatted cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Append adds one row.
func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Encode writes the table as CSV with a byte order mark.
func (t *Table) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, fileutil.UTF8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteTable writes t to path atomically.
func WriteTable(path string, t *Table) error {
	return fileutil.WriteAtomic(path, 0o644, t.Encode)
}

// MatrixPaths names the files written for one matrix pair.
type MatrixPaths struct {
	Values string
	Ranks  string
}

// WriteMatrices writes <dir>/<name>_race.csv and <dir>/<name>_rank.csv.
// name carries its own suffix, e.g. "overall_views" or "game_pairings".
func WriteMatrices(dir, name string, values *rankmatrix.ValueMatrix, ranks *rankmatrix.RankMatrix) (MatrixPaths, error) {
	paths := MatrixPaths{
		Values: filepath.Join(dir, name+"_race.csv"),
		Ranks:  filepath.Join(dir, name+"_rank.csv"),
	}
	if err := fileutil.WriteAtomic(paths.Values, 0o644, func(w io.Writer) error {
		return rankmatrix.WriteValuesCSV(w, values)
	}); err != nil {
		return MatrixPaths{}, err
	}
	if err := fileutil.WriteAtomic(paths.Ranks, 0o644, func(w io.Writer) error {
		return rankmatrix.WriteRanksCSV(w, ranks)
	}); err != nil {
		return MatrixPaths{}, err
	}
	return paths, nil
}
