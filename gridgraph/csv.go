package gridgraph

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrParse indicates a raster cell that is not a number.
var ErrParse = errors.New("gridgraph: cannot parse cell")

// ReadCSV parses a headerless CSV raster: one row per line, one population
// value per field. Blank fields read as 0 and lines starting with '#' are
// skipped. Parse errors name the input line, counting skipped lines. Row
// lengths are checked by NewGridGraph, not here.
func ReadCSV(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var rows [][]float64
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gridgraph: reading csv: %w", err)
		}
		row := make([]float64, len(rec))
		for x, field := range rec {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				line, _ := cr.FieldPos(x)
				return nil, fmt.Errorf("%w: line %d field %d %q", ErrParse, line, x+1, field)
			}
			row[x] = v
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// LoadCSV reads the raster at path and builds a GridGraph from it.
func LoadCSV(path string, opts GridOptions) (*GridGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gridgraph: %w", err)
	}
	defer f.Close()

	values, err := ReadCSV(f)
	if err != nil {
		return nil, err
	}

	return NewGridGraph(values, opts)
}
