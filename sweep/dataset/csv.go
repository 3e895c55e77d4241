package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/recourse-bench/recourse-bench/sweep"
)

// FromCSV loads a headered CSV file, encodes it and splits it. The label
// column must hold 0/1 acceptance labels. Columns named in categorical are
// treated as discrete for the diversity metric; their values must already be
// numerically encoded.
func FromCSV(name, path, label string, categorical []string, seed int64) (*sweep.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset %s: need a header and at least one row", path)
	}

	header := rows[0]
	labelCol := -1
	for i, col := range header {
		if col == label {
			labelCol = i
		}
	}
	if labelCol < 0 {
		return nil, fmt.Errorf("dataset %s: no label column %q", path, label)
	}

	catSet := make(map[string]bool, len(categorical))
	for _, c := range categorical {
		catSet[c] = true
	}
	var names []string
	var catIdx []int
	for i, col := range header {
		if i == labelCol {
			continue
		}
		if catSet[col] {
			catIdx = append(catIdx, len(names))
		}
		names = append(names, col)
	}

	X := make([][]float64, 0, len(rows)-1)
	y := make([]int, 0, len(rows)-1)
	for r, row := range rows[1:] {
		features := make([]float64, 0, len(names))
		for i, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("dataset %s row %d column %q: %w", path, r+1, header[i], err)
			}
			if i == labelCol {
				y = append(y, int(v))
				continue
			}
			features = append(features, v)
		}
		X = append(X, features)
	}

	logrus.Debugf("loaded dataset %s: %d rows, %d features (%d categorical)",
		name, len(X), len(names), len(catIdx))

	ds := Split(name, X, y, 0.8, seed)
	ds.Schema = NewSchema(names, catIdx, X)
	return ds, nil
}
