// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataframe

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// New creates a dataframe with one column per name. Every column must have
// one value per date. When dates is nil the dataframe has no date index and
// only the column lengths need to agree.
func New(dates []time.Time, names []string, cols [][]float64) (*DataFrame, error) {
	if len(names) != len(cols) {
		return nil, errors.Wrapf(ErrColumnLength, "%d names for %d columns", len(names), len(cols))
	}

	want := len(dates)
	if dates == nil && len(cols) > 0 {
		want = len(cols[0])
	}

	for idx, col := range cols {
		if len(col) != want {
			return nil, errors.Wrapf(ErrColumnLength, "column %s has %d rows, expected %d", names[idx], len(col), want)
		}
	}

	return &DataFrame{
		Dates:    dates,
		ColNames: names,
		Vals:     cols,
	}, nil
}

// ColIndex returns the index of the specified column or -1 if it does not exist
func (df *DataFrame) ColIndex(colName string) int {
	for idx, val := range df.ColNames {
		if colName == val {
			return idx
		}
	}

	return -1
}

// ColCount returns the number of columns in the dataframe
func (df *DataFrame) ColCount() int {
	return len(df.ColNames)
}

// Column returns the values of the named column
func (df *DataFrame) Column(colName string) ([]float64, error) {
	idx := df.ColIndex(colName)
	if idx == -1 {
		return nil, errors.Wrapf(ErrColumnMissing, "%s", colName)
	}
	return df.Vals[idx], nil
}

// Copy creates a deep copy of the dataframe
func (df *DataFrame) Copy() *DataFrame {
	df2 := &DataFrame{
		ColNames: make([]string, len(df.ColNames)),
		Vals:     make([][]float64, len(df.Vals)),
	}

	if df.Dates != nil {
		df2.Dates = make([]time.Time, len(df.Dates))
		copy(df2.Dates, df.Dates)
	}

	copy(df2.ColNames, df.ColNames)

	for idx := range df2.Vals {
		df2.Vals[idx] = make([]float64, len(df.Vals[idx]))
		copy(df2.Vals[idx], df.Vals[idx])
	}

	return df2
}

// Drop removes rows that contain the value `val` in any column and returns a
// new dataframe. Passing NaN drops rows with missing values.
func (df *DataFrame) Drop(val float64) *DataFrame {
	isNA := math.IsNaN(val)
	newVals := make([][]float64, len(df.Vals))
	for colIdx := range newVals {
		newVals[colIdx] = make([]float64, 0, df.Len())
	}

	var newDates []time.Time
	if df.Dates != nil {
		newDates = make([]time.Time, 0, len(df.Dates))
	}

	for rowIdx := 0; rowIdx < df.Len(); rowIdx++ {
		keep := true
		for _, col := range df.Vals {
			rowVal := col[rowIdx]
			keep = keep && !(rowVal == val || (isNA && math.IsNaN(rowVal)))
			if !keep {
				break
			}
		}

		if keep {
			if df.Dates != nil {
				newDates = append(newDates, df.Dates[rowIdx])
			}
			for colIdx, col := range df.Vals {
				newVals[colIdx] = append(newVals[colIdx], col[rowIdx])
			}
		}
	}

	return &DataFrame{
		Dates:    newDates,
		ColNames: df.ColNames,
		Vals:     newVals,
	}
}

// End returns the last date in the dataframe
func (df *DataFrame) End() time.Time {
	if len(df.Dates) == 0 {
		return time.Time{}
	}
	return df.Dates[len(df.Dates)-1]
}

// Insert a new column to the end of the dataframe
func (df *DataFrame) Insert(name string, col []float64) *DataFrame {
	df.ColNames = append(df.ColNames, name)
	df.Vals = append(df.Vals, col)
	return df
}

// Len returns the number of rows in the dataframe
func (df *DataFrame) Len() int {
	if df.Dates != nil {
		return len(df.Dates)
	}
	if len(df.Vals) == 0 {
		return 0
	}
	return len(df.Vals[0])
}

// Map applies fn to every column concurrently and returns a new dataframe
// with the results. Each invocation only reads its own input column and
// writes its own output column. Results shorter than the input are aligned
// to the last dates, e.g. a return series drops the first date. All
// results must have the same length.
func (df *DataFrame) Map(fn func(col []float64) ([]float64, error)) (*DataFrame, error) {
	vals := make([][]float64, df.ColCount())

	var g errgroup.Group
	for colIdx := range df.Vals {
		colIdx := colIdx
		g.Go(func() error {
			res, err := fn(df.Vals[colIdx])
			if err != nil {
				return errors.Wrapf(err, "column %s", df.ColNames[colIdx])
			}
			vals[colIdx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := df.Len()
	if len(vals) > 0 {
		rows = len(vals[0])
	}

	for colIdx, col := range vals {
		if len(col) != rows || rows > df.Len() {
			return nil, errors.Wrapf(ErrColumnLength, "column %s has %d rows, expected %d", df.ColNames[colIdx], len(col), rows)
		}
	}

	res := &DataFrame{
		ColNames: make([]string, len(df.ColNames)),
		Vals:     vals,
	}
	copy(res.ColNames, df.ColNames)

	if df.Dates != nil {
		res.Dates = make([]time.Time, rows)
		copy(res.Dates, df.Dates[len(df.Dates)-rows:])
	}

	return res, nil
}

// Reduce applies fn to every column concurrently and returns the scalar
// result for each column keyed by column name
func (df *DataFrame) Reduce(fn func(col []float64) (float64, error)) (map[string]float64, error) {
	vals := make([]float64, df.ColCount())

	var g errgroup.Group
	for colIdx := range df.Vals {
		colIdx := colIdx
		g.Go(func() error {
			res, err := fn(df.Vals[colIdx])
			if err != nil {
				return errors.Wrapf(err, "column %s", df.ColNames[colIdx])
			}
			vals[colIdx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make(map[string]float64, len(vals))
	for colIdx, val := range vals {
		res[df.ColNames[colIdx]] = val
	}
	return res, nil
}

// Start returns the first date of the dataframe
func (df *DataFrame) Start() time.Time {
	if len(df.Dates) == 0 {
		return time.Time{}
	}
	return df.Dates[0]
}

// Table renders the dataframe as an ASCII formatted table
func (df *DataFrame) Table() string {
	if df.Len() == 0 {
		return "<NO DATA>" // nothing to do as there is no data available in the dataframe
	}

	// construct table header
	tableCols := append([]string{"Date"}, df.ColNames...)

	// initialize table
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader(tableCols)
	footer := make([]string, len(tableCols))
	footer[0] = "Num Rows"
	if len(footer) > 1 {
		footer[1] = fmt.Sprintf("%d", df.Len())
	}
	table.SetFooter(footer)
	table.SetBorder(false)

	for rowIdx := 0; rowIdx < df.Len(); rowIdx++ {
		row := make([]string, 0, len(df.Vals)+1)
		if df.Dates != nil {
			row = append(row, df.Dates[rowIdx].Format("2006-01-02"))
		} else {
			row = append(row, fmt.Sprintf("%d", rowIdx))
		}

		for _, col := range df.Vals {
			row = append(row, fmt.Sprintf("%.4f", col[rowIdx]))
		}

		table.Append(row)
	}

	table.Render()
	return s.String()
}
