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

package report

import (
	"io"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/penny-vault/riskperf/dataframe"
	"github.com/penny-vault/riskperf/returns"
	"github.com/pkg/errors"
)

// ErrNoSeries is returned when an input document does not contain any series
var ErrNoSeries = errors.New("input contains no series")

// Input is the JSON document accepted by the report command:
//
//	{
//	  "dates": ["2021-01-04T00:00:00Z", ...],
//	  "series": {"SPY": [...], "TLT": [...]},
//	  "benchmark": [...]
//	}
//
// dates and benchmark are optional. Values are either prices or returns.
type Input struct {
	Dates     []time.Time          `json:"dates"`
	Series    map[string][]float64 `json:"series"`
	Benchmark []float64            `json:"benchmark"`
}

// ParseInput decodes an Input document from r
func ParseInput(r io.Reader) (*Input, error) {
	input := &Input{}
	if err := json.NewDecoder(r).Decode(input); err != nil {
		return nil, errors.Wrap(err, "could not decode input")
	}

	if len(input.Series) == 0 {
		return nil, ErrNoSeries
	}

	return input, nil
}

// Returns assembles the series into a return dataframe with columns sorted
// by name. When prices is true every series, including the benchmark, is
// converted to simple returns first.
func (input *Input) Returns(prices bool) (*dataframe.DataFrame, []float64, error) {
	names := make([]string, 0, len(input.Series))
	for name := range input.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	cols := make([][]float64, len(names))
	for idx, name := range names {
		cols[idx] = input.Series[name]
	}

	var dates []time.Time
	if len(input.Dates) > 0 {
		dates = input.Dates
	}

	df, err := dataframe.New(dates, names, cols)
	if err != nil {
		return nil, nil, err
	}

	benchmark := input.Benchmark
	if !prices {
		return df, benchmark, nil
	}

	df, err = returns.SimpleFrame(df)
	if err != nil {
		return nil, nil, err
	}

	if benchmark != nil {
		benchmark, err = returns.Simple(benchmark)
		if err != nil {
			return nil, nil, errors.Wrap(err, "benchmark")
		}
	}

	return df, benchmark, nil
}
