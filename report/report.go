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

// Package report assembles the risk and performance metrics of one or more
// return series into a single summary suitable for printing
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/penny-vault/riskperf/dataframe"
	"github.com/penny-vault/riskperf/metrics"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Settings controls how metrics are computed
type Settings struct {
	// Multiplier annualizes the metrics, e.g. 252 for daily returns
	Multiplier float64

	// Confidence is the significance level of VaR and ES, e.g. 0.05
	Confidence float64

	// Method is the distribution estimator used for VaR and ES
	Method metrics.Estimator

	// RiskFree is the per-period risk-free return and minimum acceptable return
	RiskFree float64

	// Geometric compounds returns when computing drawdowns
	Geometric bool
}

// Value is a metric that encodes NaN as JSON null
type Value float64

func (v Value) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(v), 'g', -1, 64)), nil
}

// Row holds the metrics of a single return series. Benchmark relative
// metrics are only set when a benchmark was provided.
type Row struct {
	Name                 string `json:"name"`
	Observations         int    `json:"observations"`
	Volatility           Value  `json:"volatility"`
	SharpeRatio          Value  `json:"sharpe_ratio"`
	AdjustedSharpeRatio  Value  `json:"adjusted_sharpe_ratio"`
	SortinoRatio         Value  `json:"sortino_ratio"`
	OmegaRatio           Value  `json:"omega_ratio"`
	UpsidePotentialRatio Value  `json:"upside_potential_ratio"`
	ValueAtRisk          Value  `json:"value_at_risk"`
	ExpectedShortfall    Value  `json:"expected_shortfall"`
	MaxDrawdown          Value  `json:"max_drawdown"`
	UlcerIndex           Value  `json:"ulcer_index"`
	Skewness             Value  `json:"skewness"`
	Kurtosis             Value  `json:"kurtosis"`
	Alpha                *Value `json:"alpha,omitempty"`
	Beta                 *Value `json:"beta,omitempty"`
	InformationRatio     *Value `json:"information_ratio,omitempty"`
	TrackingError        *Value `json:"tracking_error,omitempty"`
	TreynorRatio         *Value `json:"treynor_ratio,omitempty"`
}

func (r *Row) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Name", r.Name).
		Int("Observations", r.Observations).
		Float64("Volatility", float64(r.Volatility)).
		Float64("SharpeRatio", float64(r.SharpeRatio)).
		Float64("ValueAtRisk", float64(r.ValueAtRisk)).
		Float64("ExpectedShortfall", float64(r.ExpectedShortfall)).
		Float64("MaxDrawdown", float64(r.MaxDrawdown))
}

// Report is the collection of rows in column order of the source dataframe
type Report struct {
	Settings Settings `json:"-"`
	Rows     []*Row   `json:"rows"`
}

// Build computes a Row for every column of rets. benchmark may be nil; when
// set it must have one value per row of rets. Columns are evaluated
// concurrently. Metrics that need more observations than available are
// reported as NaN.
func Build(rets *dataframe.DataFrame, benchmark []float64, settings Settings) (*Report, error) {
	if _, err := metrics.ParseEstimator(string(settings.Method)); err != nil {
		return nil, err
	}

	if benchmark != nil && len(benchmark) != rets.Len() {
		return nil, errors.Wrapf(metrics.ErrLengthMismatch, "benchmark has %d values, returns have %d rows", len(benchmark), rets.Len())
	}

	rows := make([]*Row, rets.ColCount())

	var g errgroup.Group
	for colIdx := range rets.Vals {
		colIdx := colIdx
		g.Go(func() error {
			row, err := buildRow(rets.ColNames[colIdx], rets.Vals[colIdx], benchmark, settings)
			if err != nil {
				return errors.Wrapf(err, "series %s", rets.ColNames[colIdx])
			}
			rows[colIdx] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, row := range rows {
		log.Debug().Object("Row", row).Msg("computed metrics")
	}

	return &Report{Settings: settings, Rows: rows}, nil
}

func buildRow(name string, rets, benchmark []float64, settings Settings) (*Row, error) {
	rf := metrics.Scalar(settings.RiskFree)
	m := settings.Multiplier

	row := &Row{
		Name:         name,
		Observations: len(rets),
	}

	var err error
	collect := func(dst *Value, val float64, e error) {
		if err != nil {
			return
		}
		if e != nil && !errors.Is(e, metrics.ErrInsufficientData) {
			err = e
			return
		}
		if e != nil {
			val = math.NaN()
		}
		*dst = Value(val)
	}

	val, e := metrics.Volatility(rets, m)
	collect(&row.Volatility, val, e)

	val, e = metrics.SharpeRatio(rets, rf, m)
	collect(&row.SharpeRatio, val, e)

	val, e = metrics.AdjustedSharpeRatio(rets, rf, m)
	collect(&row.AdjustedSharpeRatio, val, e)

	val, e = metrics.SortinoRatio(rets, rf, m)
	collect(&row.SortinoRatio, val, e)

	val, e = metrics.OmegaRatio(rets, rf)
	collect(&row.OmegaRatio, val, e)

	val, e = metrics.UpsidePotentialRatio(rets, rf, metrics.Partial)
	collect(&row.UpsidePotentialRatio, val, e)

	tailRisk, e := metrics.EstimateTailRisk(rets, settings.Confidence, settings.Method, m)
	collect(&row.ValueAtRisk, tailRisk.VaR, e)
	collect(&row.ExpectedShortfall, tailRisk.ES, e)

	val, e = metrics.MaxDrawdown(rets, settings.Geometric)
	collect(&row.MaxDrawdown, val, e)

	val, e = metrics.UlcerIndex(rets, settings.Geometric)
	collect(&row.UlcerIndex, val, e)

	val, e = metrics.Skewness(rets, metrics.MomentSkewness)
	collect(&row.Skewness, val, e)

	val, e = metrics.Kurtosis(rets, metrics.ExcessKurtosis)
	collect(&row.Kurtosis, val, e)

	if benchmark != nil {
		row.Alpha, row.Beta = new(Value), new(Value)
		row.InformationRatio, row.TrackingError, row.TreynorRatio = new(Value), new(Value), new(Value)

		alpha, beta, e := metrics.CAPM(rets, benchmark, rf)
		collect(row.Alpha, alpha, e)
		collect(row.Beta, beta, e)

		val, e = metrics.InformationRatio(rets, metrics.Series(benchmark), m)
		collect(row.InformationRatio, val, e)

		val, e = metrics.TrackingError(rets, metrics.Series(benchmark), m)
		collect(row.TrackingError, val, e)

		val, e = metrics.TreynorRatio(rets, benchmark, rf, m)
		collect(row.TreynorRatio, val, e)
	}

	if err != nil {
		return nil, err
	}
	return row, nil
}

// JSON encodes the report
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Table renders the report with one column per series and one row per metric
func (r *Report) Table() string {
	if len(r.Rows) == 0 {
		return "<NO DATA>"
	}

	header := make([]string, 0, len(r.Rows)+1)
	header = append(header, "Metric")
	for _, row := range r.Rows {
		header = append(header, row.Name)
	}

	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	varLabel := fmt.Sprintf("VaR %s (%g)", r.Settings.Method, r.Settings.Confidence)
	esLabel := fmt.Sprintf("ES %s (%g)", r.Settings.Method, r.Settings.Confidence)

	lines := []struct {
		label string
		value func(*Row) *Value
	}{
		{"Volatility", func(row *Row) *Value { return &row.Volatility }},
		{"Sharpe Ratio", func(row *Row) *Value { return &row.SharpeRatio }},
		{"Adjusted Sharpe Ratio", func(row *Row) *Value { return &row.AdjustedSharpeRatio }},
		{"Sortino Ratio", func(row *Row) *Value { return &row.SortinoRatio }},
		{"Omega Ratio", func(row *Row) *Value { return &row.OmegaRatio }},
		{"Upside Potential Ratio", func(row *Row) *Value { return &row.UpsidePotentialRatio }},
		{varLabel, func(row *Row) *Value { return &row.ValueAtRisk }},
		{esLabel, func(row *Row) *Value { return &row.ExpectedShortfall }},
		{"Max Drawdown", func(row *Row) *Value { return &row.MaxDrawdown }},
		{"Ulcer Index", func(row *Row) *Value { return &row.UlcerIndex }},
		{"Skewness", func(row *Row) *Value { return &row.Skewness }},
		{"Excess Kurtosis", func(row *Row) *Value { return &row.Kurtosis }},
		{"Alpha", func(row *Row) *Value { return row.Alpha }},
		{"Beta", func(row *Row) *Value { return row.Beta }},
		{"Information Ratio", func(row *Row) *Value { return row.InformationRatio }},
		{"Tracking Error", func(row *Row) *Value { return row.TrackingError }},
		{"Treynor Ratio", func(row *Row) *Value { return row.TreynorRatio }},
	}

	for _, line := range lines {
		if line.value(r.Rows[0]) == nil {
			continue
		}
		cells := make([]string, 0, len(r.Rows)+1)
		cells = append(cells, line.label)
		for _, row := range r.Rows {
			cells = append(cells, formatValue(line.value(row)))
		}
		table.Append(cells)
	}

	table.Render()
	return s.String()
}

func formatValue(v *Value) string {
	if v == nil || math.IsNaN(float64(*v)) {
		return "-"
	}
	return fmt.Sprintf("%.4f", float64(*v))
}
