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

package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// DrawDown is a single episode in which wealth falls from a previous peak.
// Begin is the date of the peak, End the date of the trough and Recovery the
// date wealth first regained the peak (zero if it never recovered).
type DrawDown struct {
	Begin       time.Time
	End         time.Time
	Recovery    time.Time
	LossPercent float64
}

func (o *DrawDown) MarshalZerologObject(e *zerolog.Event) {
	e.Time("Begin", o.Begin).Time("End", o.End).Time("RecoveryDate", o.Recovery).Float64("LossPercent", o.LossPercent)
}

// Drawdowns calculates the drawdown path of a returns series. When geometric
// is true wealth compounds (cumulative product of 1 + r) and the drawdown is
// the relative decline from the running peak; otherwise wealth is the
// cumulative sum of returns (e.g. log-returns) and the drawdown is the
// absolute decline from the running peak. The path has one entry per return
// in input order and every entry is <= 0.
//
// A geometric path is undefined while the running peak is not positive, e.g.
// when the first return is -1 and wealth is wiped out before any peak above
// zero was observed; those entries are NaN.
func Drawdowns(returns []float64, geometric bool) ([]float64, error) {
	if len(returns) == 0 {
		return nil, errors.Wrap(ErrInsufficientData, "drawdowns of empty series")
	}

	wealth := make([]float64, len(returns))
	if geometric {
		for ii, r := range returns {
			wealth[ii] = 1 + r
		}
		floats.CumProd(wealth, wealth)
	} else {
		floats.CumSum(wealth, returns)
	}

	return peakGap(wealth, geometric), nil
}

// DrawdownsPnL calculates the drawdown path of a profit-and-loss series, e.g.
// daily equity changes in USD: cumulative PnL minus its running maximum
func DrawdownsPnL(pnl []float64) ([]float64, error) {
	if len(pnl) == 0 {
		return nil, errors.Wrap(ErrInsufficientData, "drawdowns of empty series")
	}

	cum := make([]float64, len(pnl))
	floats.CumSum(cum, pnl)
	return peakGap(cum, false), nil
}

// MaxDrawdown returns the deepest point of the drawdown path
func MaxDrawdown(returns []float64, geometric bool) (float64, error) {
	dd, err := Drawdowns(returns, geometric)
	if err != nil {
		return math.NaN(), err
	}
	return floats.Min(dd), nil
}

// DrawDownEpisodes splits the compounded drawdown path of returns into
// individual episodes. dates[i] is the date at which returns[i] was
// realized. A drawdown that has not recovered by the last date is included
// with a zero Recovery.
func DrawDownEpisodes(dates []time.Time, returns []float64, geometric bool) ([]*DrawDown, error) {
	if len(dates) != len(returns) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d dates for %d returns", len(dates), len(returns))
	}

	dd, err := Drawdowns(returns, geometric)
	if err != nil {
		return nil, err
	}

	allDrawDowns := []*DrawDown{}
	var drawDown *DrawDown
	for ii, loss := range dd {
		if loss < 0 {
			if drawDown == nil {
				// the running peak is always observed before the first loss
				drawDown = &DrawDown{
					Begin:       dates[ii-1],
					End:         dates[ii],
					LossPercent: loss,
				}
			}

			if loss < drawDown.LossPercent {
				drawDown.End = dates[ii]
				drawDown.LossPercent = loss
			}
		} else if drawDown != nil {
			drawDown.Recovery = dates[ii]
			allDrawDowns = append(allDrawDowns, drawDown)
			drawDown = nil
		}
	}

	if drawDown != nil {
		allDrawDowns = append(allDrawDowns, drawDown)
	}

	return allDrawDowns, nil
}

// TopDrawDowns returns the n deepest episodes ordered from worst to best. A
// negative n returns no episodes.
func TopDrawDowns(episodes []*DrawDown, n int) []*DrawDown {
	if n < 0 {
		n = 0
	}

	sorted := make([]*DrawDown, len(episodes))
	copy(sorted, episodes)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LossPercent < sorted[j].LossPercent
	})

	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// UlcerIndex measures downside risk in terms of both depth and duration of
// declines: the root mean square of the drawdown path
func UlcerIndex(returns []float64, geometric bool) (float64, error) {
	dd, err := Drawdowns(returns, geometric)
	if err != nil {
		return math.NaN(), err
	}
	return math.Sqrt(floats.Dot(dd, dd) / float64(len(dd))), nil
}

// CalmarRatio is the annualized compounded return divided by the magnitude
// of the maximum (geometric) drawdown. NaN when the series never draws down.
func CalmarRatio(returns []float64, multiplier float64) (float64, error) {
	maxDD, err := MaxDrawdown(returns, true)
	if err != nil {
		return math.NaN(), err
	}

	if maxDD == 0 {
		return math.NaN(), nil
	}

	growth := 1.0
	for _, r := range returns {
		growth *= 1 + r
	}
	cagr := math.Pow(growth, multiplier/float64(len(returns))) - 1

	return cagr / -maxDD, nil
}

// peakGap computes the decline of every wealth observation from the running
// maximum of wealth observed so far
func peakGap(wealth []float64, relative bool) []float64 {
	res := make([]float64, len(wealth))
	peak := math.Inf(-1)
	for ii, w := range wealth {
		peak = math.Max(peak, w)
		if relative {
			if peak <= 0 {
				log.Debug().Int("Index", ii).Float64("Peak", peak).Msg("no positive wealth peak; relative drawdown undefined")
				res[ii] = math.NaN()
				continue
			}
			res[ii] = w/peak - 1
		} else {
			res[ii] = w - peak
		}
	}
	return res
}
