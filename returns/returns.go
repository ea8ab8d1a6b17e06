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

// Package returns converts price series into simple or log return series.
// Price series should be regularly spaced, for example hourly or daily data.
package returns

import (
	"math"
	"time"

	"github.com/penny-vault/riskperf/dataframe"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// Simple calculates the N-1 simple returns of N prices
//
//	r_t = P_t / P_{t-1} - 1
func Simple(prices []float64) ([]float64, error) {
	if err := validate(prices, false); err != nil {
		return nil, err
	}

	rets := make([]float64, len(prices)-1)
	copy(rets, prices[1:])
	floats.Div(rets, prices[:len(prices)-1])
	floats.AddConst(-1, rets)
	return rets, nil
}

// Log calculates the N-1 log returns of N prices
//
//	r_t = log(P_t / P_{t-1})
func Log(prices []float64) ([]float64, error) {
	if err := validate(prices, true); err != nil {
		return nil, err
	}

	rets := make([]float64, len(prices)-1)
	for ii := range rets {
		rets[ii] = math.Log(prices[ii+1] / prices[ii])
	}
	return rets, nil
}

// SimpleFrame calculates simple returns for each column of a price
// dataframe, one column per asset. The result has one row less than prices
// and starts at the second date. Columns are processed concurrently.
func SimpleFrame(prices *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	return prices.Map(Simple)
}

// LogFrame calculates log returns for each column of a price dataframe, one
// column per asset. The result has one row less than prices and starts at
// the second date. Columns are processed concurrently.
func LogFrame(prices *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	return prices.Map(Log)
}

// SimpleWithDates calculates simple returns of timestamped prices. When
// dropOvernight is true only returns between two observations on the same
// calendar day are kept. It returns the date at which each surviving return
// was realized, the returns, and the index in prices of each of those
// observations.
func SimpleWithDates(dates []time.Time, prices []float64, dropOvernight bool) ([]time.Time, []float64, []int, error) {
	return withDates(dates, prices, dropOvernight, false)
}

// LogWithDates is the log return counterpart of SimpleWithDates
func LogWithDates(dates []time.Time, prices []float64, dropOvernight bool) ([]time.Time, []float64, []int, error) {
	return withDates(dates, prices, dropOvernight, true)
}

func withDates(dates []time.Time, prices []float64, dropOvernight bool, logReturns bool) ([]time.Time, []float64, []int, error) {
	if len(dates) != len(prices) {
		return nil, nil, nil, errors.Wrapf(ErrLengthMismatch, "%d dates, %d prices", len(dates), len(prices))
	}

	if err := validate(prices, logReturns); err != nil {
		return nil, nil, nil, err
	}

	for ii := 1; ii < len(dates); ii++ {
		if dates[ii].Before(dates[ii-1]) {
			return nil, nil, nil, errors.Wrapf(ErrDatesNotSorted, "%s before %s", dates[ii], dates[ii-1])
		}
	}

	retDates := make([]time.Time, 0, len(dates)-1)
	rets := make([]float64, 0, len(prices)-1)
	indices := make([]int, 0, len(prices)-1)

	for ii := 1; ii < len(prices); ii++ {
		if dropOvernight && !sameDay(dates[ii-1], dates[ii]) {
			continue
		}

		r := prices[ii] / prices[ii-1]
		if logReturns {
			r = math.Log(r)
		} else {
			r--
		}

		retDates = append(retDates, dates[ii])
		rets = append(rets, r)
		indices = append(indices, ii)
	}

	if dropOvernight {
		log.Debug().Int("Dropped", len(prices)-1-len(rets)).Msg("dropped overnight returns")
	}

	return retDates, rets, indices, nil
}

func validate(prices []float64, strictlyPositive bool) error {
	if len(prices) < 2 {
		return errors.Wrapf(ErrInsufficientData, "got %d", len(prices))
	}

	// the last price is never a divisor
	for ii, p := range prices[:len(prices)-1] {
		if p == 0 || (strictlyPositive && p < 0) {
			return errors.Wrapf(ErrInvalidPrice, "price %f at index %d", p, ii)
		}
	}

	if strictlyPositive && prices[len(prices)-1] <= 0 {
		return errors.Wrapf(ErrInvalidPrice, "price %f at index %d", prices[len(prices)-1], len(prices)-1)
	}

	return nil
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.In(a.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
