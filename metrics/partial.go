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

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// LowerPartialMoment computes the n-th order lower partial moment of returns
// relative to threshold:
//
//	LPM_n = 1/D Σ max(0, threshold_i - returns_i)^n
//
// D is the number of returns for Full and the number of returns strictly
// below the threshold for Partial. Only observations strictly below the
// threshold contribute, so LPM_0 is the shortfall frequency. This departs
// from the literal formula with 0⁰ = 1, under which LPM_0 would always be 1
// with the Full denominator. When method is
// Partial and no observation lies below the threshold the moment is
// undefined and NaN is returned.
func LowerPartialMoment(returns []float64, threshold Threshold, n float64, method Denominator) (float64, error) {
	return partialMoment(returns, threshold, n, method, -1)
}

// HigherPartialMoment mirrors LowerPartialMoment for deviations above the
// threshold:
//
//	HPM_n = 1/D Σ max(0, returns_i - threshold_i)^n
func HigherPartialMoment(returns []float64, threshold Threshold, n float64, method Denominator) (float64, error) {
	return partialMoment(returns, threshold, n, method, 1)
}

// DownsideDeviation is the semi-standard deviation below threshold,
// sqrt(LPM_2). Undefined cases follow LowerPartialMoment.
func DownsideDeviation(returns []float64, threshold Threshold, method Denominator) (float64, error) {
	lpm, err := LowerPartialMoment(returns, threshold, 2, method)
	if err != nil {
		return math.NaN(), err
	}
	return math.Sqrt(lpm), nil
}

// UpsideDeviation is the semi-standard deviation above threshold,
// sqrt(HPM_2). Undefined cases follow HigherPartialMoment.
func UpsideDeviation(returns []float64, threshold Threshold, method Denominator) (float64, error) {
	hpm, err := HigherPartialMoment(returns, threshold, 2, method)
	if err != nil {
		return math.NaN(), err
	}
	return math.Sqrt(hpm), nil
}

// partialMoment accumulates deviations on one side of the threshold; side
// is -1 for the lower and +1 for the higher partial moment
func partialMoment(returns []float64, threshold Threshold, n float64, method Denominator, side float64) (float64, error) {
	switch method {
	case Full, Partial:
	default:
		return math.NaN(), errors.Wrapf(ErrUnknownMethod, "denominator %q", method)
	}

	if n < 0 || math.IsNaN(n) {
		return math.NaN(), errors.Wrapf(ErrInvalidMomentOrder, "got %f", n)
	}

	if len(returns) == 0 {
		return math.NaN(), errors.Wrap(ErrInsufficientData, "partial moment of empty series")
	}

	if err := threshold.validate(len(returns)); err != nil {
		return math.NaN(), err
	}

	sum := 0.0
	cnt := 0
	for ii, r := range returns {
		d := side * (r - threshold.At(ii))
		if d > 0 {
			sum += power(d, n)
			cnt++
		}
	}

	var denom int
	switch method {
	case Full:
		denom = len(returns)
	case Partial:
		denom = cnt
	}

	if denom == 0 {
		log.Debug().Float64("Side", side).Int("N", len(returns)).Bool("SeriesThreshold", threshold.IsSeries()).Msg("no observations beyond threshold; partial moment undefined")
		return math.NaN(), nil
	}

	return sum / float64(denom), nil
}

func power(x, n float64) float64 {
	switch n {
	case 1:
		return x
	case 2:
		return x * x // much faster than math.Pow
	default:
		return math.Pow(x, n)
	}
}
