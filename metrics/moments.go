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
	"gonum.org/v1/gonum/stat"
)

// Mean computes the arithmetic mean of x; NaN for an empty series
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Mean(x, nil)
}

// StdDev computes the sample standard deviation (N-1 denominator) of x;
// NaN when fewer than 2 observations are provided
func StdDev(x []float64) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.StdDev(x, nil)
}

// Volatility is the sample standard deviation of returns scaled by
// sqrt(multiplier), e.g. use 252 to annualize daily returns
//
//	σ_vol = σ(returns) × √multiplier
func Volatility(returns []float64, multiplier float64) (float64, error) {
	if len(returns) < 2 {
		return math.NaN(), errors.Wrapf(ErrInsufficientData, "volatility needs 2 observations, got %d", len(returns))
	}
	return stat.StdDev(returns, nil) * math.Sqrt(multiplier), nil
}

// Skewness computes the skewness of x using the requested method. At least
// 3 observations are required. A series with zero variance has undefined
// skewness and NaN is returned.
//
//	moment:          m3 / m2^(3/2)
//	fisher_pearson:  n / ((n-1)(n-2)) Σ ((x - x̄) / s)³
//	sample:          1/n Σ ((x - x̄) / s)³
//
// where m_k are central moments and s is the sample standard deviation
func Skewness(x []float64, method SkewnessMethod) (float64, error) {
	switch method {
	case MomentSkewness, FisherPearson, SampleSkewness:
	default:
		return math.NaN(), errors.Wrapf(ErrUnknownMethod, "skewness %q", method)
	}

	n := len(x)
	if n < 3 {
		return math.NaN(), errors.Wrapf(ErrInsufficientData, "skewness needs 3 observations, got %d", n)
	}

	mean, std := stat.MeanStdDev(x, nil)
	if std == 0 {
		log.Debug().Int("N", n).Msg("skewness undefined for series with zero variance")
		return math.NaN(), nil
	}

	switch method {
	case MomentSkewness:
		m2 := stat.MomentAbout(2, x, mean, nil)
		m3 := stat.MomentAbout(3, x, mean, nil)
		return m3 / math.Pow(m2, 1.5), nil
	case FisherPearson:
		return stat.Skew(x, nil), nil
	default:
		// SampleSkewness
		return stat.MomentAbout(3, x, mean, nil) / (std * std * std), nil
	}
}

// Kurtosis computes the kurtosis of x using the requested method. At least
// 4 observations are required. A series with zero variance has undefined
// kurtosis and NaN is returned.
//
//	excess:          m4 / m2² - 3
//	moment:          m4 / m2²
//	cornish_fisher:  n(n+1) / ((n-1)(n-2)(n-3)) Σ ((x - x̄) / s)⁴ - 3(n-1)² / ((n-2)(n-3))
//
// The cornish_fisher variant is the small-sample corrected excess kurtosis
// consumed by the Cornish-Fisher expansion in ValueAtRisk and ExpectedShortfall.
func Kurtosis(x []float64, method KurtosisMethod) (float64, error) {
	switch method {
	case ExcessKurtosis, MomentKurtosis, CornishFisherKurtosis:
	default:
		return math.NaN(), errors.Wrapf(ErrUnknownMethod, "kurtosis %q", method)
	}

	n := len(x)
	if n < 4 {
		return math.NaN(), errors.Wrapf(ErrInsufficientData, "kurtosis needs 4 observations, got %d", n)
	}

	mean, std := stat.MeanStdDev(x, nil)
	if std == 0 {
		log.Debug().Int("N", n).Msg("kurtosis undefined for series with zero variance")
		return math.NaN(), nil
	}

	switch method {
	case CornishFisherKurtosis:
		return stat.ExKurtosis(x, nil), nil
	default:
		m2 := stat.MomentAbout(2, x, mean, nil)
		kurt := stat.MomentAbout(4, x, mean, nil) / (m2 * m2)
		if method == ExcessKurtosis {
			kurt -= 3
		}
		return kurt, nil
	}
}
