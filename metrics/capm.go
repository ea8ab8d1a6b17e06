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

// CAPM estimates the α and β coefficients of the linear model
//
//	r_a - r_f = α + β (r_b - r_f) + ϵ
//
// by ordinary least squares, i.e. β = Cov(a - f, b - f) / Var(b - f) and
// α = E[a - f] - β E[b - f]. When the excess benchmark returns have zero
// variance β is undefined and both coefficients are NaN.
func CAPM(asset, benchmark []float64, riskFree Threshold) (alpha, beta float64, err error) {
	if len(asset) != len(benchmark) {
		return math.NaN(), math.NaN(), errors.Wrapf(ErrLengthMismatch, "%d asset returns, %d benchmark returns", len(asset), len(benchmark))
	}

	if len(asset) < 2 {
		return math.NaN(), math.NaN(), errors.Wrapf(ErrInsufficientData, "capm needs 2 observations, got %d", len(asset))
	}

	excessAsset, err := riskFree.excess(asset)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}

	excessBenchmark, err := riskFree.excess(benchmark)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}

	if stat.Variance(excessBenchmark, nil) == 0 {
		log.Debug().Int("N", len(benchmark)).Msg("benchmark excess returns have zero variance; beta undefined")
		return math.NaN(), math.NaN(), nil
	}

	alpha, beta = stat.LinearRegression(excessBenchmark, excessAsset, nil, false)
	return alpha, beta, nil
}

// JensenAlpha is the average return above or below that predicted by CAPM
// (Bacon, 2008, p. 72)
func JensenAlpha(asset, benchmark []float64, riskFree Threshold) (float64, error) {
	alpha, _, err := CAPM(asset, benchmark, riskFree)
	return alpha, err
}

// ModifiedJensen divides Jensen's alpha by beta, the systematic risk-adjusted
// return per unit of systematic risk (Bacon, 2008, p. 77). NaN when beta is
// zero or undefined.
func ModifiedJensen(asset, benchmark []float64, riskFree Threshold) (float64, error) {
	alpha, beta, err := CAPM(asset, benchmark, riskFree)
	if err != nil {
		return math.NaN(), err
	}
	return safeDiv(alpha, beta), nil
}
