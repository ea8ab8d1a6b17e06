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
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CovarianceMatrix computes the sample covariance matrix of the given
// series, each of which is one asset's returns
func CovarianceMatrix(series [][]float64) (*mat.SymDense, error) {
	if len(series) == 0 {
		return nil, errors.Wrap(ErrInsufficientData, "no series provided")
	}

	n := len(series[0])
	if n < 2 {
		return nil, errors.Wrapf(ErrInsufficientData, "covariance needs 2 observations, got %d", n)
	}

	// observations are rows, assets are columns
	obs := mat.NewDense(n, len(series), nil)
	for colIdx, col := range series {
		if len(col) != n {
			return nil, errors.Wrapf(ErrLengthMismatch, "series %d has %d observations, expected %d", colIdx, len(col), n)
		}
		obs.SetCol(colIdx, col)
	}

	cov := mat.NewSymDense(len(series), nil)
	stat.CovarianceMatrix(cov, obs, nil)
	return cov, nil
}

// RiskContribution computes the contribution of each asset to the portfolio
// variance
//
//	RC_i = w_i (Σw)_i
func RiskContribution(weights []float64, cov mat.Symmetric) ([]float64, error) {
	rc, _, err := riskContribution(weights, cov)
	return rc, err
}

// RelativeRiskContribution computes the share of the portfolio variance
// attributable to each asset
//
//	RRC_i = w_i (Σw)_i / wᵀΣw
//
// The contributions sum to 1. When the portfolio variance is not positive the
// shares are undefined and every entry is NaN.
func RelativeRiskContribution(weights []float64, cov mat.Symmetric) ([]float64, error) {
	rc, variance, err := riskContribution(weights, cov)
	if err != nil {
		return nil, err
	}

	if !(variance > 0) {
		log.Debug().Float64("Variance", variance).Msg("portfolio variance is not positive; relative risk contribution undefined")
		for ii := range rc {
			rc[ii] = math.NaN()
		}
		return rc, nil
	}

	for ii := range rc {
		rc[ii] /= variance
	}
	return rc, nil
}

func riskContribution(weights []float64, cov mat.Symmetric) ([]float64, float64, error) {
	n := cov.SymmetricDim()
	if len(weights) != n {
		return nil, math.NaN(), errors.Wrapf(ErrNotSquare, "%d weights, covariance is %dx%d", len(weights), n, n)
	}

	if n == 0 {
		return nil, math.NaN(), errors.Wrap(ErrInsufficientData, "no assets provided")
	}

	w := mat.NewVecDense(n, append([]float64(nil), weights...))

	var marginal mat.VecDense
	marginal.MulVec(cov, w)

	rc := make([]float64, n)
	for ii := range rc {
		rc[ii] = weights[ii] * marginal.AtVec(ii)
	}

	return rc, mat.Dot(w, &marginal), nil
}
