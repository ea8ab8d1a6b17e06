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

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TailRisk holds the Value-at-Risk and Expected Shortfall of a series at a
// single significance level. Both are reported as positive loss magnitudes.
type TailRisk struct {
	Alpha  float64
	Method Estimator
	VaR    float64
	ES     float64
}

// ValueAtRisk computes the loss that is not exceeded with probability
// 1 - alpha, e.g. use alpha = 0.05 for 95% confidence. The result is scaled
// by sqrt(multiplier) (12 annualizes monthly returns, 252 daily returns).
//
//	historical:      -quantile(returns, α)
//	gaussian:        -(μ + σ Φ⁻¹(α))
//	cornish_fisher:  -(μ + σ z_cf), where
//	                 z_cf = z + (z²-1)S/6 + (z³-3z)K/24 - (2z³-5z)S²/36, z = Φ⁻¹(α)
//
// S and K are the sample skewness and sample excess kurtosis (see
// FisherPearson and CornishFisherKurtosis).
//
// Sources:
// Favre, Laurent and Galeano, Jose-Antonio (2002). Mean-Modified Value-at-Risk
// Optimization with Hedge Funds. Journal of Alternative Investment.
func ValueAtRisk(returns []float64, alpha float64, method Estimator, multiplier float64) (float64, error) {
	tr, err := EstimateTailRisk(returns, alpha, method, multiplier)
	if err != nil {
		return math.NaN(), err
	}
	return tr.VaR, nil
}

// ExpectedShortfall computes the expected loss in the worst alpha share of
// outcomes (also known as CVaR or expected tail loss). The result is scaled by
// sqrt(multiplier).
//
//	historical:      -mean(returns ≤ quantile(returns, α))
//	gaussian:        -(μ - σ φ(z) / α)
//	cornish_fisher:  -(μ - σ φ(g) / α · [1 + g³S/6 + (g⁴-2g²-1)K/24 + (g⁶-9g⁴+9g²+3)S²/72])
//
// where g = z_cf. The Cornish-Fisher tail expectation integrates the
// Edgeworth density up to g; it is floored at the Cornish-Fisher VaR because
// the expansion can otherwise return a tail mean above the quantile for
// extreme moments.
//
// Sources:
// Boudt, Kris and Peterson, Brian and Croux, Christophe (2008). Estimation and
// Decomposition of Downside Risk for Portfolios with Non-Normal Returns.
// Journal of Risk.
func ExpectedShortfall(returns []float64, alpha float64, method Estimator, multiplier float64) (float64, error) {
	tr, err := EstimateTailRisk(returns, alpha, method, multiplier)
	if err != nil {
		return math.NaN(), err
	}
	return tr.ES, nil
}

// EstimateTailRisk computes both VaR and ES with a single pass over the
// sample statistics
func EstimateTailRisk(returns []float64, alpha float64, method Estimator, multiplier float64) (TailRisk, error) {
	tr := TailRisk{Alpha: alpha, Method: method, VaR: math.NaN(), ES: math.NaN()}

	if !(alpha > 0 && alpha < 1) {
		return tr, errors.Wrapf(ErrInvalidConfidence, "got %f", alpha)
	}

	var minObs int
	switch method {
	case Historical:
		minObs = 1
	case Gaussian:
		minObs = 2
	case CornishFisher:
		minObs = 4
	default:
		return tr, errors.Wrapf(ErrUnknownMethod, "estimator %q", method)
	}

	if len(returns) < minObs {
		return tr, errors.Wrapf(ErrInsufficientData, "%s estimator needs %d observations, got %d", method, minObs, len(returns))
	}

	var q, es float64
	switch method {
	case Historical:
		q, es = historicalTail(returns, alpha)
	case Gaussian:
		mu, sigma := stat.MeanStdDev(returns, nil)
		q, es = cornishFisherTail(mu, sigma, 0, 0, alpha)
	case CornishFisher:
		mu, sigma := stat.MeanStdDev(returns, nil)
		var skew, kurt float64
		if sigma > 0 {
			skew = stat.Skew(returns, nil)
			kurt = stat.ExKurtosis(returns, nil)
		} else {
			log.Debug().Int("N", len(returns)).Msg("zero variance; cornish-fisher expansion collapses to the mean")
		}
		q, es = cornishFisherTail(mu, sigma, skew, kurt, alpha)
	}

	scale := math.Sqrt(multiplier)
	tr.VaR = -q * scale
	tr.ES = -es * scale
	return tr, nil
}

// historicalTail returns the empirical alpha-quantile and the mean of all
// observations at or below it. Both are NaN when returns contain a NaN.
func historicalTail(returns []float64, alpha float64) (q, tailMean float64) {
	if floats.HasNaN(returns) {
		log.Debug().Int("N", len(returns)).Msg("returns contain NaN; historical tail risk undefined")
		return math.NaN(), math.NaN()
	}

	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)

	q = quantile(sorted, alpha)

	sum := 0.0
	cnt := 0
	for _, r := range sorted {
		if r > q {
			break
		}
		sum += r
		cnt++
	}
	return q, sum / float64(cnt)
}

// quantile linearly interpolates between the order statistics of sorted at
// position (n-1)p
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// cornishFisherTail returns the alpha-quantile and the tail expectation of a
// distribution with mean mu, standard deviation sigma, skewness s and excess
// kurtosis k under the Cornish-Fisher expansion. With s = k = 0 this is the
// Gaussian quantile and tail expectation.
func cornishFisherTail(mu, sigma, s, k, alpha float64) (q, tailMean float64) {
	z := distuv.UnitNormal.Quantile(alpha)
	g := cornishFisherQuantile(z, s, k)

	g2 := g * g
	g3 := g2 * g
	g4 := g2 * g2
	g6 := g3 * g3
	correction := 1 + g3*s/6 + (g4-2*g2-1)*k/24 + (g6-9*g4+9*g2+3)*s*s/72
	e := -distuv.UnitNormal.Prob(g) / alpha * correction

	q = mu + sigma*g
	tailMean = math.Min(mu+sigma*e, q)
	return q, tailMean
}

// cornishFisherQuantile adjusts the standard normal quantile z for skewness
// s and excess kurtosis k
func cornishFisherQuantile(z, s, k float64) float64 {
	z2 := z * z
	z3 := z2 * z
	return z + (z2-1)*s/6 + (z3-3*z)*k/24 - (2*z3-5*z)*s*s/36
}
