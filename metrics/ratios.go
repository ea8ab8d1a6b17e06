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
	"gonum.org/v1/gonum/stat"
)

// SharpeRatio calculates the Sharpe Ratio according to the original 1966
// definition: mean excess return per unit of total volatility.
//
//	SR = E[returns - risk_free] / σ(returns) × √multiplier
//
// NaN when returns have zero variance. For Sharpe's 1994 revision see
// InformationRatio.
func SharpeRatio(returns []float64, riskFree Threshold, multiplier float64) (float64, error) {
	if len(returns) < 2 {
		return math.NaN(), errors.Wrapf(ErrInsufficientData, "sharpe ratio needs 2 observations, got %d", len(returns))
	}

	excessReturn, err := riskFree.excess(returns)
	if err != nil {
		return math.NaN(), err
	}

	return safeDiv(stat.Mean(excessReturn, nil), stat.StdDev(returns, nil)) * math.Sqrt(multiplier), nil
}

// AdjustedSharpeRatio penalizes the Sharpe Ratio of excess returns for
// negative skewness and excess kurtosis (Pezier and White, 2006).
//
//	ASR = SR [1 + (S/6) SR - ((K-3)/24) SR²] × √multiplier
//
// S is the moment skewness and K the excess kurtosis of the excess returns.
// Requires at least 4 observations; NaN for zero variance.
func AdjustedSharpeRatio(returns []float64, riskFree Threshold, multiplier float64) (float64, error) {
	if len(returns) < 4 {
		return math.NaN(), errors.Wrapf(ErrInsufficientData, "adjusted sharpe ratio needs 4 observations, got %d", len(returns))
	}

	excessReturn, err := riskFree.excess(returns)
	if err != nil {
		return math.NaN(), err
	}

	mean, std := stat.MeanStdDev(excessReturn, nil)
	if std == 0 {
		return math.NaN(), nil
	}
	sr := mean / std

	skew, err := Skewness(excessReturn, MomentSkewness)
	if err != nil {
		return math.NaN(), err
	}

	kurt, err := Kurtosis(excessReturn, ExcessKurtosis)
	if err != nil {
		return math.NaN(), err
	}

	return sr * (1 + skew/6*sr - (kurt-3)/24*sr*sr) * math.Sqrt(multiplier), nil
}

// SortinoRatio is a downside risk-adjusted performance measure: only returns
// below the minimum acceptable return (MAR) count as risk.
//
//	Sortino = E[returns - MAR] / downside_deviation(returns, MAR) × √multiplier
//
// The downside deviation uses the Full denominator. NaN when no return falls
// below the MAR.
//
// Sources:
// Sortino, F. and Price, L. (1996). Performance Measurement in a Downside Risk
// Framework. Journal of Investing.
func SortinoRatio(returns []float64, mar Threshold, multiplier float64) (float64, error) {
	excessReturn, err := mar.excess(returns)
	if err != nil {
		return math.NaN(), err
	}

	downsideDeviation, err := DownsideDeviation(returns, mar, Full)
	if err != nil {
		return math.NaN(), err
	}

	return safeDiv(stat.Mean(excessReturn, nil), downsideDeviation) * math.Sqrt(multiplier), nil
}

// InformationRatio is the active return divided by the tracking error
// (Sharpe's 1994 revision of the Sharpe Ratio).
//
//	IR = E[asset - benchmark] / σ(asset - benchmark) × √multiplier
func InformationRatio(asset []float64, benchmark Threshold, multiplier float64) (float64, error) {
	active, err := activeReturns(asset, benchmark)
	if err != nil {
		return math.NaN(), err
	}

	mean, std := stat.MeanStdDev(active, nil)
	return safeDiv(mean, std) * math.Sqrt(multiplier), nil
}

// TrackingError is the ex-post standard deviation of active returns
//
//	TE = σ(asset - benchmark) × √multiplier
func TrackingError(asset []float64, benchmark Threshold, multiplier float64) (float64, error) {
	active, err := activeReturns(asset, benchmark)
	if err != nil {
		return math.NaN(), err
	}

	return stat.StdDev(active, nil) * math.Sqrt(multiplier), nil
}

// TreynorRatio also known as the reward-to-volatility ratio divides the mean
// excess return by the CAPM beta.
//
//	TR = E[asset - risk_free] / β × multiplier
//
// NaN when beta is zero or undefined.
func TreynorRatio(asset, benchmark []float64, riskFree Threshold, multiplier float64) (float64, error) {
	_, beta, err := CAPM(asset, benchmark, riskFree)
	if err != nil {
		return math.NaN(), err
	}

	excessReturn, err := riskFree.excess(asset)
	if err != nil {
		return math.NaN(), err
	}

	return safeDiv(stat.Mean(excessReturn, nil), beta) * multiplier, nil
}

// OmegaRatio is the probability weighted ratio of gains over losses relative
// to target:
//
//	Ω = E[max(returns - target, 0)] / E[max(target - returns, 0)]
//
// NaN when no return falls below the target.
func OmegaRatio(returns []float64, target Threshold) (float64, error) {
	gains, err := HigherPartialMoment(returns, target, 1, Full)
	if err != nil {
		return math.NaN(), err
	}

	losses, err := LowerPartialMoment(returns, target, 1, Full)
	if err != nil {
		return math.NaN(), err
	}

	return safeDiv(gains, losses), nil
}

// UpsidePotentialRatio compares the expected gain above threshold with the
// downside deviation below it.
//
//	UPR = HPM_1(threshold) / sqrt(LPM_2(threshold))
//
// Both moments use the same denominator method; Partial is the customary
// choice. NaN when either side of the threshold is empty under Partial or no
// return falls below the threshold.
//
// Sources:
// Plantinga, A., van der Meer, R. and Sortino, F. (2001). The Impact of
// Downside Risk on Risk-Adjusted Performance of Mutual Funds in the Euronext
// Markets.
func UpsidePotentialRatio(returns []float64, threshold Threshold, method Denominator) (float64, error) {
	upside, err := HigherPartialMoment(returns, threshold, 1, method)
	if err != nil {
		return math.NaN(), err
	}

	downsideDeviation, err := DownsideDeviation(returns, threshold, method)
	if err != nil {
		return math.NaN(), err
	}

	return safeDiv(upside, downsideDeviation), nil
}

func activeReturns(asset []float64, benchmark Threshold) ([]float64, error) {
	if len(asset) < 2 {
		return nil, errors.Wrapf(ErrInsufficientData, "active returns need 2 observations, got %d", len(asset))
	}
	return benchmark.excess(asset)
}

// safeDiv returns NaN instead of ±Inf when the denominator is zero
func safeDiv(num, den float64) float64 {
	if den == 0 || math.IsNaN(den) {
		return math.NaN()
	}
	return num / den
}
