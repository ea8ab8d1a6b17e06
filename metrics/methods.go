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

import "github.com/pkg/errors"

// Estimator selects how the return distribution is modeled by ValueAtRisk
// and ExpectedShortfall
type Estimator string

const (
	Historical    Estimator = "historical"
	Gaussian      Estimator = "gaussian"
	CornishFisher Estimator = "cornish_fisher"
)

// Denominator selects the divisor of a partial moment: Full divides by the
// number of observations, Partial by the number of observations on the
// relevant side of the threshold
type Denominator string

const (
	Full    Denominator = "full"
	Partial Denominator = "partial"
)

// SkewnessMethod selects the skewness formula
type SkewnessMethod string

const (
	MomentSkewness SkewnessMethod = "moment"
	FisherPearson  SkewnessMethod = "fisher_pearson"
	SampleSkewness SkewnessMethod = "sample"
)

// KurtosisMethod selects the kurtosis formula
type KurtosisMethod string

const (
	ExcessKurtosis        KurtosisMethod = "excess"
	MomentKurtosis        KurtosisMethod = "moment"
	CornishFisherKurtosis KurtosisMethod = "cornish_fisher"
)

// ParseEstimator converts a configuration string into an Estimator
func ParseEstimator(s string) (Estimator, error) {
	switch e := Estimator(s); e {
	case Historical, Gaussian, CornishFisher:
		return e, nil
	default:
		return "", errors.Wrapf(ErrUnknownMethod, "estimator %q", s)
	}
}

// ParseDenominator converts a configuration string into a Denominator
func ParseDenominator(s string) (Denominator, error) {
	switch d := Denominator(s); d {
	case Full, Partial:
		return d, nil
	default:
		return "", errors.Wrapf(ErrUnknownMethod, "denominator %q", s)
	}
}

// ParseSkewnessMethod converts a configuration string into a SkewnessMethod
func ParseSkewnessMethod(s string) (SkewnessMethod, error) {
	switch m := SkewnessMethod(s); m {
	case MomentSkewness, FisherPearson, SampleSkewness:
		return m, nil
	default:
		return "", errors.Wrapf(ErrUnknownMethod, "skewness %q", s)
	}
}

// ParseKurtosisMethod converts a configuration string into a KurtosisMethod
func ParseKurtosisMethod(s string) (KurtosisMethod, error) {
	switch m := KurtosisMethod(s); m {
	case ExcessKurtosis, MomentKurtosis, CornishFisherKurtosis:
		return m, nil
	default:
		return "", errors.Wrapf(ErrUnknownMethod, "kurtosis %q", s)
	}
}
