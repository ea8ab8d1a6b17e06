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
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Threshold is either a single value applied to every observation or a
// series paired element-wise with the returns. It is used for thresholds,
// minimum acceptable returns, risk-free rates and benchmarks.
type Threshold struct {
	scalar float64
	series []float64
}

// Scalar creates a threshold that broadcasts v against every observation
func Scalar(v float64) Threshold {
	return Threshold{scalar: v}
}

// Series creates a threshold that is paired element-wise with the returns
func Series(v []float64) Threshold {
	if v == nil {
		v = []float64{}
	}
	return Threshold{series: v}
}

// IsSeries reports whether the threshold is element-wise
func (t Threshold) IsSeries() bool {
	return t.series != nil
}

// At returns the threshold applicable to observation i
func (t Threshold) At(i int) float64 {
	if t.series != nil {
		return t.series[i]
	}
	return t.scalar
}

// validate fails when an element-wise threshold does not match n observations
func (t Threshold) validate(n int) error {
	if t.series != nil && len(t.series) != n {
		return errors.Wrapf(ErrLengthMismatch, "threshold has %d values, returns have %d", len(t.series), n)
	}
	return nil
}

// excess returns x[i] - t.At(i) as a new slice
func (t Threshold) excess(x []float64) ([]float64, error) {
	if err := t.validate(len(x)); err != nil {
		return nil, err
	}
	res := make([]float64, len(x))
	if t.series != nil {
		floats.SubTo(res, x, t.series)
		return res, nil
	}
	copy(res, x)
	floats.AddConst(-t.scalar, res)
	return res, nil
}
