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

package metrics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/penny-vault/riskperf/metrics"
)

var _ = Describe("Risk contribution", func() {
	var cov *mat.SymDense

	BeforeEach(func() {
		cov = mat.NewSymDense(2, []float64{
			0.04, 0.01,
			0.01, 0.09,
		})
	})

	It("should attribute the portfolio variance to each asset", func() {
		rc, err := metrics.RiskContribution([]float64{0.5, 0.5}, cov)
		Expect(err).To(BeNil())
		expectSeries(rc, []float64{0.0125, 0.025}, 1e-15)
	})

	It("should compute shares that sum to one", func() {
		rrc, err := metrics.RelativeRiskContribution([]float64{0.5, 0.5}, cov)
		Expect(err).To(BeNil())
		expectSeries(rrc, []float64{1.0 / 3, 2.0 / 3}, 1e-12)
		Expect(floats.Sum(rrc)).Should(BeNumerically("~", 1, 1e-12))

		rrc, err = metrics.RelativeRiskContribution([]float64{0.2, 0.8}, cov)
		Expect(err).To(BeNil())
		Expect(floats.Sum(rrc)).Should(BeNumerically("~", 1, 1e-12))
	})

	It("should be NaN for a portfolio without variance", func() {
		rrc, err := metrics.RelativeRiskContribution([]float64{0, 0}, cov)
		Expect(err).To(BeNil())
		Expect(rrc).To(HaveLen(2))
		for _, v := range rrc {
			Expect(math.IsNaN(v)).Should(BeTrue())
		}
	})

	It("should fail when the weights do not match the covariance", func() {
		_, err := metrics.RiskContribution([]float64{0.2, 0.3, 0.5}, cov)
		Expect(err).To(MatchError(metrics.ErrNotSquare))
	})

	It("should estimate the covariance of return series", func() {
		est, err := metrics.CovarianceMatrix([][]float64{rets, bench})
		Expect(err).To(BeNil())
		Expect(est.SymmetricDim()).Should(Equal(2))
		Expect(math.Sqrt(est.At(0, 0))).Should(BeNumerically("~", 0.016740171245639434, 1e-12))
		Expect(est.At(0, 1)).Should(Equal(est.At(1, 0)))

		_, err = metrics.CovarianceMatrix([][]float64{rets, bench[:4]})
		Expect(err).To(MatchError(metrics.ErrLengthMismatch))

		_, err = metrics.CovarianceMatrix(nil)
		Expect(err).To(MatchError(metrics.ErrInsufficientData))
	})
})
