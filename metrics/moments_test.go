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

	"github.com/penny-vault/riskperf/metrics"
)

var _ = Describe("Moments", func() {
	Describe("when calculating volatility", func() {
		It("should equal the sample standard deviation", func() {
			vol, err := metrics.Volatility(rets, 1)
			Expect(err).To(BeNil())
			Expect(vol).Should(BeNumerically("~", 0.016740171245639434, 1e-12))
		})

		It("should scale by the square root of the multiplier", func() {
			vol, err := metrics.Volatility(rets, 252)
			Expect(err).To(BeNil())
			Expect(vol).Should(BeNumerically("~", 0.016740171245639434*math.Sqrt(252), 1e-12))
		})

		It("should fail with a single observation", func() {
			_, err := metrics.Volatility([]float64{0.01}, 1)
			Expect(err).To(MatchError(metrics.ErrInsufficientData))
		})
	})

	Describe("when calculating mean and standard deviation", func() {
		It("should be NaN for series that are too short", func() {
			Expect(math.IsNaN(metrics.Mean(nil))).Should(BeTrue())
			Expect(math.IsNaN(metrics.StdDev([]float64{1}))).Should(BeTrue())
		})

		It("should use the N-1 denominator", func() {
			Expect(metrics.Mean(rets)).Should(BeNumerically("~", 0.0013, 1e-12))
			Expect(metrics.StdDev([]float64{1, 2, 3, 4})).Should(BeNumerically("~", math.Sqrt(5.0/3.0), 1e-12))
		})
	})

	DescribeTable("when calculating skewness",
		func(method metrics.SkewnessMethod, expected float64) {
			skew, err := metrics.Skewness(rets, method)
			Expect(err).To(BeNil())
			Expect(skew).Should(BeNumerically("~", expected, 1e-10))
		},
		Entry("moment", metrics.MomentSkewness, -0.03578089711076656),
		Entry("fisher-pearson", metrics.FisherPearson, -0.0424309243478098),
		Entry("sample", metrics.SampleSkewness, -0.030550265530423306),
	)

	DescribeTable("when calculating kurtosis",
		func(method metrics.KurtosisMethod, expected float64) {
			kurt, err := metrics.Kurtosis(rets, method)
			Expect(err).To(BeNil())
			Expect(kurt).Should(BeNumerically("~", expected, 1e-10))
		},
		Entry("excess", metrics.ExcessKurtosis, -0.7444813847727163),
		Entry("moment", metrics.MomentKurtosis, 2.2555186152272837),
		Entry("cornish-fisher", metrics.CornishFisherKurtosis, -0.3518510195089095),
	)

	Context("with degenerate input", func() {
		It("should be NaN for a constant series", func() {
			flat := []float64{0.25, 0.25, 0.25, 0.25, 0.25}

			skew, err := metrics.Skewness(flat, metrics.FisherPearson)
			Expect(err).To(BeNil())
			Expect(math.IsNaN(skew)).Should(BeTrue())

			kurt, err := metrics.Kurtosis(flat, metrics.ExcessKurtosis)
			Expect(err).To(BeNil())
			Expect(math.IsNaN(kurt)).Should(BeTrue())
		})

		It("should fail when there are not enough observations", func() {
			_, err := metrics.Skewness([]float64{1, 2}, metrics.MomentSkewness)
			Expect(err).To(MatchError(metrics.ErrInsufficientData))

			_, err = metrics.Kurtosis([]float64{1, 2, 3}, metrics.MomentKurtosis)
			Expect(err).To(MatchError(metrics.ErrInsufficientData))
		})

		It("should reject unknown methods", func() {
			_, err := metrics.Skewness(rets, metrics.SkewnessMethod("pearson"))
			Expect(err).To(MatchError(metrics.ErrUnknownMethod))

			_, err = metrics.Kurtosis(rets, metrics.KurtosisMethod("sample"))
			Expect(err).To(MatchError(metrics.ErrUnknownMethod))
		})
	})
})
