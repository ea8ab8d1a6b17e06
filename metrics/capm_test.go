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

var _ = Describe("CAPM", func() {
	It("should regress excess asset returns on excess benchmark returns", func() {
		alpha, beta, err := metrics.CAPM(rets, bench, metrics.Scalar(0))
		Expect(err).To(BeNil())
		Expect(alpha).Should(BeNumerically("~", 0.0006286445012787717, 1e-12))
		Expect(beta).Should(BeNumerically("~", 1.3427109974424551, 1e-9))
	})

	It("should subtract the risk-free rate before regressing", func() {
		alpha, beta, err := metrics.CAPM(rets, bench, metrics.Scalar(0.001))
		Expect(err).To(BeNil())
		Expect(alpha).Should(BeNumerically("~", 0.0009713554987212268, 1e-12))
		Expect(beta).Should(BeNumerically("~", 1.3427109974424551, 1e-9))
	})

	It("should have a beta of one against itself", func() {
		alpha, beta, err := metrics.CAPM(rets, rets, metrics.Scalar(0))
		Expect(err).To(BeNil())
		Expect(alpha).Should(BeNumerically("~", 0, 1e-12))
		Expect(beta).Should(BeNumerically("~", 1, 1e-12))
	})

	It("should compute Jensen's alpha and the modified Jensen measure", func() {
		alpha, err := metrics.JensenAlpha(rets, bench, metrics.Scalar(0))
		Expect(err).To(BeNil())
		Expect(alpha).Should(BeNumerically("~", 0.0006286445012787717, 1e-12))

		mj, err := metrics.ModifiedJensen(rets, bench, metrics.Scalar(0))
		Expect(err).To(BeNil())
		Expect(mj).Should(BeNumerically("~", 0.0004681904761904757, 1e-12))
	})

	It("should be undefined for a constant benchmark", func() {
		alpha, beta, err := metrics.CAPM(rets, []float64{0.25, 0.25, 0.25, 0.25, 0.25, 0.25, 0.25, 0.25, 0.25, 0.25}, metrics.Scalar(0))
		Expect(err).To(BeNil())
		Expect(math.IsNaN(alpha)).Should(BeTrue())
		Expect(math.IsNaN(beta)).Should(BeTrue())
	})

	It("should fail when the series differ in length", func() {
		_, _, err := metrics.CAPM(rets, bench[:5], metrics.Scalar(0))
		Expect(err).To(MatchError(metrics.ErrLengthMismatch))

		_, err = metrics.TreynorRatio(rets[:1], bench[:1], metrics.Scalar(0), 12)
		Expect(err).To(MatchError(metrics.ErrInsufficientData))
	})
})
