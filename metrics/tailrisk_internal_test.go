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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"
)

// edgeworthTailMean integrates u f(u) over (-∞, g] for the Edgeworth
// density f(u) = φ(u) [1 + S/6 He3(u) + K/24 He4(u) + S²/72 He6(u)] and
// divides by alpha
func edgeworthTailMean(g, s, k, alpha float64) float64 {
	integrand := func(u float64) float64 {
		u2 := u * u
		he3 := u2*u - 3*u
		he4 := u2*u2 - 6*u2 + 3
		he6 := u2*u2*u2 - 15*u2*u2 + 45*u2 - 15
		density := distuv.UnitNormal.Prob(u) * (1 + s/6*he3 + k/24*he4 + s*s/72*he6)
		return u * density
	}
	return quad.Fixed(integrand, -20, g, 200, quad.Legendre{}, 0) / alpha
}

var _ = Describe("Cornish-Fisher expansion", func() {
	It("should reduce to the normal quantile without higher moments", func() {
		for _, alpha := range []float64{0.01, 0.05, 0.1, 0.5} {
			z := distuv.UnitNormal.Quantile(alpha)
			Expect(cornishFisherQuantile(z, 0, 0)).Should(Equal(z))

			q, es := cornishFisherTail(0.002, 0.015, 0, 0, alpha)
			Expect(q).Should(BeNumerically("~", 0.002+0.015*z, 1e-15))
			Expect(es).Should(BeNumerically("~", 0.002-0.015*distuv.UnitNormal.Prob(z)/alpha, 1e-15))
		}
	})

	DescribeTable("should match the integrated Edgeworth tail expectation",
		func(s, k, alpha float64) {
			z := distuv.UnitNormal.Quantile(alpha)
			g := cornishFisherQuantile(z, s, k)

			q, es := cornishFisherTail(0, 1, s, k, alpha)
			Expect(q).Should(BeNumerically("~", g, 1e-15))
			Expect(es).Should(BeNumerically("<", q))
			Expect(es).Should(BeNumerically("~", edgeworthTailMean(g, s, k, alpha), 1e-9))

			// location and scale carry through
			q2, es2 := cornishFisherTail(0.001, 0.02, s, k, alpha)
			Expect(q2).Should(BeNumerically("~", 0.001+0.02*q, 1e-15))
			Expect(es2).Should(BeNumerically("~", 0.001+0.02*es, 1e-15))
		},
		Entry("negative skew, fat tails", -0.8, 1.5, 0.05),
		Entry("positive skew, very fat tails", 0.5, 3.0, 0.01),
		Entry("mild skew and kurtosis", 0.3, 0.5, 0.1),
	)

	It("should shift the quantile left for negative skew", func() {
		z := distuv.UnitNormal.Quantile(0.05)
		Expect(cornishFisherQuantile(z, -0.5, 0)).Should(BeNumerically("<", z))
	})

	It("should interpolate the empirical quantile", func() {
		sorted := []float64{1, 2, 3, 4}
		Expect(quantile(sorted, 0)).Should(Equal(1.0))
		Expect(quantile(sorted, 1)).Should(Equal(4.0))
		Expect(quantile(sorted, 0.5)).Should(BeNumerically("~", 2.5, 1e-15))
		Expect(quantile([]float64{7}, 0.3)).Should(Equal(7.0))
	})
})
