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

package dataframe_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/penny-vault/riskperf/dataframe"
)

var _ = Describe("DataFrame", func() {
	var (
		dates []time.Time
		df    *dataframe.DataFrame
	)

	BeforeEach(func() {
		dates = []time.Time{
			time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC),
			time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2021, 1, 6, 0, 0, 0, 0, time.UTC),
		}

		var err error
		df, err = dataframe.New(dates, []string{"VFINX", "PRIDX"}, [][]float64{{1, 2, 3}, {4, 5, 6}})
		Expect(err).To(BeNil())
	})

	Context("with no values", func() {
		It("has zero length and no columns", func() {
			empty := &dataframe.DataFrame{}
			Expect(empty.Len()).To(Equal(0))
			Expect(empty.ColCount()).To(Equal(0))
			Expect(empty.Start().IsZero()).To(BeTrue())
			Expect(empty.End().IsZero()).To(BeTrue())
			Expect(empty.Table()).To(Equal("<NO DATA>"))
		})

		It("does not error on drop", func() {
			empty := (&dataframe.DataFrame{}).Drop(1)
			Expect(empty.Len()).To(Equal(0))
		})
	})

	Context("when constructing", func() {
		It("reports the shape of the frame", func() {
			Expect(df.Len()).To(Equal(3))
			Expect(df.ColCount()).To(Equal(2))
			Expect(df.Start()).To(Equal(dates[0]))
			Expect(df.End()).To(Equal(dates[2]))
			Expect(df.ColIndex("PRIDX")).To(Equal(1))
			Expect(df.ColIndex("VTSAX")).To(Equal(-1))
		})

		It("rejects columns that do not match the date index", func() {
			_, err := dataframe.New(dates, []string{"VFINX"}, [][]float64{{1, 2}})
			Expect(errors.Is(err, dataframe.ErrColumnLength)).To(BeTrue())

			_, err = dataframe.New(dates, []string{"VFINX", "PRIDX"}, [][]float64{{1, 2, 3}})
			Expect(errors.Is(err, dataframe.ErrColumnLength)).To(BeTrue())
		})

		It("allows a frame without dates", func() {
			noDates, err := dataframe.New(nil, []string{"a", "b"}, [][]float64{{1, 2}, {3, 4}})
			Expect(err).To(BeNil())
			Expect(noDates.Len()).To(Equal(2))

			_, err = dataframe.New(nil, []string{"a", "b"}, [][]float64{{1, 2}, {3}})
			Expect(errors.Is(err, dataframe.ErrColumnLength)).To(BeTrue())
		})

		It("looks up columns by name", func() {
			col, err := df.Column("PRIDX")
			Expect(err).To(BeNil())
			Expect(col).To(Equal([]float64{4, 5, 6}))

			_, err = df.Column("VTSAX")
			Expect(errors.Is(err, dataframe.ErrColumnMissing)).To(BeTrue())
		})
	})

	Context("when copying", func() {
		It("does not share storage with the original", func() {
			df2 := df.Copy()
			df2.Vals[0][0] = 100
			df2.Dates[0] = time.Time{}
			df2.ColNames[0] = "Different"

			Expect(df.Vals[0][0]).To(Equal(1.0))
			Expect(df.Dates[0]).To(Equal(dates[0]))
			Expect(df.ColNames[0]).To(Equal("VFINX"))
		})
	})

	Context("when dropping rows", func() {
		It("removes rows containing the value", func() {
			df.Vals[1][1] = 0
			res := df.Drop(0)
			Expect(res.Len()).To(Equal(2))
			Expect(res.Dates).To(Equal([]time.Time{dates[0], dates[2]}))
			Expect(res.Vals).To(Equal([][]float64{{1, 3}, {4, 6}}))
		})

		It("removes rows with missing values", func() {
			df.Vals[0][0] = math.NaN()
			res := df.Drop(math.NaN())
			Expect(res.Len()).To(Equal(2))
			Expect(res.Start()).To(Equal(dates[1]))
		})
	})

	Context("when applying a function to each column", func() {
		It("aligns shorter results to the last dates", func() {
			res, err := df.Map(func(col []float64) ([]float64, error) {
				out := make([]float64, len(col)-1)
				for ii := range out {
					out[ii] = col[ii+1] - col[ii]
				}
				return out, nil
			})
			Expect(err).To(BeNil())
			Expect(res.Len()).To(Equal(2))
			Expect(res.Dates).To(Equal(dates[1:]))
			Expect(res.ColNames).To(Equal([]string{"VFINX", "PRIDX"}))
			Expect(res.Vals).To(Equal([][]float64{{1, 1}, {1, 1}}))
		})

		It("returns the first error", func() {
			errBoom := errors.New("boom")
			_, err := df.Map(func(col []float64) ([]float64, error) {
				return nil, errBoom
			})
			Expect(errors.Is(err, errBoom)).To(BeTrue())
		})

		It("rejects results that grow the frame", func() {
			_, err := df.Map(func(col []float64) ([]float64, error) {
				return append(col, 0), nil
			})
			Expect(errors.Is(err, dataframe.ErrColumnLength)).To(BeTrue())
		})

		It("reduces each column to a scalar", func() {
			res, err := df.Reduce(func(col []float64) (float64, error) {
				sum := 0.0
				for _, v := range col {
					sum += v
				}
				return sum, nil
			})
			Expect(err).To(BeNil())
			Expect(res).To(Equal(map[string]float64{"VFINX": 6, "PRIDX": 15}))
		})
	})

	Context("when inserting", func() {
		It("appends a column", func() {
			df.Insert("VTSAX", []float64{7, 8, 9})
			Expect(df.ColCount()).To(Equal(3))
			Expect(df.ColIndex("VTSAX")).To(Equal(2))
		})
	})

	Context("when rendering", func() {
		It("prints every row", func() {
			tbl := df.Table()
			Expect(tbl).To(ContainSubstring("VFINX"))
			Expect(tbl).To(ContainSubstring("2021-01-05"))
			Expect(tbl).To(ContainSubstring("6.0000"))
		})
	})
})
