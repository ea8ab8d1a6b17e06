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

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/penny-vault/riskperf/metrics"
	"github.com/penny-vault/riskperf/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(reportCmd)

	viper.SetDefault("report.multiplier", 252.0)
	viper.BindEnv("report.multiplier", "RISKPERF_MULTIPLIER")
	reportCmd.Flags().Float64("multiplier", 252, "Annualization multiplier, e.g. 12 for monthly or 252 for daily returns")
	viper.BindPFlag("report.multiplier", reportCmd.Flags().Lookup("multiplier"))

	viper.SetDefault("report.confidence", 0.05)
	viper.BindEnv("report.confidence", "RISKPERF_CONFIDENCE")
	reportCmd.Flags().Float64("confidence", 0.05, "Significance level for VaR and ES, e.g. 0.05 for 95% confidence")
	viper.BindPFlag("report.confidence", reportCmd.Flags().Lookup("confidence"))

	viper.SetDefault("report.method", string(metrics.Historical))
	viper.BindEnv("report.method", "RISKPERF_METHOD")
	reportCmd.Flags().String("method", string(metrics.Historical), "VaR/ES estimator: historical, gaussian or cornish_fisher")
	viper.BindPFlag("report.method", reportCmd.Flags().Lookup("method"))

	viper.SetDefault("report.risk_free", 0.0)
	viper.BindEnv("report.risk_free", "RISKPERF_RISK_FREE")
	reportCmd.Flags().Float64("risk-free", 0, "Per-period risk-free return")
	viper.BindPFlag("report.risk_free", reportCmd.Flags().Lookup("risk-free"))

	viper.SetDefault("report.geometric", true)
	viper.BindEnv("report.geometric", "RISKPERF_GEOMETRIC")
	reportCmd.Flags().Bool("geometric", true, "Compound returns when computing drawdowns")
	viper.BindPFlag("report.geometric", reportCmd.Flags().Lookup("geometric"))

	reportCmd.Flags().StringP("input", "i", "-", "JSON input file, `-` reads from stdin")
	reportCmd.Flags().Bool("prices", false, "Input series are prices rather than returns")
	reportCmd.Flags().Bool("json", false, "Print the report as JSON")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute risk and performance metrics for a set of series",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		method, err := metrics.ParseEstimator(viper.GetString("report.method"))
		if err != nil {
			return err
		}

		settings := report.Settings{
			Multiplier: viper.GetFloat64("report.multiplier"),
			Confidence: viper.GetFloat64("report.confidence"),
			Method:     method,
			RiskFree:   viper.GetFloat64("report.risk_free"),
			Geometric:  viper.GetBool("report.geometric"),
		}

		inputFn, _ := cmd.Flags().GetString("input")
		var in io.Reader = os.Stdin
		if inputFn != "-" {
			fh, err := os.Open(inputFn)
			if err != nil {
				return err
			}
			defer fh.Close()
			in = fh
		}

		input, err := report.ParseInput(in)
		if err != nil {
			return err
		}

		prices, _ := cmd.Flags().GetBool("prices")
		rets, benchmark, err := input.Returns(prices)
		if err != nil {
			log.Error().Stack().Err(err).Msg("could not prepare return series")
			return err
		}

		res, err := report.Build(rets, benchmark, settings)
		if err != nil {
			log.Error().Stack().Err(err).Msg("could not compute report")
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out, err := res.JSON()
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Print(res.Table())
		return nil
	},
}
