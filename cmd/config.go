package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/recourse-bench/recourse-bench/sweep"
)

// configCmd dumps the stock experiment configuration so users can copy and
// edit it instead of writing a config from scratch.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default experiment configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := sweep.DefaultConfig().Dump()
		if err != nil {
			logrus.Fatalf("encode config: %v", err)
		}
		fmt.Print(string(raw))
	},
}
