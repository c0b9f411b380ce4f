package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/rollcall-cli/internal/model"
)

var channelConcurrency int

var channelCmd = &cobra.Command{
	Use:   "channel [file...]",
	Short: "Generate the 渠道厅店 report from roll-call text",
	Long:  "Reads roll-call chat text (stdin by default), attributes transactions and points to configured retail channels, and writes the 渠道厅店接龙数据通报 workbook.",
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs := args
		if len(inputs) == 0 {
			inputs = []string{"-"}
		}
		return generateReports(cmd.Context(), model.ReportKindChannel, inputs, channelConcurrency)
	},
}

func init() {
	channelCmd.Flags().IntVar(&channelConcurrency, "concurrency", 2, "max input files processed in parallel")
	rootCmd.AddCommand(channelCmd)
}
