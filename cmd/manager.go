package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/rollcall-cli/internal/model"
)

var managerConcurrency int

var managerCmd = &cobra.Command{
	Use:   "manager [file...]",
	Short: "Generate the 存量经理 report from roll-call text",
	Long:  "Reads roll-call chat text (stdin by default), attributes business activity to configured branch managers, and writes the 存量经理接龙数据通报 workbook.",
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs := args
		if len(inputs) == 0 {
			inputs = []string{"-"}
		}
		return generateReports(cmd.Context(), model.ReportKindManager, inputs, managerConcurrency)
	},
}

func init() {
	managerCmd.Flags().IntVar(&managerConcurrency, "concurrency", 2, "max input files processed in parallel")
	rootCmd.AddCommand(managerCmd)
}
