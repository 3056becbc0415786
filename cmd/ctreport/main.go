package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ctreport/pkg/contracts"
)

func main() {
	root := &cobra.Command{
		Use:     "ctreport",
		Short:   "Analyze cooling tower water treatment reports",
		Long:    "ctreport recovers the schema of messy treatment report spreadsheets,\nchecks readings against their control limits and reports data quality issues.",
		Version: contracts.Version,
		SilenceUsage: true,
	}

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print detailed version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := contracts.GetVersionInfo()
			fmt.Printf("%s\n", contracts.GetVersionString())
			fmt.Printf("  build time: %s\n", info.BuildTime)
			fmt.Printf("  commit:     %s\n", info.GitCommit)
			fmt.Printf("  go:         %s (%s/%s)\n", info.GoVersion, info.OS, info.Architecture)
		},
	}
}
