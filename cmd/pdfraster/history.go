package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfraster/internal/history"
	"github.com/pdiddy/pdfraster/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversion runs",
	Long: `History lists completed conversions from the local ledger, newest
first. Use --output-dir to restrict the listing to runs that wrote into a
particular directory.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().String("output-dir", "", "only list runs that wrote into this directory")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(appConfig().History)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	outputDir, _ := cmd.Flags().GetString("output-dir")

	var runs []types.RunRecord
	if outputDir != "" {
		runs, err = store.ByOutputDir(outputDir, limit)
	} else {
		runs, err = store.Recent(limit)
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No conversions recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tFORMAT\tDPI\tPAGES\tDURATION\tINPUT\tOUTPUT")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			r.CreatedAt.Local().Format(time.DateTime),
			r.Format, r.DPI, r.Pages, r.Duration.Truncate(time.Millisecond),
			r.InputPath, r.OutputDir)
	}
	return w.Flush()
}
