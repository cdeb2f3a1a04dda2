package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshy-alphonse/BioPython-Workshop/internal/fasta"
	"github.com/joshy-alphonse/BioPython-Workshop/internal/plot"
	"github.com/joshy-alphonse/BioPython-Workshop/internal/table"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Terminal charts for sequences and tables",
}

var plotGCCmd = &cobra.Command{
	Use:     "gc <in.fasta>",
	Short:   "Bar chart of per-record GC content",
	Example: "  workshop plot gc sequences.fasta",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")

		set, err := fasta.ParseFile(args[0])
		if err != nil {
			return err
		}
		fmt.Print(plot.GCPlot(set, width))
		return nil
	},
}

var plotHistCmd = &cobra.Command{
	Use:     "hist <file.csv>",
	Short:   "Histogram of a numeric column",
	Example: "  workshop plot hist genes.csv -c length -b 8",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		col, _ := cmd.Flags().GetString("column")
		bins, _ := cmd.Flags().GetInt("bins")
		width, _ := cmd.Flags().GetInt("width")

		tbl, err := table.FromFile(args[0])
		if err != nil {
			return err
		}
		values, err := tbl.Numeric(col)
		if err != nil {
			return err
		}
		fmt.Print(plot.Histogram(values, bins, width))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotGCCmd.Flags().IntP("width", "w", 40, "bar width in characters")
	plotCmd.AddCommand(plotGCCmd)

	plotHistCmd.Flags().StringP("column", "c", "", "numeric column to bin")
	plotHistCmd.Flags().IntP("bins", "b", 10, "number of histogram buckets")
	plotHistCmd.Flags().IntP("width", "w", 40, "bar width in characters")
	_ = plotHistCmd.MarkFlagRequired("column")
	plotCmd.AddCommand(plotHistCmd)
}
