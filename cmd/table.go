package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joshy-alphonse/BioPython-Workshop/internal/table"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Explore delimited (CSV/TSV) data files",
}

var tableHeadCmd = &cobra.Command{
	Use:   "head <file.csv>",
	Short: "Print the first rows of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("rows")
		cols, _ := cmd.Flags().GetStringSlice("columns")

		tbl, err := table.FromFile(args[0])
		if err != nil {
			return err
		}
		if len(cols) > 0 {
			if tbl, err = tbl.Select(cols...); err != nil {
				return err
			}
		}
		return printTable(tbl.Head(n))
	},
}

var tableDescribeCmd = &cobra.Command{
	Use:     "describe <file.csv>",
	Short:   "Descriptive statistics for a numeric column",
	Example: "  workshop table describe genes.csv -c length",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		col, _ := cmd.Flags().GetString("column")

		tbl, err := table.FromFile(args[0])
		if err != nil {
			return err
		}
		s, err := tbl.Describe(col)
		if err != nil {
			return err
		}
		fmt.Printf("column %q: count=%d mean=%.3f min=%.3f max=%.3f std=%.3f\n",
			col, s.Count, s.Mean, s.Min, s.Max, s.Std)
		return nil
	},
}

var tableGroupCmd = &cobra.Command{
	Use:   "group <file.csv>",
	Short: "Count rows per distinct value of a column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		col, _ := cmd.Flags().GetString("column")

		tbl, err := table.FromFile(args[0])
		if err != nil {
			return err
		}
		groups, err := tbl.GroupCount(col)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "%s\tCOUNT\n", col)
		for _, g := range groups {
			fmt.Fprintf(w, "%s\t%d\n", g.Value, g.Count)
		}
		return w.Flush()
	},
}

func printTable(tbl *table.Table) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, c := range tbl.Columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
	for _, row := range tbl.Rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(tableCmd)

	tableHeadCmd.Flags().IntP("rows", "n", 10, "number of rows to show")
	tableHeadCmd.Flags().StringSliceP("columns", "c", nil, "columns to keep, in order")
	tableCmd.AddCommand(tableHeadCmd)

	tableDescribeCmd.Flags().StringP("column", "c", "", "column to describe")
	_ = tableDescribeCmd.MarkFlagRequired("column")
	tableCmd.AddCommand(tableDescribeCmd)

	tableGroupCmd.Flags().StringP("column", "c", "", "column to group by")
	_ = tableGroupCmd.MarkFlagRequired("column")
	tableCmd.AddCommand(tableGroupCmd)
}
