package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshy-alphonse/BioPython-Workshop/internal/fasta"
	"github.com/joshy-alphonse/BioPython-Workshop/internal/index"
)

var fastaCmd = &cobra.Command{
	Use:     "fasta",
	Short:   "Parse and inspect FASTA files",
	Aliases: []string{"fa"},
}

var fastaIndexCmd = &cobra.Command{
	Use:     "index <in.fasta>",
	Short:   "Parse a FASTA file into an annotated JSON index",
	Example: "  workshop fasta index sequences.fasta -o index.json",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		set, err := fasta.ParseFile(args[0])
		if err != nil {
			return err
		}
		logger.Info("parsed fasta", "path", args[0], "records", set.Len(), "skipped", set.Skipped)
		for _, w := range set.Warnings {
			logger.Warn(w, "path", args[0])
		}

		idx := index.Build(set, args[0])
		if err := idx.Save(out); err != nil {
			return fmt.Errorf("write index: %w", err)
		}
		logger.Info("wrote index", "path", out, "records", len(idx.Records))
		return nil
	},
}

var fastaGrepCmd = &cobra.Command{
	Use:     "grep <id>",
	Short:   "Look up a record by its identifier and print it as FASTA",
	Example: "  workshop fasta grep NM_000797.4 -i sequences.fasta",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("in")
		width, _ := cmd.Flags().GetInt("width")

		set, err := fasta.ParseFile(in)
		if err != nil {
			return err
		}
		rec, ok := set.Lookup(args[0])
		if !ok {
			return fmt.Errorf("no record with identifier %q in %s", args[0], in)
		}
		return fasta.Write(os.Stdout, []fasta.Record{rec}, width)
	},
}

func init() {
	rootCmd.AddCommand(fastaCmd)

	fastaIndexCmd.Flags().StringP("out", "o", "index.json", "output index file")
	fastaCmd.AddCommand(fastaIndexCmd)

	fastaGrepCmd.Flags().StringP("in", "i", "", "input FASTA file")
	fastaGrepCmd.Flags().IntP("width", "w", 60, "sequence line width (0 = single line)")
	_ = fastaGrepCmd.MarkFlagRequired("in")
	fastaCmd.AddCommand(fastaGrepCmd)
}
