package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joshy-alphonse/BioPython-Workshop/internal/fasta"
	"github.com/joshy-alphonse/BioPython-Workshop/internal/seq"
)

var seqCmd = &cobra.Command{
	Use:   "seq",
	Short: "Sequence operations: GC content, complements, transcription, translation",
}

// inputSequences resolves the --seq/--in flags into (id, sequence) pairs.
func inputSequences(cmd *cobra.Command) ([]fasta.Record, error) {
	literal, _ := cmd.Flags().GetString("seq")
	in, _ := cmd.Flags().GetString("in")
	switch {
	case literal != "" && in != "":
		return nil, fmt.Errorf("use either --seq or --in, not both")
	case literal != "":
		return []fasta.Record{{ID: "input", Sequence: literal}}, nil
	case in != "":
		set, err := fasta.ParseFile(in)
		if err != nil {
			return nil, err
		}
		for _, w := range set.Warnings {
			logger.Warn(w, "path", in)
		}
		return set.Records, nil
	default:
		return nil, fmt.Errorf("one of --seq or --in is required")
	}
}

func addSeqInputFlags(c *cobra.Command) {
	c.Flags().StringP("seq", "s", "", "sequence given directly on the command line")
	c.Flags().StringP("in", "i", "", "input FASTA file")
}

var seqGCCmd = &cobra.Command{
	Use:     "gc",
	Short:   "Compute GC content",
	Example: "  workshop seq gc -s ATGGCC\n  workshop seq gc -i sequences.fasta",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := inputSequences(cmd)
		if err != nil {
			return err
		}
		for _, rec := range records {
			gc, err := seq.GC(rec.Sequence)
			if err != nil {
				logger.Warn("skipping record", "id", rec.ID, "err", err)
				continue
			}
			fmt.Printf("%s\t%.2f\n", rec.ID, gc)
		}
		return nil
	},
}

var seqRevCompCmd = &cobra.Command{
	Use:     "revcomp",
	Short:   "Reverse complement sequences",
	Aliases: []string{"rc"},
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := inputSequences(cmd)
		if err != nil {
			return err
		}
		out := make([]fasta.Record, len(records))
		for i, rec := range records {
			out[i] = fasta.Record{ID: rec.ID, Description: rec.Description, Sequence: seq.ReverseComplement(rec.Sequence)}
		}
		return fasta.Write(os.Stdout, out, 60)
	},
}

var seqTranscribeCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe DNA to RNA",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := inputSequences(cmd)
		if err != nil {
			return err
		}
		out := make([]fasta.Record, len(records))
		for i, rec := range records {
			out[i] = fasta.Record{ID: rec.ID, Description: rec.Description, Sequence: seq.Transcribe(rec.Sequence)}
		}
		return fasta.Write(os.Stdout, out, 60)
	},
}

var seqTranslateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate DNA/RNA to protein with the standard code",
	RunE: func(cmd *cobra.Command, args []string) error {
		full, _ := cmd.Flags().GetBool("full")
		records, err := inputSequences(cmd)
		if err != nil {
			return err
		}
		var out []fasta.Record
		for _, rec := range records {
			translate := seq.Translate
			if full {
				translate = seq.TranslateFull
			}
			prot, err := translate(rec.Sequence)
			if err != nil {
				logger.Warn("skipping record", "id", rec.ID, "err", err)
				continue
			}
			out = append(out, fasta.Record{ID: rec.ID, Description: rec.Description, Sequence: prot})
		}
		return fasta.Write(os.Stdout, out, 60)
	},
}

var seqStatsCmd = &cobra.Command{
	Use:   "stats <in.fasta>",
	Short: "Per-record length and GC statistics with an aggregate summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := fasta.ParseFile(args[0])
		if err != nil {
			return err
		}
		stats, agg := seq.Stats(set)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLENGTH\tGC%")
		for _, st := range stats {
			fmt.Fprintf(w, "%s\t%d\t%.2f\n", st.ID, st.Length, st.GC)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\n%d record(s), total %d bp, length %d-%d (mean %.1f), mean GC %.2f%%\n",
			agg.Records, agg.TotalLen, agg.MinLen, agg.MaxLen, agg.MeanLen, agg.MeanGC)
		if agg.EmptySeqs > 0 {
			logger.Warn("records with empty sequences excluded from GC mean", "count", agg.EmptySeqs)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seqCmd)

	for _, c := range []*cobra.Command{seqGCCmd, seqRevCompCmd, seqTranscribeCmd, seqTranslateCmd} {
		addSeqInputFlags(c)
		seqCmd.AddCommand(c)
	}
	seqTranslateCmd.Flags().Bool("full", false, "translate through stop codons")
	seqCmd.AddCommand(seqStatsCmd)
}
