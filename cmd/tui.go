package cmd

import (
	"github.com/spf13/cobra"

	"github.com/joshy-alphonse/BioPython-Workshop/internal/index"
	"github.com/joshy-alphonse/BioPython-Workshop/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:     "tui [index.json]",
	Short:   "Browse an indexed record set interactively",
	Example: "  workshop fasta index sequences.fasta && workshop tui",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "index.json"
		if len(args) > 0 {
			path = args[0]
		}
		idx, err := index.Load(path)
		if err != nil {
			return err
		}
		logger.Debug("loaded index", "path", path, "records", len(idx.Records))
		return tui.Run(idx)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
