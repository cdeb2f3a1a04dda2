package cmd

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/joshy-alphonse/BioPython-Workshop/internal/index"
	"github.com/joshy-alphonse/BioPython-Workshop/internal/web"
)

var serveCmd = &cobra.Command{
	Use:     "serve [index.json]",
	Short:   "Serve a web UI over an indexed record set",
	Example: "  workshop serve index.json --addr :8080",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		path := "index.json"
		if len(args) > 0 {
			path = args[0]
		}
		idx, err := index.Load(path)
		if err != nil {
			return err
		}

		store := openHistory()
		if store != nil {
			defer store.Close()
		}
		srv, err := web.NewServer(idx, store, logger)
		if err != nil {
			return err
		}
		if err := srv.ListenAndServe(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringP("addr", "a", ":8080", "HTTP listen address")
	rootCmd.AddCommand(serveCmd)
}
