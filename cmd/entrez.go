package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshy-alphonse/BioPython-Workshop/internal/history"
)

var entrezCmd = &cobra.Command{
	Use:     "entrez",
	Short:   "Query NCBI databases through the E-utilities",
	Aliases: []string{"ncbi"},
}

func entrezContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Minute)
}

var entrezSearchCmd = &cobra.Command{
	Use:     "search <term>",
	Short:   "Search a database and print matching record IDs",
	Example: `  workshop entrez search "DRD4[Gene] AND human[Organism]" --db nucleotide`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _ := cmd.Flags().GetString("db")
		retmax, _ := cmd.Flags().GetInt("retmax")

		ctx, cancel := entrezContext()
		defer cancel()
		client := newEntrezClient()
		res, err := client.ESearch(ctx, db, args[0], retmax)
		if err != nil {
			return err
		}
		logger.Info("search finished", "db", db, "count", res.Count, "returned", len(res.IDs))

		store := openHistory()
		if store != nil {
			defer store.Close()
		}
		recordHistory(store, history.Entry{Op: "search", DB: db, Term: args[0], IDs: res.IDs})

		fmt.Printf("%d match(es) in %s\n", res.Count, db)
		for _, id := range res.IDs {
			fmt.Println(id)
		}
		return nil
	},
}

var entrezFetchCmd = &cobra.Command{
	Use:     "fetch <id> [id...]",
	Short:   "Fetch records by ID",
	Example: "  workshop entrez fetch NM_000797.4 --db nucleotide --rettype fasta -o out.fasta",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _ := cmd.Flags().GetString("db")
		rettype, _ := cmd.Flags().GetString("rettype")
		retmode, _ := cmd.Flags().GetString("retmode")
		out, _ := cmd.Flags().GetString("out")

		ctx, cancel := entrezContext()
		defer cancel()
		client := newEntrezClient()
		text, err := client.EFetch(ctx, db, args, rettype, retmode)
		if err != nil {
			return err
		}
		logger.Info("fetch finished", "db", db, "ids", len(args), "rettype", rettype, "bytes", len(text))

		store := openHistory()
		if store != nil {
			defer store.Close()
		}
		recordHistory(store, history.Entry{Op: "fetch", DB: db, IDs: args})

		if out == "" {
			fmt.Print(text)
			if !strings.HasSuffix(text, "\n") {
				fmt.Println()
			}
			return nil
		}
		if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		logger.Info("wrote records", "path", out)
		return nil
	},
}

var entrezLinkCmd = &cobra.Command{
	Use:     "link <id> [id...]",
	Short:   "Find records in another database linked to the given IDs",
	Example: "  workshop entrez link 1815 --from gene --db protein",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbfrom, _ := cmd.Flags().GetString("from")
		db, _ := cmd.Flags().GetString("db")

		ctx, cancel := entrezContext()
		defer cancel()
		client := newEntrezClient()
		links, err := client.ELink(ctx, dbfrom, db, args)
		if err != nil {
			return err
		}

		store := openHistory()
		if store != nil {
			defer store.Close()
		}
		recordHistory(store, history.Entry{Op: "link", DB: db, IDs: args})

		if len(links) == 0 {
			fmt.Println("no linked records found")
			return nil
		}
		for _, ls := range links {
			fmt.Printf("%s (%s): %s\n", ls.DBTo, ls.LinkName, strings.Join(ls.IDs, " "))
		}
		return nil
	},
}

var entrezSummaryCmd = &cobra.Command{
	Use:   "summary <id> [id...]",
	Short: "Fetch document summaries for the given IDs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _ := cmd.Flags().GetString("db")

		ctx, cancel := entrezContext()
		defer cancel()
		client := newEntrezClient()
		sums, err := client.ESummary(ctx, db, args)
		if err != nil {
			return err
		}
		for _, s := range sums {
			fmt.Printf("%s\t%s\n", s.UID, s.Title)
		}
		return nil
	},
}

var entrezInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "List databases available through the E-utilities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := entrezContext()
		defer cancel()
		client := newEntrezClient()
		dbs, err := client.EInfo(ctx)
		if err != nil {
			return err
		}
		for _, db := range dbs {
			fmt.Println(db)
		}
		return nil
	},
}

var entrezHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded Entrez queries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store := openHistory()
		if store == nil {
			return fmt.Errorf("history store unavailable")
		}
		defer store.Close()
		entries, err := store.List(limit)
		if err != nil {
			return err
		}
		for _, e := range entries {
			line := fmt.Sprintf("%s  %-7s %s", e.When.Format(time.RFC3339), e.Op, e.DB)
			if e.Term != "" {
				line += "  " + e.Term
			}
			if len(e.IDs) > 0 {
				line += "  [" + strings.Join(e.IDs, ",") + "]"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(entrezCmd)

	entrezSearchCmd.Flags().StringP("db", "d", "nucleotide", "database to search")
	entrezSearchCmd.Flags().IntP("retmax", "m", 20, "maximum number of IDs to return")
	entrezCmd.AddCommand(entrezSearchCmd)

	entrezFetchCmd.Flags().StringP("db", "d", "nucleotide", "database to fetch from")
	entrezFetchCmd.Flags().StringP("rettype", "t", "fasta", "record format (fasta, gb, ...)")
	entrezFetchCmd.Flags().StringP("retmode", "m", "text", "retrieval mode")
	entrezFetchCmd.Flags().StringP("out", "o", "", "write records to file instead of stdout")
	entrezCmd.AddCommand(entrezFetchCmd)

	entrezLinkCmd.Flags().StringP("from", "f", "gene", "source database")
	entrezLinkCmd.Flags().StringP("db", "d", "protein", "target database")
	entrezCmd.AddCommand(entrezLinkCmd)

	entrezSummaryCmd.Flags().StringP("db", "d", "nucleotide", "database")
	entrezCmd.AddCommand(entrezSummaryCmd)

	entrezCmd.AddCommand(entrezInfoCmd)

	entrezHistoryCmd.Flags().IntP("limit", "n", 20, "number of entries to show")
	entrezCmd.AddCommand(entrezHistoryCmd)
}
