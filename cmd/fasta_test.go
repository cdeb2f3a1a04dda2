package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/joshy-alphonse/BioPython-Workshop/internal/index"
)

// runCommand executes the root command with args from dir.
func runCommand(t *testing.T, dir string, args ...string) error {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestFastaIndexCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "seqs.fasta")
	if err := os.WriteFile(in, []byte(">a one\nGGCC\n>b two\nATAT\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	out := filepath.Join(dir, "index.json")
	if err := runCommand(t, dir, "fasta", "index", in, "--out", out); err != nil {
		t.Fatalf("command failed: %v", err)
	}
	idx, err := index.Load(out)
	if err != nil {
		t.Fatalf("load index: %v", err)
	}
	if len(idx.Records) != 2 {
		t.Fatalf("expected 2 indexed records, got %d", len(idx.Records))
	}
	rec, ok := idx.Lookup("a")
	if !ok || rec.GC != 100 {
		t.Fatalf("unexpected record: %+v (ok=%v)", rec, ok)
	}
}

func TestFastaIndexCommandMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := runCommand(t, dir, "fasta", "index", filepath.Join(dir, "nope.fasta"))
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}
