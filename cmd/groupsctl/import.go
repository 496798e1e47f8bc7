package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"wtsplinks/internal/infra"
	"wtsplinks/internal/ingest"
	"wtsplinks/internal/repositories"
)

var errRecordsFailed = errors.New("some records failed")

var (
	importFile      string
	importTextFile  string
	importDelimiter string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk insert groups from a spreadsheet or delimited text file",
	Long: `Reads a spreadsheet (.xlsx) or CSV file, validates every row and inserts the valid
ones into the groups table one at a time. Rows need name, description, link and
category_id columns. The command exits with status 1 when any row failed.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "spreadsheet or CSV file")
	importCmd.Flags().StringVar(&importTextFile, "text-file", "", "delimited text file read as pasted text")
	importCmd.Flags().StringVar(&importDelimiter, "delimiter", ",", "field delimiter for --text-file")
	importCmd.MarkFlagsOneRequired("file", "text-file")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	in, closeInput, err := importInput()
	if err != nil {
		return err
	}
	defer closeInput()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer infra.ClosePostgresql(db, logger)

	runner := ingest.NewRunner(
		repositories.NewGroupRepository(db),
		ingest.WithLogger(logger.Named("import")),
		ingest.WithProgress(progressPrinter(cmd.ErrOrStderr())),
	)

	res, err := runner.Ingest(cmd.Context(), in)
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), res)
	if !res.Clean() {
		return errRecordsFailed
	}
	return nil
}

func importInput() (ingest.Input, func(), error) {
	noop := func() {}

	if importFile != "" {
		f, err := os.Open(importFile)
		if err != nil {
			return ingest.Input{}, noop, err
		}
		return ingest.Input{File: f, FileName: filepath.Base(importFile)}, func() { _ = f.Close() }, nil
	}

	text, err := os.ReadFile(importTextFile)
	if err != nil {
		return ingest.Input{}, noop, err
	}
	delim, size := utf8.DecodeRuneInString(importDelimiter)
	if size == 0 || size != len(importDelimiter) {
		return ingest.Input{}, noop, fmt.Errorf("--delimiter must be a single character, got %q", importDelimiter)
	}
	return ingest.Input{Text: string(text), Delimiter: delim}, noop, nil
}

// progressPrinter reports every 100th record and the end of the batch.
func progressPrinter(w io.Writer) ingest.ProgressFunc {
	return func(p ingest.Progress) {
		done := p.Succeeded + p.Failed
		if p.Phase == ingest.PhaseWriting && done > 0 && done%100 == 0 {
			fmt.Fprintf(w, "  %d/%d processed\n", done, p.Total)
		}
	}
}

func printResult(w io.Writer, res ingest.Result) {
	fmt.Fprintf(w, "total: %d  succeeded: %d  failed: %d\n", res.Total, res.Succeeded, res.Failed)
	for _, f := range res.Failures {
		fmt.Fprintf(w, "  row %d: %s (name=%q link=%q)\n",
			f.Row, f.Reason, f.Record.Get(ingest.FieldName), f.Record.Get(ingest.FieldLink))
	}
}
