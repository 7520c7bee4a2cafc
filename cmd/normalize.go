package cmd

import (
	"bytes"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/refhist/refhist/internal/log"
	"github.com/refhist/refhist/pkg/merge"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <index-file>",
	Short: "Deduplicate and sort a refactoring-history index in place",
	Long: `Rewrite an index file in canonical form: duplicate entries collapse and the
remainder is ordered most recent first. This is the same transform the merge
driver applies, with an empty remote side.`,
	Args: cobra.ExactArgs(1),
	RunE: normalizeExec,
}

func normalizeInit() {
	normalizeCmd.Flags().String("encoding", "", "charset of the index file (IANA name)")

	rootCmd.AddCommand(normalizeCmd)
}

func normalizeExec(cmd *cobra.Command, args []string) error {
	enc, err := encodingFlag(cmd, "encoding")
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	var buf bytes.Buffer
	status := merge.NewMerger().Merge(cmd.Context(), &buf, enc, strings.NewReader(""), "", f, enc, strings.NewReader(""), "")
	if !status.IsOK() {
		return status.Err()
	}

	if err := os.WriteFile(args[0], buf.Bytes(), 0o644); err != nil {
		return err
	}

	log.From(cmd.Context()).Successf("Normalized %s", args[0])

	return nil
}
