package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/refhist/refhist/internal/config"
	"github.com/refhist/refhist/internal/log"
	"github.com/refhist/refhist/pkg/merge"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge the two sides of a conflicted refactoring-history index",
	Long: `Merge the two sides of a version-control conflict on a refactoring-history index file into a single deduplicated, time-ordered index.
This is the merge-driver entry point: git invokes it with the ancestor (%O), local (%A) and remote (%B) versions, and the merged result replaces the local file.
Note: index entries are append-only history records, so entries present on either side are always kept and the merge never conflicts.`,
	RunE: mergeExec,
}

func mergeInit() {
	mergeCmd.Flags().StringP("base", "b", "", "path to the common ancestor version of the index (git's %O)")
	mergeCmd.Flags().StringP("local", "l", "", "path to the local version of the index (git's %A)")
	mergeCmd.Flags().StringP("remote", "r", "", "path to the remote version of the index (git's %B)")
	mergeCmd.Flags().StringP("out", "o", "", "path to write the merged index to (defaults to the local path, per merge-driver convention)")
	_ = mergeCmd.MarkFlagRequired("local")
	_ = mergeCmd.MarkFlagRequired("remote")
	encodingFlags(mergeCmd.Flags())

	rootCmd.AddCommand(mergeCmd)
}

// encodingFlags registers the per-stream charset flags shared by the
// index-reading commands. Empty means the configured default, then UTF-8.
func encodingFlags(flags *pflag.FlagSet) {
	flags.String("out-encoding", "", "charset of the merged output (IANA name)")
	flags.String("base-encoding", "", "charset of the ancestor index (IANA name)")
	flags.String("local-encoding", "", "charset of the local index (IANA name)")
	flags.String("remote-encoding", "", "charset of the remote index (IANA name)")
}

func encodingFlag(cmd *cobra.Command, name string) (string, error) {
	enc, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", err
	}
	if enc == "" {
		enc = config.GetDefaultEncoding()
	}
	return enc, nil
}

func mergeExec(cmd *cobra.Command, args []string) error {
	basePath, err := cmd.Flags().GetString("base")
	if err != nil {
		return err
	}

	localPath, err := cmd.Flags().GetString("local")
	if err != nil {
		return err
	}

	remotePath, err := cmd.Flags().GetString("remote")
	if err != nil {
		return err
	}

	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = localPath
	}

	outEnc, err := encodingFlag(cmd, "out-encoding")
	if err != nil {
		return err
	}
	baseEnc, err := encodingFlag(cmd, "base-encoding")
	if err != nil {
		return err
	}
	localEnc, err := encodingFlag(cmd, "local-encoding")
	if err != nil {
		return err
	}
	remoteEnc, err := encodingFlag(cmd, "remote-encoding")
	if err != nil {
		return err
	}

	// The ancestor is optional; the merger never reads it, but accept it so
	// the driver command line can pass %O through untouched.
	var base io.Reader = strings.NewReader("")
	if basePath != "" {
		f, err := os.Open(basePath)
		if err != nil {
			return err
		}
		defer f.Close()
		base = f
	}

	local, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer local.Close()

	remote, err := os.Open(remotePath)
	if err != nil {
		return err
	}
	defer remote.Close()

	// Merge into memory first: the output path is usually the local input,
	// and a failed merge must not clobber it with partial output.
	var buf bytes.Buffer
	status := merge.NewMerger().Merge(cmd.Context(), &buf, outEnc, base, baseEnc, local, localEnc, remote, remoteEnc)
	if !status.IsOK() {
		return status.Err()
	}

	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return err
	}

	log.From(cmd.Context()).Successf("Successfully merged %s and %s into %s", localPath, remotePath, outPath)

	return nil
}
