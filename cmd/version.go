package cmd

import (
	"github.com/spf13/cobra"

	"github.com/refhist/refhist/internal/charm/styles"
	"github.com/refhist/refhist/internal/log"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the refhist version",
	Args:  cobra.NoArgs,
}

func versionInit(version string) {
	versionCmd.RunE = func(cmd *cobra.Command, args []string) error {
		log.From(cmd.Context()).Println(styles.MakeBold("refhist " + version))
		return nil
	}

	rootCmd.AddCommand(versionCmd)
}
