package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refhist/refhist/internal/charm/styles"
	"github.com/refhist/refhist/internal/git"
	"github.com/refhist/refhist/internal/log"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the merge driver into the enclosing git repository",
	Long: `Register the refhist merge driver in the repository's local config and route
index files through it via .gitattributes, so conflicting index changes merge
automatically instead of producing conflict markers.`,
	RunE: installExec,
}

func installInit() {
	installCmd.Flags().String("driver", "refhist merge --base %O --local %A --remote %B --out %A", "driver command registered in git config")
	installCmd.Flags().String("pattern", "*.index", "path pattern routed through the driver in .gitattributes")

	rootCmd.AddCommand(installCmd)
}

func installExec(cmd *cobra.Command, args []string) error {
	driver, err := cmd.Flags().GetString("driver")
	if err != nil {
		return err
	}

	pattern, err := cmd.Flags().GetString("pattern")
	if err != nil {
		return err
	}

	repo, err := git.Open()
	if err != nil {
		return err
	}

	if err := repo.InstallMergeDriver(driver); err != nil {
		return err
	}

	if err := repo.EnsureAttributes(pattern); err != nil {
		return err
	}

	log.From(cmd.Context()).PrintlnUnstyled(styles.RenderSuccessMessage(
		fmt.Sprintf("Installed merge driver %q", git.DriverName),
		fmt.Sprintf("%s files now merge through refhist", pattern),
	))

	return nil
}
