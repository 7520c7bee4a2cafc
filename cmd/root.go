package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/refhist/refhist/internal/charm/styles"
	"github.com/refhist/refhist/internal/config"
	"github.com/refhist/refhist/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "refhist",
	Short: "The refhist cli maintains refactoring-history index files",
	Long: `A cli tool for working with line-oriented refactoring-history index files:
	- Merging the two sides of a version-control conflict on an index (the merge-driver entry point)
	- Reading and pretty-printing an index
	- Recording new refactorings into a history directory
	- Normalizing an index (dedupe and sort)
	- Installing the git merge driver for index files
`,
	RunE: rootExec,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := cmd.Flags().GetString("logLevel")
		if err != nil {
			return err
		}
		if !slices.Contains(log.Levels, level) {
			return fmt.Errorf("invalid log level %q (available options: [%s])", level, strings.Join(log.Levels, ", "))
		}
		cmd.SetContext(log.With(cmd.Context(), log.New().WithLevel(log.Level(level))))
		return nil
	},
}

var l = log.New().WithLevel(log.LevelInfo)

func init() {
	// We want our commands to be sorted in defined order, not alphabetically
	cobra.EnableCommandSorting = false
	if err := config.Load(); err != nil {
		l.Error("", zap.Error(err))
		os.Exit(1)
	}
}

var initOnce sync.Once

func Init(version string) {
	initOnce.Do(func() {
		rootCmd.PersistentFlags().String("logLevel", string(log.LevelInfo), fmt.Sprintf("the log level (available options: [%s])", strings.Join(log.Levels, ", ")))

		mergeInit()
		readInit()
		recordInit()
		normalizeInit()
		installInit()
		versionInit(version)
	})
}

func CmdForTest(version string) *cobra.Command {
	Init(version)

	return rootCmd
}

func Execute(version string) {
	Init(version)

	if err := rootCmd.Execute(); err != nil {
		l.Error("", zap.Error(err))
		l.WithInteractiveOnly().PrintfStyled(styles.Help, "Run '%s --help' for usage.\n", rootCmd.CommandPath())
		os.Exit(1)
	}
}

func rootExec(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}
