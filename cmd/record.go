package cmd

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/refhist/refhist/internal/config"
	"github.com/refhist/refhist/internal/log"
	"github.com/refhist/refhist/pkg/descriptor"
	"github.com/refhist/refhist/pkg/history"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a refactoring into the history directory",
	Long: `Record a completed refactoring: the full descriptor goes into the history
directory's records file and a proxy entry is appended to its index.`,
	RunE: recordExec,
}

var flagNames = map[string]int{
	"breaking":   descriptor.BreakingChange,
	"structural": descriptor.StructuralChange,
	"multi":      descriptor.MultiChange,
}

func recordInit() {
	recordCmd.Flags().String("id", "", "stable identifier of the refactoring type")
	recordCmd.Flags().StringP("description", "d", "", "human-readable summary of the refactoring")
	recordCmd.Flags().StringP("project", "p", "", "project the refactoring belongs to (omit for workspace scope)")
	recordCmd.Flags().String("comment", "", "free-form comment")
	recordCmd.Flags().StringSlice("flag", nil, "change flags, any of: breaking, structural, multi")
	recordCmd.Flags().String("dir", "", "history directory (defaults to the configured one)")
	_ = recordCmd.MarkFlagRequired("id")
	_ = recordCmd.MarkFlagRequired("description")

	rootCmd.AddCommand(recordCmd)
}

func recordExec(cmd *cobra.Command, args []string) error {
	id, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}

	description, err := cmd.Flags().GetString("description")
	if err != nil {
		return err
	}

	project, err := cmd.Flags().GetString("project")
	if err != nil {
		return err
	}

	comment, err := cmd.Flags().GetString("comment")
	if err != nil {
		return err
	}

	names, err := cmd.Flags().GetStringSlice("flag")
	if err != nil {
		return err
	}
	flags := descriptor.None
	for _, name := range names {
		bit, ok := flagNames[name]
		if !ok {
			return errors.Errorf("unknown change flag %q", name)
		}
		flags |= bit
	}

	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	if dir == "" {
		dir = config.GetHistoryDir()
	}

	opts := []descriptor.Option{descriptor.Flags(flags)}
	if project != "" {
		opts = append(opts, descriptor.Project(project))
	}
	if comment != "" {
		opts = append(opts, descriptor.Comment(comment))
	}

	d, err := descriptor.New(id, description, opts...)
	if err != nil {
		return err
	}

	if err := history.NewStore(dir).Append(d); err != nil {
		return err
	}

	log.From(cmd.Context()).Successf("Recorded %q at %s", description, time.UnixMilli(d.TimeStamp()).UTC().Format(time.RFC3339))

	return nil
}
