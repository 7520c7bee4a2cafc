package cmd

import (
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/refhist/refhist/internal/charm/styles"
	"github.com/refhist/refhist/internal/config"
	"github.com/refhist/refhist/internal/log"
	"github.com/refhist/refhist/pkg/descriptor"
	"github.com/refhist/refhist/pkg/history"
)

var readCmd = &cobra.Command{
	Use:   "read [index-file]",
	Short: "Print the entries of a refactoring-history index",
	Long: `Print the entries of a refactoring-history index file, most recent first.
Without an argument the index of the configured history directory is read.`,
	Args: cobra.MaximumNArgs(1),
	RunE: readExec,
}

func readInit() {
	readCmd.Flags().String("since", "", "only show entries at or after this time (RFC 3339)")
	readCmd.Flags().String("until", "", "only show entries at or before this time (RFC 3339)")
	readCmd.Flags().String("project", "", "tag entries with this project name")
	readCmd.Flags().IntP("limit", "n", 0, "show at most this many entries (0 = all)")
	readCmd.Flags().Bool("relative", false, "show relative times instead of absolute ones")
	readCmd.Flags().String("encoding", "", "charset of the index file (IANA name)")

	rootCmd.AddCommand(readCmd)
}

func readExec(cmd *cobra.Command, args []string) error {
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	enc, err := encodingFlag(cmd, "encoding")
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	relative, err := cmd.Flags().GetBool("relative")
	if err != nil {
		return err
	}

	var proxies []descriptor.Proxy
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		if proxies, err = history.ReadProxies(f, enc, filter); err != nil {
			return err
		}
	} else {
		store := history.NewStore(config.GetHistoryDir())
		if proxies, err = store.Proxies(filter); err != nil {
			return err
		}
	}

	// Index files are append-ordered on disk; present newest first.
	proxies = lo.Reverse(proxies)
	if limit > 0 && len(proxies) > limit {
		proxies = proxies[:limit]
	}

	logger := log.From(cmd.Context()).WithWriter(os.Stdout)
	for _, proxy := range proxies {
		stamp := time.UnixMilli(proxy.TimeStamp).UTC()
		when := lo.Ternary(relative, humanize.Time(stamp), stamp.Format(time.RFC3339))
		logger.PrintfStyled(styles.None, "%s  %s", styles.Dimmed.Render(when), proxy.Description)
	}
	logger.WithStyle(styles.DimmedItalic).Printf("%d entries", len(proxies))

	return nil
}

func filterFromFlags(cmd *cobra.Command) (history.Filter, error) {
	var filter history.Filter

	project, err := cmd.Flags().GetString("project")
	if err != nil {
		return filter, err
	}
	filter.Project = project

	since, err := cmd.Flags().GetString("since")
	if err != nil {
		return filter, err
	}
	if since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return filter, err
		}
		filter.Start = t.UnixMilli()
	}

	until, err := cmd.Flags().GetString("until")
	if err != nil {
		return filter, err
	}
	if until != "" {
		t, err := time.Parse(time.RFC3339, until)
		if err != nil {
			return filter, err
		}
		filter.End = t.UnixMilli()
	}

	return filter, nil
}
