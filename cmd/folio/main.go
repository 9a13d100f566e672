package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// errIssues makes `folio check` exit non-zero without printing usage.
var errIssues = errors.New("content issues found")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errIssues) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "folio",
		Short: "folio - a portfolio site served from plain content files",
		Long: `folio serves a personal portfolio (blog posts and projects) from a
directory of metadata-headed text files. Files with invalid metadata are
skipped and reported rather than breaking the site.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./folio.yaml)")

	root.AddCommand(
		newServeCmd(&cfgFile),
		newCheckCmd(&cfgFile),
		newNewCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the folio version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version)
			},
		},
	)
	return root
}
