package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/content"
)

func newCheckCmd(cfgFile *string) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate every content file and list the ones that would be skipped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("content") {
				cfg, err := loadConfig(*cfgFile)
				if err != nil {
					return err
				}
				dir = cfg.ContentDir
			}
			return check(cmd.OutOrStdout(), content.NewLibrary(dir))
		},
	}
	cmd.Flags().StringVar(&dir, "content", "content", "content root to check")
	return cmd
}

// check scans every collection and writes a summary per kind.
// It returns errIssues when any file was rejected.
func check(w io.Writer, lib *content.Library) error {
	clean := true
	for _, kind := range content.Kinds {
		rep, err := lib.Scan(kind)
		if err != nil {
			return fmt.Errorf("scan %s: %w", kind, err)
		}
		fmt.Fprintf(w, "%s: %d/%d files valid (%s)\n", kind, rep.Items, rep.Files, rep.Dir)
		for _, is := range rep.Issues {
			fmt.Fprintf(w, "  %s: %s\n", is.File, is.Message())
		}
		if !rep.OK() {
			clean = false
		}
	}
	if !clean {
		return errIssues
	}
	return nil
}
