package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/scaffold"
)

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "new <dir>",
		Short:   "Create a new folio site",
		Example: "  folio new my-portfolio",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd.OutOrStdout(), args[0], time.Now())
		},
	}
}

func runNew(w io.Writer, dir string, now time.Time) error {
	data := scaffold.NewData(dir, now)
	files, err := scaffold.Generate(dir, data)
	if err != nil {
		return err
	}
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			rel = f
		}
		fmt.Fprintf(w, "  created %s\n", rel)
	}

	fmt.Fprintf(w, `
Created %s in ./%s

Next steps:
  cd %s
  cp .env.example .env   # then set FOLIO_ADMIN_PASSWORD and FOLIO_SESSION_SECRET
  folio check
  folio serve --watch
`, data.SiteName, dir, dir)
	return nil
}
