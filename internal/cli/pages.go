package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/raphaelgruber/photo-import/internal/site"
	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages [date]",
	Short: "List generated site pages",
	Long: `List the pages photo-import has written to the website directory,
optionally limited to one capture date.

Examples:
  photo-import pages
  photo-import pages 2021-03-15`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPages,
}

func runPages(cmd *cobra.Command, args []string) error {
	if cfg.Website == "" {
		return errors.New("website directory not set")
	}

	var date string
	if len(args) == 1 {
		date = args[0]
	}

	entries, err := site.New(cfg.Website).List(date)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	theme := newTheme(out)

	if len(entries) == 0 {
		fmt.Fprintln(out, "No pages found.")
		return nil
	}

	for _, e := range entries {
		name := filepath.Base(e.Path)
		if e.Err != nil {
			fmt.Fprintf(out, "%s  %s  %s\n", e.Date, name, theme.failure("unreadable: "+e.Err.Error()))
			continue
		}
		line := fmt.Sprintf("%s  %s  %s", e.Date, name, e.Page.Title)
		if e.Page.Coordinates != nil {
			line += "  " + theme.hint(e.Page.Coordinates.JSON())
		}
		fmt.Fprintln(out, line)
	}

	if verbose {
		fmt.Fprintf(out, "\n%d pages\n", len(entries))
	}
	return nil
}
