package cli

import (
	"fmt"
	"io"

	"github.com/raphaelgruber/photo-import/internal/library"
	"github.com/raphaelgruber/photo-import/internal/metadata"
	"github.com/raphaelgruber/photo-import/internal/metrics"
	"github.com/raphaelgruber/photo-import/internal/models"
	"github.com/raphaelgruber/photo-import/internal/pipeline"
	"github.com/raphaelgruber/photo-import/internal/prompt"
	"github.com/raphaelgruber/photo-import/internal/site"
	"github.com/raphaelgruber/photo-import/internal/upload"
	"github.com/spf13/cobra"
)

func runImport(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	reader, err := metadata.New(cfg.MetadataBackend)
	if err != nil {
		return fmt.Errorf("init metadata reader: %w", err)
	}
	defer reader.Close()

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	theme := newTheme(out)

	uploader := upload.New(cfg.UploadCommand, logger)
	uploader.Stdout = out
	uploader.Stderr = errOut

	collector := metrics.NewCollector()

	p := &pipeline.Pipeline{
		Metadata: reader,
		Prompter: prompt.New(cmd.InOrStdin(), out),
		Library:  library.New(cfg.Photos),
		Site:     site.New(cfg.Website),
		Uploader: uploader,
		OnExtracted: func(item *models.WorkItem) {
			fmt.Fprintln(out, theme.statusLine(item))
		},
		Logger:  logger,
		Metrics: collector,
	}

	report := p.Run(cmd.Context(), args)

	printSummary(out, errOut, theme, report)
	if verbose {
		printTimings(out, theme, collector.Snapshot())
	}

	if failed := len(report.Failed()); failed > 0 {
		return fmt.Errorf("%d of %d photos failed", failed, len(report.Items))
	}
	return nil
}

// printSummary prints the completion banner and any per-item failures.
func printSummary(out, errOut io.Writer, theme Theme, report *pipeline.Report) {
	failed := report.Failed()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %d imported, %d failed\n",
		theme.completed("Done!"), report.Succeeded(), len(failed))

	if len(failed) == 0 {
		return
	}

	fmt.Fprintln(errOut, theme.failure(fmt.Sprintf("\nFailed (%d):", len(failed))))
	for _, res := range failed {
		fmt.Fprintf(errOut, "  • %v\n", res.Err)
	}
	fmt.Fprintln(errOut, theme.hint("Fix the problem and run photo-import again for these files."))
}

func printTimings(out io.Writer, theme Theme, snap metrics.Snapshot) {
	fmt.Fprintln(out, theme.hint(fmt.Sprintf("\nStage timings (%.1fs total):", snap.ElapsedSeconds)))
	for _, s := range snap.Stages {
		fmt.Fprintf(out, "  %-10s runs=%d failed=%d avg=%.0fms min=%dms max=%dms\n",
			s.Stage, s.Count, s.Failures, s.AvgTimeMs, s.MinTimeMs, s.MaxTimeMs)
	}
}
