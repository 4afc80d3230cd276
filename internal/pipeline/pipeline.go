// Package pipeline runs the per-photo import stages in order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/raphaelgruber/photo-import/internal/library"
	"github.com/raphaelgruber/photo-import/internal/metadata"
	"github.com/raphaelgruber/photo-import/internal/metrics"
	"github.com/raphaelgruber/photo-import/internal/models"
	"github.com/raphaelgruber/photo-import/internal/prompt"
)

// MetadataReader extracts the capture date and GPS position.
type MetadataReader interface {
	Read(ctx context.Context, path string) (metadata.Metadata, error)
}

// Prompter collects the operator's answers for one photo.
type Prompter interface {
	AskAll(ctx context.Context) (prompt.Answers, error)
}

// Relocator moves a photo into the library.
type Relocator interface {
	Destination(item *models.WorkItem) string
	Relocate(item *models.WorkItem) (string, error)
}

// PageWriter writes the photo's site page.
type PageWriter interface {
	PagePath(item *models.WorkItem) string
	Write(item *models.WorkItem) (string, error)
}

// Uploader publishes a relocated photo.
type Uploader interface {
	Upload(ctx context.Context, path string) error
}

// Pipeline wires the stages together. Items are processed one at a time.
type Pipeline struct {
	Metadata MetadataReader
	Prompter Prompter
	Library  Relocator
	Site     PageWriter
	Uploader Uploader

	// OnExtracted is called after metadata extraction, before prompting.
	OnExtracted func(item *models.WorkItem)

	Logger  *slog.Logger
	Metrics *metrics.Collector
}

// ItemResult is the outcome for one input file. Err is a *StageError or nil.
type ItemResult struct {
	Item *models.WorkItem
	Err  error
}

// Report lists the outcome of every input file, in input order.
type Report struct {
	Items []ItemResult
}

// Failed returns the results that ended in an error.
func (r *Report) Failed() []ItemResult {
	var failed []ItemResult
	for _, res := range r.Items {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Succeeded counts items that went through every stage.
func (r *Report) Succeeded() int {
	return len(r.Items) - len(r.Failed())
}

// Run processes every filename in order. A failing item does not stop the run.
func (p *Pipeline) Run(ctx context.Context, filenames []string) *Report {
	report := &Report{Items: make([]ItemResult, 0, len(filenames))}

	for _, name := range filenames {
		item := models.NewWorkItem(name)
		err := p.Process(ctx, item)
		if err != nil {
			var stageErr *StageError
			stage := Stage("")
			if errors.As(err, &stageErr) {
				stage = stageErr.Stage
			}
			p.logger().Error("item failed", "file", name, "stage", stage, "error", err)
		} else {
			p.logger().Info("item imported", "file", name, "path", item.NewPath, "page", item.PagePath)
		}
		report.Items = append(report.Items, ItemResult{Item: item, Err: err})
	}

	return report
}

// Process runs all stages for one item, stopping at the first error.
func (p *Pipeline) Process(ctx context.Context, item *models.WorkItem) error {
	err := p.run(ctx, item, StageMetadata, func() error {
		md, err := p.Metadata.Read(ctx, item.Filename)
		if err != nil {
			return err
		}
		item.Date = md.Date
		item.Coordinates = md.Coordinates
		return nil
	})
	if err != nil {
		return err
	}

	if p.OnExtracted != nil {
		p.OnExtracted(item)
	}

	err = p.run(ctx, item, StagePrompt, func() error {
		answers, err := p.Prompter.AskAll(ctx)
		if err != nil {
			return err
		}
		item.NewFilename = answers.NewFilename
		item.Title = answers.Title
		item.Contents = answers.Contents
		return nil
	})
	if err != nil {
		return err
	}

	// Nothing is moved unless both targets are free
	err = p.run(ctx, item, StagePreflight, func() error {
		if err := library.CheckFree(p.Library.Destination(item)); err != nil {
			return err
		}
		return library.CheckFree(p.Site.PagePath(item))
	})
	if err != nil {
		return err
	}

	err = p.run(ctx, item, StageRelocate, func() error {
		newPath, err := p.Library.Relocate(item)
		if err != nil {
			return err
		}
		item.NewPath = newPath
		return nil
	})
	if err != nil {
		return err
	}

	err = p.run(ctx, item, StagePage, func() error {
		pagePath, err := p.Site.Write(item)
		if err != nil {
			return err
		}
		item.PagePath = pagePath
		return nil
	})
	if err != nil {
		return err
	}

	return p.run(ctx, item, StageUpload, func() error {
		return p.Uploader.Upload(ctx, item.NewPath)
	})
}

// run times one stage and wraps its error with the stage name.
func (p *Pipeline) run(ctx context.Context, item *models.WorkItem, stage Stage, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return &StageError{Filename: item.Filename, Stage: stage, Err: err}
	}

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	if p.Metrics != nil {
		p.Metrics.RecordTiming(string(stage), elapsed, err != nil)
	}
	p.logger().Debug("stage finished", "file", item.Filename, "stage", stage, "duration", elapsed, "ok", err == nil)

	if err != nil {
		return &StageError{Filename: item.Filename, Stage: stage, Err: err}
	}
	return nil
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// StatusLine describes an item after metadata extraction.
func StatusLine(item *models.WorkItem) string {
	line := fmt.Sprintf("Processing %s, date %s", item.Filename, item.Date)
	if item.Coordinates != nil {
		line += ", coordinates " + item.Coordinates.JSON()
	}
	return line
}
