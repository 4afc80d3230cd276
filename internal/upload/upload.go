// Package upload hands relocated photos to the external upload command.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/raphaelgruber/photo-import/internal/models"
)

// DefaultCommand is the upload helper looked up on PATH.
const DefaultCommand = "s3-photo"

// Uploader runs Command with the photo path as its only argument.
// The command's stdout and stderr are streamed live, not buffered.
type Uploader struct {
	Command string
	Stdout  io.Writer
	Stderr  io.Writer
	logger  *slog.Logger
}

// New creates an Uploader that streams to the process's own stdout and stderr.
func New(command string, logger *slog.Logger) *Uploader {
	if command == "" {
		command = DefaultCommand
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{
		Command: command,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		logger:  logger,
	}
}

// Upload runs the command and waits for it to exit.
// A command that cannot be started is ErrSpawn; a non-zero exit is ErrUploadFailed.
func (u *Uploader) Upload(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, u.Command, path)
	cmd.Stdout = u.Stdout
	cmd.Stderr = u.Stderr

	u.logger.Debug("starting upload", "command", u.Command, "path", path)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %w", models.ErrSpawn, u.Command, err)
	}

	err := cmd.Wait()
	if err == nil {
		u.logger.Debug("upload finished", "path", path)
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %s exited with code %d", models.ErrUploadFailed, u.Command, exitErr.ExitCode())
	}
	return fmt.Errorf("%w: %s: %w", models.ErrUploadFailed, u.Command, err)
}
