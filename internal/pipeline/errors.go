package pipeline

import "fmt"

// Stage names one step of the per-photo pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageMetadata  Stage = "metadata"
	StagePrompt    Stage = "prompt"
	StagePreflight Stage = "preflight"
	StageRelocate  Stage = "relocate"
	StagePage      Stage = "page"
	StageUpload    Stage = "upload"
)

// StageError records which stage stopped an item.
type StageError struct {
	Filename string
	Stage    Stage
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Filename, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
