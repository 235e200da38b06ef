package pipeline

import "fmt"

// Stage names a step of the build pipeline.
type Stage string

const (
	StageDiscover Stage = "discover"
	StageRender   Stage = "render"
	StageManifest Stage = "manifest"
	StageBuild    Stage = "build"
	StageEmit     Stage = "emit"
	StageWrite    Stage = "write"
	StageHistory  Stage = "history"
)

// Error wraps a failure with the pipeline stage it happened in.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func stageError(stage Stage, err error) error {
	return &Error{Stage: stage, Err: err}
}
