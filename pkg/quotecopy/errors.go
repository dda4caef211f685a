package quotecopy

import (
	"errors"
	"fmt"
)

// ErrMissingSelection indicates that no folder or no template file was chosen.
var ErrMissingSelection = errors.New("missing selection")

// ErrFileNotFound indicates the template file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidTemplate indicates the template is not a readable xlsx workbook.
var ErrInvalidTemplate = errors.New("invalid xlsx template")

// ErrOutputExists indicates the copy would replace an existing file.
var ErrOutputExists = errors.New("output file already exists")

// Create stages, reported by CreateError.
const (
	StageValidate = "validate"
	StageNumber   = "number"
	StageName     = "name"
	StageCopy     = "copy"
	StageOpen     = "open"
	StageApply    = "apply"
	StagePrint    = "print_area"
	StageSave     = "save"
)

// CreateError represents a failed copy. The copy and any partial PDF have
// been removed and numbering was not advanced.
type CreateError struct {
	Stage string
	Err   error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("create failed at %s: %v", e.Stage, e.Err)
}

func (e *CreateError) Unwrap() error {
	return e.Err
}

// NewCreateError creates a new CreateError.
func NewCreateError(stage string, err error) *CreateError {
	return &CreateError{
		Stage: stage,
		Err:   err,
	}
}
