package workflow

import "errors"

// Sentinel errors for workflow state operations. Denied transitions are not
// errors; they surface as a Decision with Allowed=false.
var (
	ErrAlreadyInitialized = errors.New("workflow already initialized")
	ErrNotInitialized     = errors.New("workflow not initialized")
	ErrUnknownDocType     = errors.New("unknown document type")
)
