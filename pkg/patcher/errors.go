package patcher

import (
	"gitlab.com/tozd/go/errors"
)

// The four failures an operator can act on. Run and Plan wrap these with
// context; everything else propagates unclassified. Test with errors.Is.
var (
	// ErrWorkDirMissing indicates the configured working directory does not exist
	ErrWorkDirMissing = errors.New("working directory missing")

	// ErrBackupFailed indicates the snapshot did not complete; no target was touched
	ErrBackupFailed = errors.New("backup failed")

	// ErrTargetMissing indicates a configured target file does not exist
	ErrTargetMissing = errors.New("target file missing")

	// ErrWriteFailed indicates a rewritten target could not be written back in place
	ErrWriteFailed = errors.New("write failed")
)
