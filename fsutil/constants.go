package fsutil

import (
	"errors"
	"os"
)

const (
	// DefaultDirMode is the mode used when creating directories if none is provided.
	DefaultDirMode os.FileMode = 0o755

	// DefaultFileMode is the mode used when creating files if none is provided.
	DefaultFileMode os.FileMode = 0o644
)

var (
	// ErrNotFile is returned when a directory exists where a file was expected, for example a diagnostics dump path.
	ErrNotFile = errors.New("not a file")

	// ErrNotDir is returned when a file exists where a directory was expected, for example the diagnostics directory.
	ErrNotDir = errors.New("not a directory")
)
