// Package diag persists the bodies of mismatching objects so they may be investigated offline.
package diag

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchbase/replverify/fsutil"
)

// DefaultPrefix is the default file name prefix used for dumps.
const DefaultPrefix = "replverify_md5_mismatch"

// Dumper persists the source and destination bodies of an object whose bodies don't match.
type Dumper interface {
	// Dump persists both bodies, returning the paths written (source first).
	Dump(name string, source, destination []byte) ([]string, error)
}

// FileDumperOptions encapsulates the options available when creating a 'FileDumper'.
type FileDumperOptions struct {
	// Dir is the directory dumps are written to, created if it doesn't exist. Defaults to '$CIRCLE_ARTIFACTS' falling
	// back to the system temporary directory.
	Dir string

	// Prefix is the file name prefix, defaults to 'DefaultPrefix'.
	Prefix string

	Logger *slog.Logger
}

// defaults fills any missing attributes to a sane default.
func (o *FileDumperOptions) defaults() {
	if o.Dir == "" {
		o.Dir = DefaultDir()
	}

	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}

	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// DefaultDir returns the default diagnostics directory.
func DefaultDir() string {
	if dir := os.Getenv("CIRCLE_ARTIFACTS"); dir != "" {
		return dir
	}

	return os.TempDir()
}

// FileDumper writes dumps to '<dir>/<prefix>_<name>_body1.bin' and '<dir>/<prefix>_<name>_body2.bin'.
type FileDumper struct {
	options FileDumperOptions
}

var _ Dumper = (*FileDumper)(nil)

// NewFileDumper returns a new dumper using the given options.
func NewFileDumper(options FileDumperOptions) *FileDumper {
	options.defaults()

	return &FileDumper{options: options}
}

// Dir returns the directory dumps are written to.
func (f *FileDumper) Dir() string {
	return f.options.Dir
}

func (f *FileDumper) Dump(name string, source, destination []byte) ([]string, error) {
	err := f.mkdir()
	if err != nil {
		return nil, err // Purposefully not wrapped
	}

	prefix := filepath.Join(f.options.Dir, fmt.Sprintf("%s_%s_body", f.options.Prefix, sanitize(name)))

	paths := []string{prefix + "1.bin", prefix + "2.bin"}

	for i, body := range [][]byte{source, destination} {
		exists, err := fsutil.FileExists(paths[i])
		if err != nil {
			return nil, fmt.Errorf("failed to check dump '%s': %w", paths[i], err)
		}

		if exists {
			f.options.Logger.Warn("Overwriting previous dump", "path", paths[i])
		}

		err = fsutil.Atomic(paths[i], func(path string) error { return fsutil.WriteFile(path, body, 0) })
		if err != nil {
			return nil, fmt.Errorf("failed to write dump '%s': %w", paths[i], err)
		}
	}

	f.options.Logger.Error("Body mismatch, data dumped", "location", prefix+"{1,2}.bin")

	return paths, nil
}

// mkdir creates the diagnostics directory, an existing directory is used as is.
func (f *FileDumper) mkdir() error {
	exists, err := fsutil.DirExists(f.options.Dir)
	if err != nil {
		return fmt.Errorf("failed to check diagnostics directory: %w", err)
	}

	if exists {
		return nil
	}

	err = fsutil.Mkdir(f.options.Dir, 0, true, true)
	if err != nil {
		return fmt.Errorf("failed to create diagnostics directory: %w", err)
	}

	return nil
}

// sanitize replaces characters which aren't safe to use in a file name.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':':
			return '_'
		}

		return r
	}, name)
}
