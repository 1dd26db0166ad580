package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileExists returns a boolean indicating whether a file at the provided path exists.
func FileExists(path string) (bool, error) {
	stats, err := os.Stat(path)
	if err != nil {
		return false, ignoreINE(err)
	}

	if stats.IsDir() {
		return false, ErrNotFile
	}

	return true, nil
}

// CreateFile creates a new file (or truncates an existing one) at the provided path using the given flags/mode.
//
// NOTE: If a zero value file mode is suppled, the default will be used.
func CreateFile(path string, flags int, mode os.FileMode) (*os.File, error) {
	if mode == 0 {
		mode = DefaultFileMode
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|flags, mode)
	if err != nil {
		return nil, err
	}

	// The files mode may not be exactly what we provided due to a umask, we should update the permissions to be sure.
	err = file.Chmod(mode)
	if err == nil {
		return file, nil
	}

	file.Close()

	return nil, err
}

// WriteFile writes out the provided data to the file at the given path.
func WriteFile(path string, data []byte, mode os.FileMode) error {
	file, err := CreateFile(path, os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write(data)
	if err != nil {
		return err
	}

	return file.Sync()
}

// Atomic will perform the provided function in an "atomic" fashion. It's required that the provided function create
// the file at the given path if it doesn't already exist.
//
// NOTE: This only works to the degree that the underlying operating system guarantees that renames are atomic.
func Atomic(path string, fn func(path string) error) error {
	temp := temporaryPath(path)

	err := fn(temp)
	if err != nil {
		_ = Remove(temp, true)
		return err
	}

	return os.Rename(temp, path)
}

// temporaryPath returns a temporary path which resembles the provided path but is not the same; this may be used as a
// temporary file which may be removed/renamed but leaves implicit context as to why the file itself was created.
func temporaryPath(path string) string {
	return filepath.Join(filepath.Dir(path), fmt.Sprintf(".temporary_%s_%s", uuid.NewString(), filepath.Base(path)))
}

// ignoreINE returns <nil> if the given error indicates the path doesn't exist.
func ignoreINE(err error) error {
	if os.IsNotExist(err) {
		return nil
	}

	return err
}
