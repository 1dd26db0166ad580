package fsutil

import (
	"os"
)

// Remove the file/directory at the given path.
func Remove(path string, ignoreNotExists bool) error {
	err := os.Remove(path)
	if err == nil || ignoreNotExists && os.IsNotExist(err) {
		return nil
	}

	return err
}
