package slice

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// checkFile refuses to replace anything already at dest.
func checkFile(dest string) error {
	destFileInfo, err := os.Stat(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
		}
		return nil
	}
	return fmt.Errorf("destination file already exists: %q", destFileInfo.Name())
}
