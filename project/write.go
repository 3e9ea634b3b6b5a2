package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFile replaces name with data atomically. The data goes to a temporary
// file in the same directory which is then renamed over name. An existing
// file keeps its permission bits; a new one gets perm.
func WriteFile(name string, data []byte, perm fs.FileMode) (err error) {
	if info, statErr := os.Stat(name); statErr == nil {
		perm = info.Mode().Perm()
	} else if !errors.Is(statErr, fs.ErrNotExist) {
		return statErr
	}

	f, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Chmod(perm); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), name)
}
