package platform

import (
	"os"
	"runtime"
)

// Chmod sets permission bits. Windows has no Unix permission bits, so it is
// a no-op there.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// Perm returns the permission bits of path. On Windows it reports want, so a
// check against want never fails for bits the platform cannot hold.
func Perm(path string, want os.FileMode) (os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if runtime.GOOS == "windows" {
		return want, nil
	}
	return info.Mode().Perm(), nil
}
