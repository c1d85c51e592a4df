package infra

import (
	"os"
	"path"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// WorkDir expands base (which may start with ~), joins the optional
// sub-path and makes sure the resulting directory exists.
func WorkDir(base string, sub ...string) (string, error) {
	expanded, err := homedir.Expand(base)
	if err != nil {
		return "", errors.WithMessagef(err, "cant expand %s", base)
	}
	dir := filepath.Join(append([]string{expanded}, sub...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.WithMessagef(err, "cant create %s", dir)
	}
	return dir, nil
}

// GetResourcesPath builds a path inside the embedded resources FS.
func GetResourcesPath(parts ...string) string {
	return path.Join(parts...)
}
