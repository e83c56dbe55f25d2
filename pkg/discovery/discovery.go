// Package discovery finds the input files of a run. Every file in a directory
// that has no subdirectories is an input; files in directories that do have
// subdirectories are ignored. No extension filtering is applied.
package discovery

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	pkgerrors "github.com/agentstation/dataunifier/pkg/errors"
	"github.com/agentstation/dataunifier/pkg/logging"
)

// ValidateRoot returns a DirectoryNotFoundError unless root is an existing
// directory.
func ValidateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return pkgerrors.NewDirectoryNotFoundError(root, err)
	}
	if !info.IsDir() {
		return pkgerrors.NewDirectoryNotFoundError(root, nil)
	}
	return nil
}

// Discover walks root in lexical order and returns the files found in its
// leaf directories. The root itself counts as a leaf when it has no
// subdirectories.
func Discover(ctx context.Context, root string) ([]string, error) {
	if err := ValidateRoot(root); err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}

		var leafFiles []string
		for _, e := range entries {
			if e.IsDir() {
				return nil
			}
			leafFiles = append(leafFiles, filepath.Join(path, e.Name()))
		}

		logger.Debug().Str("dir", path).Int("files", len(leafFiles)).Msg("Leaf directory")
		files = append(files, leafFiles...)
		return filepath.SkipDir
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, pkgerrors.WrapIO("walk", root, err)
	}

	return files, nil
}
