// Package filescan discovers *.graphql files under a directory and decides,
// by modification time against the generated output artifact, whether a
// regeneration is needed.
package filescan

import (
	"os"
	"path/filepath"
	"time"
)

const graphqlExtension = ".graphql"

type File struct {
	Path     string
	Modified bool
}

type Result struct {
	Files []File
	// Modified is true when at least one source file is newer than the
	// output artifact.
	Modified bool
}

// Scan walks dir recursively. A missing output artifact marks every source
// file as modified. Files are returned in lexical walk order.
func Scan(dir, outputPath string) (Result, error) {
	var lastGenerated time.Time

	info, err := os.Stat(outputPath)
	switch {
	case err == nil:
		lastGenerated = info.ModTime()
	case os.IsNotExist(err):
		// zero time: everything counts as modified
	default:
		return Result{}, err
	}

	var result Result
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != graphqlExtension {
			return nil
		}
		modified := info.ModTime().After(lastGenerated)
		if modified {
			result.Modified = true
		}
		result.Files = append(result.Files, File{Path: path, Modified: modified})
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return result, nil
}
