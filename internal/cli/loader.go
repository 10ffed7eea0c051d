package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/roach88/annotizer/internal/signature"
)

// LoadResult contains the signatures loaded from CUE files.
type LoadResult struct {
	Registry  *signature.Registry
	Views     []signature.View // declaration order, file by file
	FileCount int              // Number of CUE files read
}

// LoadError represents an error that occurred during signature loading.
type LoadError struct {
	Code    string
	Message string
	Path    string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSignatures reads every CUE file named in paths (directories are
// walked) into a fresh registry. It stops at the first failure.
func LoadSignatures(paths []string) (*LoadResult, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: "path not found", Path: path}
		}
		if err != nil {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing path: %v", err), Path: path}
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		found, err := FindCUEFiles(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err), Path: path}
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %v", paths)}
	}

	result := &LoadResult{
		Registry:  signature.NewRegistry(),
		FileCount: len(files),
	}
	for _, file := range files {
		views, err := signature.LoadCUEInto(result.Registry, file)
		if err != nil {
			return nil, &LoadError{Code: loadErrorCode(err), Message: err.Error(), Path: file}
		}
		result.Views = append(result.Views, views...)
	}
	return result, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func loadErrorCode(err error) string {
	switch signature.CodeOf(err) {
	case signature.ErrCodeDeclaration:
		return ErrCodeBuildFailed
	case signature.ErrCodeNoSource:
		return ErrCodeLoadFailed
	case "":
		return ErrCodeGeneric
	default:
		return ErrCodeInvalidName
	}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE file could not be read
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE declaration invalid
	ErrCodeInvalidName = "E007" // Declared parameter names unusable
	ErrCodeTestFailed  = "E_TEST_FAILED"
)
