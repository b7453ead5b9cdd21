// Package fsutil reads parkdown input files and writes output files safely.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates the file cannot be read.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path names a directory.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrNotText indicates the content is not valid UTF-8.
	ErrNotText = errors.New("content is not valid UTF-8 text")
)

// FileInfo describes a file that was read.
type FileInfo struct {
	Path string
	Mode os.FileMode
	Size int64
}

// ReadFile reads a UTF-8 text file.
func ReadFile(ctx context.Context, path string) (string, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return "", nil, classify(path, err)
	}

	if stat.IsDir() {
		return "", nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, classify(path, err)
	}

	if !utf8.Valid(content) {
		return "", nil, fmt.Errorf("%w: %s", ErrNotText, path)
	}

	info := &FileInfo{
		Path: path,
		Mode: stat.Mode(),
		Size: stat.Size(),
	}

	return string(content), info, nil
}

// ReadAll reads UTF-8 text from r, typically stdin.
func ReadAll(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	if !utf8.Valid(content) {
		return "", ErrNotText
	}

	return string(content), nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// IsIOError reports whether err came from this package's file handling.
func IsIOError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrIsDirectory) ||
		errors.Is(err, ErrNotText) ||
		errors.Is(err, ErrWriteFailed)
}
