package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func PrettyPrintDiskSize(size int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
		TB = 1024 * GB
	)

	switch {
	case size >= TB:
		return fmt.Sprintf("%.2f TB", float64(size)/float64(TB))
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(GB))
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(MB))
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(KB))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// CopyFile copies source into the directory destination, keeping its base
// name, and returns the path written. Without overwrite an existing file
// is an error.
func CopyFile(source string, destination string, overwrite bool) (string, error) {
	destPath := filepath.Join(destination, filepath.Base(source))

	srcFile, err := os.Open(source)
	if err != nil {
		return "", err
	}
	defer srcFile.Close()

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	destFile, err := os.OpenFile(destPath, flags, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s already exists", destPath)
		}
		return "", err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, srcFile); err != nil {
		return "", fmt.Errorf("failed to copy %s: %w", source, err)
	}

	// The device may be unplugged right after; make the bytes land first.
	if err := destFile.Sync(); err != nil {
		return "", err
	}
	return destPath, destFile.Close()
}
