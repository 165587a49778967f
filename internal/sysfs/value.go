// Package sysfs reads and writes single-value attribute files of the kind
// the kernel exposes under /sys. Every file holds one newline-terminated
// text value.
package sysfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ReadError reports a value file that could not be read as text.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read value '%s': %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError reports a value file that could not be overwritten.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write value '%s': %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ErrNotText is wrapped by ReadError when a file holds invalid UTF-8.
var ErrNotText = errors.New("content is not valid UTF-8 text")

// ReadValue returns the content of dir/name with trailing whitespace
// removed. Leading content is returned as-is.
func ReadValue(dir, name string) (string, error) {
	path := filepath.Join(dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &ReadError{Path: path, Err: ErrNotText}
	}

	return strings.TrimRightFunc(string(data), unicode.IsSpace), nil
}

// WriteValue replaces the content of the existing file dir/name with
// value. The file is opened without O_CREATE: sysfs attributes either
// exist or cannot be written at all.
func WriteValue(dir, name, value string) error {
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if _, err := f.WriteString(value); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: err}
	}

	// sysfs stores may reject the value on close
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	return nil
}
