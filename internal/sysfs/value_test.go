package sysfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadValue(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	t.Run("test trailing newline is stripped", func(t *testing.T) {
		write("type", "enumeration\n")

		v, err := ReadValue(dir, "type")
		require.NoError(t, err)
		assert.Equal(t, "enumeration", v)
	})

	t.Run("test leading whitespace is kept", func(t *testing.T) {
		write("display_name", "  Boot Mode \t\r\n\n")

		v, err := ReadValue(dir, "display_name")
		require.NoError(t, err)
		assert.Equal(t, "  Boot Mode", v)
	})

	t.Run("test empty file", func(t *testing.T) {
		write("empty", "")

		v, err := ReadValue(dir, "empty")
		require.NoError(t, err)
		assert.Empty(t, v)
	})

	t.Run("test missing file", func(t *testing.T) {
		_, err := ReadValue(dir, "missing")

		var readErr *ReadError
		require.ErrorAs(t, err, &readErr)
		assert.Equal(t, filepath.Join(dir, "missing"), readErr.Path)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("test invalid utf8", func(t *testing.T) {
		write("binary", "\xff\xfe\x00")

		_, err := ReadValue(dir, "binary")
		assert.ErrorIs(t, err, ErrNotText)
	})

	t.Run("test directory instead of file", func(t *testing.T) {
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

		_, err := ReadValue(dir, "sub")

		var readErr *ReadError
		assert.ErrorAs(t, err, &readErr)
	})
}

func TestWriteValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "current_value")
	require.NoError(t, os.WriteFile(path, []byte("Disabled\n"), 0644))

	t.Run("test overwrite is verbatim", func(t *testing.T) {
		require.NoError(t, WriteValue(dir, "current_value", "Enabled "))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Enabled ", string(data))
	})

	t.Run("test missing file is not created", func(t *testing.T) {
		err := WriteValue(dir, "default_value", "x")

		var writeErr *WriteError
		require.ErrorAs(t, err, &writeErr)
		assert.Equal(t, filepath.Join(dir, "default_value"), writeErr.Path)
		assert.NoFileExists(t, filepath.Join(dir, "default_value"))
	})
}
