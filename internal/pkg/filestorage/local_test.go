package filestorage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveBytesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	url, err := ls.SaveBytes("receipts", "pay_123.html", []byte("<p>ok</p>"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/receipts/pay_123.html", url)

	full := ls.GetFullPath(url)
	assert.Equal(t, filepath.Join(dir, "receipts", "pay_123.html"), full)

	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "<p>ok</p>", string(data))

	require.NoError(t, ls.DeleteFile(url))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, ls.DeleteFile(url))
}

func TestSaveBytesWithBaseURL(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "https://javamaster.in/uploads/")
	require.NoError(t, err)

	url, err := ls.SaveBytes("receipts", "pay_1.html", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "https://javamaster.in/uploads/receipts/pay_1.html", url)
}

func TestSaveBytesStaysInsideBasePath(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	_, err = ls.SaveBytes("../../etc", "../passwd", []byte("x"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "etc", "passwd"))
	assert.NoError(t, err)
}

func TestExists(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	url := ls.URL("receipts", "pay_9.html")
	assert.Equal(t, "/uploads/receipts/pay_9.html", url)
	assert.False(t, ls.Exists(url))

	saved, err := ls.SaveBytes("receipts", "pay_9.html", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, url, saved)
	assert.True(t, ls.Exists(url))
	assert.False(t, ls.Exists("/uploads/receipts"))
}
