package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/raphaelgruber/photo-import/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(t *testing.T, name string) *models.WorkItem {
	t.Helper()
	src := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(src, []byte("jpeg bytes"), 0644))

	item := models.NewWorkItem(src)
	item.Date = "2021-03-15"
	item.NewFilename = "sunset"
	return item
}

func TestDestination(t *testing.T) {
	lib := New("/lib")
	item := &models.WorkItem{Filename: "/card/DSC0001.jpg", Date: "2021-03-15", NewFilename: "sunset"}

	assert.Equal(t, filepath.FromSlash("/lib/2021-03-15/sunset.jpg"), lib.Destination(item))
}

func TestDestination_KeepsExtensionCase(t *testing.T) {
	lib := New("/lib")
	item := &models.WorkItem{Filename: "IMG_1.JPEG", Date: "2020-01-01", NewFilename: "snow"}

	assert.Equal(t, filepath.FromSlash("/lib/2020-01-01/snow.JPEG"), lib.Destination(item))
}

func TestRelocate(t *testing.T) {
	root := filepath.Join(t.TempDir(), "photos")
	item := newItem(t, "DSC0001.jpg")

	dest, err := New(root).Relocate(item)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "2021-03-15", "sunset.jpg"), dest)
	assert.True(t, filepath.IsAbs(dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	_, err = os.Stat(item.Filename)
	assert.True(t, os.IsNotExist(err), "source should be gone")
}

func TestRelocate_RefusesToOverwrite(t *testing.T) {
	root := t.TempDir()
	item := newItem(t, "DSC0002.jpg")

	existing := filepath.Join(root, "2021-03-15", "sunset.jpg")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0755))
	require.NoError(t, os.WriteFile(existing, []byte("older photo"), 0644))

	_, err := New(root).Relocate(item)
	assert.ErrorIs(t, err, models.ErrDestinationExists)
	assert.ErrorIs(t, err, models.ErrIO)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "older photo", string(data))
	assert.FileExists(t, item.Filename)
}

func TestRelocate_MissingSource(t *testing.T) {
	item := &models.WorkItem{
		Filename:    filepath.Join(t.TempDir(), "nope.jpg"),
		Date:        "2021-03-15",
		NewFilename: "x",
	}

	_, err := New(t.TempDir()).Relocate(item)
	assert.ErrorIs(t, err, models.ErrIO)
}

func TestRelocate_RequiresDate(t *testing.T) {
	item := newItem(t, "DSC0003.jpg")
	item.Date = ""

	_, err := New(t.TempDir()).Relocate(item)
	assert.ErrorIs(t, err, models.ErrIO)
	assert.FileExists(t, item.Filename)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "b.jpg")
	require.NoError(t, os.WriteFile(src, []byte("pixels"), 0600))

	require.NoError(t, copyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))

	// O_EXCL: a second copy must fail
	assert.Error(t, copyFile(src, dst))
}
