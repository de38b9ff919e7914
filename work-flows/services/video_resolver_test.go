package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"video-tutor/work-flows/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIsDeterministicForCatalogLessons(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)

	vr := NewVideoResolver("cache", 5)
	for _, s := range c.Subjects {
		for _, lesson := range s.Lessons {
			first, err := vr.Resolve(lesson)
			require.NoError(t, err)
			second, err := vr.Resolve(lesson)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		}
	}
}

func TestResolvePronunciationLesson(t *testing.T) {
	vr := NewVideoResolver("cache", 5)

	path, err := vr.Resolve("หลักการออกเสียง ตอนที่ 1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("cache", "opt_หลักการออกเสียง ตอนที่ 1.mp4"), path)
}

func TestResolveRejectsUnsafeNames(t *testing.T) {
	vr := NewVideoResolver("cache", 5)

	for _, lesson := range []string{"", "   ", "../secrets", `a\b`} {
		_, err := vr.Resolve(lesson)
		assert.Error(t, err, "lesson %q", lesson)
	}
}

func TestResolveDoesNotTouchFilesystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not-created")
	vr := NewVideoResolver(dir, 5)

	_, err := vr.Resolve("อากาศ")
	require.NoError(t, err)

	_, statErr := os.Stat(dir)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestEnsureCacheDirAndOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	vr := NewVideoResolver(dir, 5)
	require.NoError(t, vr.EnsureCacheDir())
	require.NoError(t, vr.EnsureCacheDir(), "idempotent")

	path, err := vr.Resolve("อากาศ")
	require.NoError(t, err)

	_, _, err = vr.Open(path)
	assert.True(t, errors.Is(err, ErrVideoNotFound))

	require.NoError(t, os.WriteFile(path, []byte("fake mp4"), 0644))
	f, info, err := vr.Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, int64(len("fake mp4")), info.Size())
}

func TestOpenDirectoryIsNotAVideo(t *testing.T) {
	vr := NewVideoResolver(t.TempDir(), 5)

	_, _, err := vr.Open(vr.CacheDir())
	assert.True(t, errors.Is(err, ErrVideoNotFound))
}
