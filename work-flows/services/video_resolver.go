package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	optimizedPrefix = "opt_"
	videoExtension  = ".mp4"
)

var ErrVideoNotFound = errors.New("video file not found")

// VideoResolver maps lesson names to files in the video cache directory.
// Resolution is pure path construction; existence is checked only by Open.
type VideoResolver struct {
	cacheDir       string
	maxVideoSizeGB int
}

func NewVideoResolver(cacheDir string, maxVideoSizeGB int) *VideoResolver {
	return &VideoResolver{
		cacheDir:       cacheDir,
		maxVideoSizeGB: maxVideoSizeGB,
	}
}

func (vr *VideoResolver) CacheDir() string {
	return vr.cacheDir
}

// MaxVideoSizeGB is informational; sizes are not enforced.
func (vr *VideoResolver) MaxVideoSizeGB() int {
	return vr.maxVideoSizeGB
}

func (vr *VideoResolver) EnsureCacheDir() error {
	if err := os.MkdirAll(vr.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// Resolve returns <cacheDir>/opt_<lesson>.mp4.
func (vr *VideoResolver) Resolve(lesson string) (string, error) {
	if strings.TrimSpace(lesson) == "" {
		return "", errors.New("lesson name is empty")
	}
	if strings.ContainsAny(lesson, `/\`+"\x00") {
		return "", fmt.Errorf("lesson name '%s' contains a path separator", lesson)
	}
	return filepath.Join(vr.cacheDir, optimizedPrefix+lesson+videoExtension), nil
}

// Open opens a resolved video for streaming. The caller closes the file.
func (vr *VideoResolver) Open(path string) (*os.File, os.FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrVideoNotFound, path)
		}
		return nil, nil, fmt.Errorf("failed to open video: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to stat video: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, fmt.Errorf("%w: %s is a directory", ErrVideoNotFound, path)
	}

	return f, info, nil
}
