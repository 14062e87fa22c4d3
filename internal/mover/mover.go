package mover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"sift/internal/services"
)

// Move relocates src into destDir, returning the final path actually used.
// destDir (and parents) are created as needed. An existing file with the
// same name is never overwritten; the destination gets a numbered suffix
// before the extension instead.
func Move(src, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrMove, "mover", "create destination", destDir, err)
	}

	dest, err := disambiguate(destDir, filepath.Base(src))
	if err != nil {
		return "", services.Wrap(services.ErrMove, "mover", "probe destination", destDir, err)
	}

	if err := relocate(src, dest); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", services.Wrap(services.ErrVanished, "mover", "relocate", src, err)
		}
		return "", services.Wrap(services.ErrMove, "mover", "relocate", src, err)
	}
	return dest, nil
}

// disambiguate returns destDir/name, or the first free "name (n).ext" when
// the plain name is taken.
func disambiguate(destDir, name string) (string, error) {
	candidate := filepath.Join(destDir, name)
	if _, err := os.Lstat(candidate); errors.Is(err, os.ErrNotExist) {
		return candidate, nil
	} else if err != nil {
		return "", err
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate = filepath.Join(destDir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		_, err := os.Lstat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
}

// relocate renames when possible, falling back to a verified copy + delete
// across volumes. The source survives any copy failure.
func relocate(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return err
	}
	if copyErr := copyVerified(src, dest); copyErr != nil {
		return copyErr
	}
	return os.Remove(src)
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return errors.Is(linkErr.Err, syscall.EXDEV)
	}
	return errors.Is(err, syscall.EXDEV)
}

// WriteSummarySidecar stores summary text next to an organized file as
// "<name><ext>.summary.txt" and returns the sidecar path.
func WriteSummarySidecar(finalPath, summary string) (string, error) {
	sidecar := finalPath + ".summary.txt"
	if err := os.WriteFile(sidecar, []byte(summary), 0o644); err != nil {
		return "", services.Wrap(services.ErrMove, "mover", "write summary sidecar", sidecar, err)
	}
	return sidecar, nil
}
