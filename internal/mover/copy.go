package mover

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// copyVerified streams src to dest with SHA256 + size integrity verification.
// Removes dest on any failure or mismatch so no partial destination survives.
func copyVerified(src, dest string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	destHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, destHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		_ = os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dest)
		return err
	}

	if written != srcSize {
		_ = os.Remove(dest)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), destHasher.Sum(nil)) {
		_ = os.Remove(dest)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}
	return nil
}
