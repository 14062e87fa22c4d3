package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBusy marks a file that is locked or still being written.
	ErrBusy = errors.New("file busy")
	// ErrVanished marks a path that no longer exists.
	ErrVanished = errors.New("file vanished")
	// ErrClassification marks a classifier failure or unusable label.
	ErrClassification = errors.New("classification error")
	// ErrMove marks an I/O failure while relocating a file.
	ErrMove = errors.New("move error")
	// ErrConfiguration marks unusable configuration discovered at runtime.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrMove
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsBusy reports whether err is a transient busy condition.
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}

// IsVanished reports whether err indicates the input disappeared.
func IsVanished(err error) bool {
	return errors.Is(err, ErrVanished)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
