// 29 Apr 2020
// 14 Oct 2026 only exit codes and the test helper are left

package common

import (
	"fmt"
	"io"
	"os"
)

// Exit codes for cmd/minfasta. Mymain returns one of these.
const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// WrtTemp writes s to a new temporary file and returns its name.
// The caller removes the file.
func WrtTemp(s string) (string, error) {
	fp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("making temp file: %w", err)
	}
	_, err = io.WriteString(fp, s)
	if e := fp.Close(); err == nil {
		err = e
	}
	if err != nil {
		os.Remove(fp.Name())
		return "", fmt.Errorf("writing temp file %s: %w", fp.Name(), err)
	}
	return fp.Name(), nil
}
