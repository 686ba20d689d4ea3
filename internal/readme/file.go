package readme

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
)

// ReadFile loads a README from disk.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile replaces path with content atomically: the data is written to a temp file,
// fsynced and renamed over the original, keeping its permissions.
func WriteFile(path, content string) (err error) {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithExistingPermissions())
	if err != nil {
		return fmt.Errorf("create pending file for %s: %w", path, err)
	}
	defer func() {
		if cerr := pendingFile.Cleanup(); cerr != nil && err == nil {
			err = fmt.Errorf("cleanup pending file for %s: %w", path, cerr)
		}
	}()

	if _, err := pendingFile.WriteString(content); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	return nil
}
