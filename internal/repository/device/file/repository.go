package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// repo persists the device identity at a fixed path, the process-local
// analogue of a browser profile's storage.
type repo struct {
	path string
}

func NewRepo(path string) *repo {
	return &repo{path: path}
}

// EnsureDeviceId returns the stored device id, generating and persisting a
// fresh one on first use.
func (r repo) EnsureDeviceId() (string, error) {
	data, err := os.ReadFile(r.path)
	if err == nil {
		deviceId := strings.TrimSpace(string(data))
		if _, err := uuid.Parse(deviceId); err == nil {
			return deviceId, nil
		}
	}

	deviceId := uuid.NewString()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create device id dir: %w", err)
	}
	if err := os.WriteFile(r.path, []byte(deviceId+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("failed to write device id: %w", err)
	}

	return deviceId, nil
}
