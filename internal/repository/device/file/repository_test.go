package file

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDeviceIdPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "device-id")
	r := NewRepo(path)

	deviceId, err := r.EnsureDeviceId()
	require.NoError(t, err)
	_, err = uuid.Parse(deviceId)
	require.NoError(t, err, "device id must be a uuid")

	again, err := r.EnsureDeviceId()
	require.NoError(t, err)
	assert.Equal(t, deviceId, again, "device id must survive restarts")
}

func TestEnsureDeviceIdReplacesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device-id")
	require.NoError(t, os.WriteFile(path, []byte("not-a-uuid"), 0o600))

	r := NewRepo(path)
	deviceId, err := r.EnsureDeviceId()
	require.NoError(t, err)
	_, err = uuid.Parse(deviceId)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, deviceId, strings.TrimSpace(string(data)))
}
