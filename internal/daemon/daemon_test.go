package daemon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDaemon(t *testing.T) *Daemon {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "sysmon.pid"))
}

func TestWriteAndReadPID(t *testing.T) {
	d := testDaemon(t)

	require.NoError(t, d.WritePID())

	pid, err := d.ReadPID()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestReadPIDMissingFile(t *testing.T) {
	d := testDaemon(t)

	pid, err := d.ReadPID()
	require.NoError(t, err)
	assert.Equal(t, 0, pid)
}

func TestReadPIDCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysmon.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid"), 0644))

	_, err := New(path).ReadPID()
	assert.Error(t, err)
}

func TestRemovePIDIsIdempotent(t *testing.T) {
	d := testDaemon(t)

	require.NoError(t, d.WritePID())
	require.NoError(t, d.RemovePID())
	assert.NoError(t, d.RemovePID())
}

func TestIsRunning(t *testing.T) {
	d := testDaemon(t)

	running, _, err := d.IsRunning()
	require.NoError(t, err)
	assert.False(t, running)

	// Our own PID is always alive.
	require.NoError(t, d.WritePID())
	running, pid, err := d.IsRunning()
	require.NoError(t, err)
	assert.True(t, running)
	assert.Equal(t, os.Getpid(), pid)
}

func TestIsRunningCleansStalePID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysmon.pid")
	require.NoError(t, os.WriteFile(path, []byte("999999"), 0644))

	d := New(path)
	running, _, err := d.IsRunning()
	require.NoError(t, err)
	assert.False(t, running)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStopNotRunning(t *testing.T) {
	d := testDaemon(t)
	assert.Error(t, d.Stop())
}
