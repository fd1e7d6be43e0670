package core

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestJobTableCapacity(t *testing.T) {
	var buf bytes.Buffer
	table := NewJobTable(2, &buf)

	assert.True(t, table.Add(101))
	assert.True(t, table.Add(102))
	// Full table: the job runs untracked, nothing crashes.
	assert.False(t, table.Add(103))
	assert.Equal(t, []int{101, 102}, table.LivePids())
}

func TestJobTableSlotReuse(t *testing.T) {
	var buf bytes.Buffer
	table := NewJobTable(1, &buf)

	proc := exec.Command("true")
	require.NoError(t, proc.Start())
	pid := proc.Process.Pid
	require.True(t, table.Add(pid))

	require.Eventually(t, func() bool {
		table.Reap()
		return len(table.LivePids()) == 0
	}, 5*time.Second, 10*time.Millisecond)

	assert.Contains(t, buf.String(), fmt.Sprintf("background pid %d is done: exit value 0\n", pid))
	assert.True(t, table.Add(999))
}

func TestReapSignaled(t *testing.T) {
	var buf bytes.Buffer
	table := NewJobTable(4, &buf)

	proc := exec.Command("sleep", "30")
	proc.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	require.NoError(t, proc.Start())
	pid := proc.Process.Pid
	require.True(t, table.Add(pid))

	table.Reap()
	assert.Empty(t, buf.String(), "no completion before the job terminates")

	require.NoError(t, unix.Kill(pid, unix.SIGKILL))
	require.Eventually(t, func() bool {
		table.Reap()
		return len(table.LivePids()) == 0
	}, 5*time.Second, 10*time.Millisecond)

	want := fmt.Sprintf("background pid %d is done: terminated by signal 9\n", pid)
	assert.Equal(t, 1, strings.Count(buf.String(), want), "exactly one completion message")

	// Further polls stay quiet.
	table.Reap()
	assert.Equal(t, 1, strings.Count(buf.String(), want))
}

// A pid reaped through another path is dropped silently.
func TestReapAlreadyReaped(t *testing.T) {
	var buf bytes.Buffer
	table := NewJobTable(4, &buf)

	proc := exec.Command("true")
	require.NoError(t, proc.Start())
	require.NoError(t, proc.Wait())

	require.True(t, table.Add(proc.Process.Pid))
	table.Reap()

	assert.Empty(t, buf.String())
	assert.Empty(t, table.LivePids())
}

func TestShutdownKillsJobs(t *testing.T) {
	var buf bytes.Buffer
	table := NewJobTable(4, &buf)

	proc := exec.Command("sleep", "60")
	proc.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	require.NoError(t, proc.Start())
	pid := proc.Process.Pid
	require.True(t, table.Add(pid))

	table.Shutdown(50 * time.Millisecond)

	assert.Empty(t, table.LivePids())
	// The process is gone and has been reaped.
	err := unix.Kill(pid, 0)
	assert.ErrorIs(t, err, unix.ESRCH)
}

func TestShutdownEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewJobTable(4, &buf)

	start := time.Now()
	table.Shutdown(time.Second)
	assert.Less(t, time.Since(start), 500*time.Millisecond, "no grace wait without jobs")
}
