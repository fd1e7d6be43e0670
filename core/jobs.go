package core

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/sys/unix"
)

// Job is one tracked background process.
type Job struct {
	Pid  int
	Live bool
}

// JobTable is a fixed-capacity registry of background processes. Slots are
// reused once their job has been reaped. The table is only ever touched from
// the main loop.
type JobTable struct {
	slots []Job
	out   io.Writer
}

// NewJobTable creates a table tracking at most capacity jobs, writing
// completion messages to out.
func NewJobTable(capacity int, out io.Writer) *JobTable {
	return &JobTable{
		slots: make([]Job, capacity),
		out:   out,
	}
}

// Add registers a background pid in the first free slot. Returns false when
// the table is full; the job keeps running but won't be reported on.
func (t *JobTable) Add(pid int) bool {
	for i := range t.slots {
		if !t.slots[i].Live {
			t.slots[i] = Job{Pid: pid, Live: true}
			return true
		}
	}
	return false
}

// LivePids returns the pids of all jobs still believed to be running.
func (t *JobTable) LivePids() []int {
	var pids []int
	for i := range t.slots {
		if t.slots[i].Live {
			pids = append(pids, t.slots[i].Pid)
		}
	}
	return pids
}

// Reap checks every live job without blocking and prints a completion
// message for each one that has terminated since the last call.
func (t *JobTable) Reap() {
	for i := range t.slots {
		if !t.slots[i].Live {
			continue
		}

		var ws unix.WaitStatus
		pid, err := unix.Wait4(t.slots[i].Pid, &ws, unix.WNOHANG, nil)
		switch {
		case err != nil:
			// Already reaped through another path; forget it quietly.
			t.slots[i].Live = false

		case pid == 0:
			// Still running.

		case ws.Exited():
			fmt.Fprintf(t.out, "background pid %d is done: exit value %d\n",
				t.slots[i].Pid, ws.ExitStatus())
			t.slots[i].Live = false

		case ws.Signaled():
			fmt.Fprintf(t.out, "background pid %d is done: terminated by signal %d\n",
				t.slots[i].Pid, int(ws.Signal()))
			t.slots[i].Live = false
		}
	}
}

// Shutdown asks every live job to terminate, waits out the grace period and
// kills the stragglers. The table is empty afterwards.
func (t *JobTable) Shutdown(grace time.Duration) {
	anyLive := false
	for i := range t.slots {
		if t.slots[i].Live {
			_ = unix.Kill(t.slots[i].Pid, unix.SIGTERM)
			anyLive = true
		}
	}
	if !anyLive {
		return
	}

	time.Sleep(grace)

	for i := range t.slots {
		if !t.slots[i].Live {
			continue
		}
		var ws unix.WaitStatus
		pid, err := unix.Wait4(t.slots[i].Pid, &ws, unix.WNOHANG, nil)
		if err == nil && pid == 0 {
			_ = unix.Kill(t.slots[i].Pid, unix.SIGKILL)
			_, _ = unix.Wait4(t.slots[i].Pid, &ws, 0, nil)
		}
		t.slots[i].Live = false
	}
}
